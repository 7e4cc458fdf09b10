package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecordRepository stores records of type R in a single MongoDB collection.
// R must map its identifier to `_id` (see sdk.ObjectID).
type MongoRecordRepository[R any] struct {
	collection *mongo.Collection
	name       string
}

// NewMongoRecordRepository binds a repository to db.collection.
// name is the record kind used in error messages.
func NewMongoRecordRepository[R any](db *mongo.Database, collection string, name string) *MongoRecordRepository[R] {
	return &MongoRecordRepository[R]{
		collection: db.Collection(collection),
		name:       name,
	}
}

func (r *MongoRecordRepository[R]) notFound(id string) error {
	return sdk.NewNotFoundError(fmt.Errorf("%s %s: %w", r.name, id, sdk.ErrRecordNotFound))
}

func (r *MongoRecordRepository[R]) FindAll(ctx context.Context) ([]R, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, sdk.NewInternalServerError(fmt.Errorf("failed to list %s records: %w", r.name, err))
	}
	defer cursor.Close(ctx)

	results := []R{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, sdk.NewInternalServerError(fmt.Errorf("failed to decode %s records: %w", r.name, err))
	}

	return results, nil
}

func (r *MongoRecordRepository[R]) FindByID(ctx context.Context, id string) (R, error) {
	var result R

	filter, err := sdk.IDFilter(id)
	if err != nil {
		return result, err
	}

	err = r.collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, r.notFound(id)
		}
		return result, sdk.NewInternalServerError(fmt.Errorf("failed to find %s %s: %w", r.name, id, err))
	}

	return result, nil
}

func (r *MongoRecordRepository[R]) Insert(ctx context.Context, record R) (R, error) {
	var zero R

	doc, err := toDocument(record)
	if err != nil {
		return zero, sdk.NewInternalServerError(err)
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return zero, sdk.NewInternalServerError(fmt.Errorf("failed to create %s: %w", r.name, err))
	}

	saved, err := fromDocument[R](doc)
	if err != nil {
		return zero, sdk.NewInternalServerError(err)
	}

	return saved, nil
}

func (r *MongoRecordRepository[R]) UpdateByID(ctx context.Context, id string, changes map[string]any) (R, error) {
	var result R

	filter, err := sdk.IDFilter(id)
	if err != nil {
		return result, err
	}

	// an empty $set is rejected by the server
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M(changes)}, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, r.notFound(id)
		}
		return result, sdk.NewInternalServerError(fmt.Errorf("failed to update %s %s: %w", r.name, id, err))
	}

	return result, nil
}

func (r *MongoRecordRepository[R]) DeleteByID(ctx context.Context, id string) error {
	filter, err := sdk.IDFilter(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return sdk.NewInternalServerError(fmt.Errorf("failed to delete %s %s: %w", r.name, id, err))
	}

	if result.DeletedCount == 0 {
		return r.notFound(id)
	}

	return nil
}

var _ RecordRepository[struct{}] = (*MongoRecordRepository[struct{}])(nil)
