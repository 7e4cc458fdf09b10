package test_utils_repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/mattiabonardi/endor-records/internal/repository"
	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRecordRepository keeps documents in insertion order and reports
// the same errors as the MongoDB repository. Set FailWith to make every
// call fail with a store error.
type MemoryRecordRepository[R any] struct {
	mu       sync.Mutex
	name     string
	ids      []primitive.ObjectID
	docs     map[primitive.ObjectID]bson.M
	FailWith error
}

func NewMemoryRecordRepository[R any](name string) *MemoryRecordRepository[R] {
	return &MemoryRecordRepository[R]{
		name: name,
		docs: map[primitive.ObjectID]bson.M{},
	}
}

func (r *MemoryRecordRepository[R]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func (r *MemoryRecordRepository[R]) storeError() error {
	if r.FailWith == nil {
		return nil
	}
	return sdk.NewInternalServerError(r.FailWith)
}

func (r *MemoryRecordRepository[R]) notFound(id string) error {
	return sdk.NewNotFoundError(fmt.Errorf("%s %s: %w", r.name, id, sdk.ErrRecordNotFound))
}

func decode[R any](doc bson.M) (R, error) {
	var record R
	data, err := bson.Marshal(doc)
	if err != nil {
		return record, sdk.NewInternalServerError(err)
	}
	if err := bson.Unmarshal(data, &record); err != nil {
		return record, sdk.NewInternalServerError(err)
	}
	return record, nil
}

func (r *MemoryRecordRepository[R]) FindAll(_ context.Context) ([]R, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.storeError(); err != nil {
		return nil, err
	}

	results := make([]R, 0, len(r.ids))
	for _, oid := range r.ids {
		record, err := decode[R](r.docs[oid])
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, nil
}

func (r *MemoryRecordRepository[R]) FindByID(_ context.Context, id string) (R, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero R
	oid, err := sdk.ParseObjectID(id)
	if err != nil {
		return zero, err
	}
	if err := r.storeError(); err != nil {
		return zero, err
	}

	doc, ok := r.docs[oid]
	if !ok {
		return zero, r.notFound(id)
	}
	return decode[R](doc)
}

func (r *MemoryRecordRepository[R]) Insert(_ context.Context, record R) (R, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero R
	if err := r.storeError(); err != nil {
		return zero, err
	}

	data, err := bson.Marshal(record)
	if err != nil {
		return zero, sdk.NewInternalServerError(err)
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return zero, sdk.NewInternalServerError(err)
	}

	oid := primitive.NewObjectID()
	doc["_id"] = oid
	r.ids = append(r.ids, oid)
	r.docs[oid] = doc

	return decode[R](doc)
}

func (r *MemoryRecordRepository[R]) UpdateByID(_ context.Context, id string, changes map[string]any) (R, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero R
	oid, err := sdk.ParseObjectID(id)
	if err != nil {
		return zero, err
	}
	if err := r.storeError(); err != nil {
		return zero, err
	}

	doc, ok := r.docs[oid]
	if !ok {
		return zero, r.notFound(id)
	}
	for k, v := range changes {
		doc[k] = v
	}
	return decode[R](doc)
}

func (r *MemoryRecordRepository[R]) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	oid, err := sdk.ParseObjectID(id)
	if err != nil {
		return err
	}
	if err := r.storeError(); err != nil {
		return err
	}

	if _, ok := r.docs[oid]; !ok {
		return r.notFound(id)
	}
	delete(r.docs, oid)
	for i, existing := range r.ids {
		if existing == oid {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

var _ repository.RecordRepository[struct{}] = (*MemoryRecordRepository[struct{}])(nil)
