package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toDocument converts a record into a document carrying a fresh ObjectID.
func toDocument[R any](record R) (bson.M, error) {
	docBytes, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(docBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	doc["_id"] = primitive.NewObjectID()

	return doc, nil
}

// fromDocument decodes doc into a record.
func fromDocument[R any](doc bson.M) (R, error) {
	var record R

	docBytes, err := bson.Marshal(doc)
	if err != nil {
		return record, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := bson.Unmarshal(docBytes, &record); err != nil {
		return record, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return record, nil
}
