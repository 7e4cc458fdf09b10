package repository

import "context"

// RecordRepository is the storage contract for one kind of record.
//
// Errors are *sdk.EndorError values: 404 when the identifier does not resolve,
// 400 when it is not a valid ObjectID and 500 for any store failure.
type RecordRepository[R any] interface {
	FindAll(ctx context.Context) ([]R, error)
	FindByID(ctx context.Context, id string) (R, error)
	Insert(ctx context.Context, record R) (R, error)
	// UpdateByID sets only the fields in changes and returns the updated record.
	UpdateByID(ctx context.Context, id string, changes map[string]any) (R, error)
	DeleteByID(ctx context.Context, id string) error
}
