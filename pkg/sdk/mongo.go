package sdk

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient builds a client for uri. Connecting is lazy in the driver, so
// an error here means a bad URI or options, not an unreachable server; use
// PingMongo to check reachability.
func NewMongoClient(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	return mongo.Connect(ctx, clientOptions)
}

// PingMongo checks that the primary is reachable within timeout.
func PingMongo(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return client.Ping(ctx, readpref.Primary())
}
