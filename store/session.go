package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReadSession runs a group of reads. Every read issued through the context passed
// to fn observes the same data when snapshot reads are enabled.
type ReadSession func(ctx context.Context, fn func(ctx context.Context) error) error

// DirectReads runs fn without a session.
func DirectReads(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func NewReadSession(client *mongo.Client, cfg *Config) ReadSession {
	if client == nil || cfg == nil || !cfg.SnapshotReads {
		return DirectReads
	}
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		session, err := client.StartSession(options.Session().SetSnapshot(true))
		if err != nil {
			return fmt.Errorf("unable to start snapshot session: %w", err)
		}
		defer session.EndSession(ctx)

		return mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
			return fn(sessCtx)
		})
	}
}
