package schema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureUniqueIndex creates a named unique index over the given fields.
// Conflicts with an existing index definition surface as ErrIndexSetup.
func (a *Accessor[M]) EnsureUniqueIndex(ctx context.Context, name string, fields ...string) error {
	keys := make(bson.D, 0, len(fields))
	for _, field := range fields {
		keys = append(keys, bson.E{Key: field, Value: 1})
	}

	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	})
	if err != nil {
		return errors.Join(ErrIndexSetup, err)
	}
	return nil
}

// EnsureSparseUniqueIndex creates a named unique index that skips documents
// missing the field. Used for optional external-provider identifiers which
// must be unique only when present.
func (a *Accessor[M]) EnsureSparseUniqueIndex(ctx context.Context, name, field string) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return errors.Join(ErrIndexSetup, err)
	}
	return nil
}

// EnsureTTLIndex creates a TTL index on a timestamp field so the store
// purges documents once the field exceeds the retention window. When the
// index already exists with a different window, a collMod command retunes
// the expiry in place instead of dropping and recreating the index; the
// retune is best effort and its failure is reported separately so callers
// can log it without treating the schema as broken.
func (a *Accessor[M]) EnsureTTLIndex(ctx context.Context, name, field string, retention time.Duration) (retuneErr, err error) {
	seconds := int32(retention / time.Second)

	_, err = a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetExpireAfterSeconds(seconds),
	})
	if err != nil {
		err = errors.Join(ErrIndexSetup, err)
	}

	res := a.collection.Database().RunCommand(ctx, bson.D{
		{Key: "collMod", Value: a.collection.Name()},
		{Key: "index", Value: bson.D{
			{Key: "keyPattern", Value: bson.D{{Key: field, Value: 1}}},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	})
	if cmdErr := res.Err(); cmdErr != nil {
		retuneErr = fmt.Errorf("schema: collMod %s: %w", a.collection.Name(), cmdErr)
	}

	return retuneErr, err
}
