package schema

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Accessor is a capability object bound to one collection of one logical
// database. It exposes the small get/has/add/update/delete surface the
// schemas in this system are built on; callers never touch the driver
// collection directly except through Collection.
type Accessor[M any] struct {
	collection *mongo.Collection
}

// NewAccessor binds an accessor to the named collection.
func NewAccessor[M any](db *mongo.Database, collection string) *Accessor[M] {
	return &Accessor[M]{collection: db.Collection(collection)}
}

// Collection exposes the underlying driver collection for schema-specific
// initialization (index setup). Data access goes through the typed methods.
func (a *Accessor[M]) Collection() *mongo.Collection {
	return a.collection
}

// Get returns the first document matching filter, or nil when no document
// matches. A lookup miss is not an error.
func (a *Accessor[M]) Get(ctx context.Context, filter any) (*M, error) {
	var m M
	err := a.collection.FindOne(ctx, filter).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("schema: get from %s: %w", a.collection.Name(), err)
	}
	return &m, nil
}

// Has reports whether at least one document matches filter, using a count
// bounded to a single document.
func (a *Accessor[M]) Has(ctx context.Context, filter any) (bool, error) {
	n, err := a.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("schema: has in %s: %w", a.collection.Name(), err)
	}
	return n == 1, nil
}

// Add inserts a document and returns its object id.
// Unique-index violations surface as ErrDuplicateKey.
func (a *Accessor[M]) Add(ctx context.Context, m M) (bson.ObjectID, error) {
	result, err := a.collection.InsertOne(ctx, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.ObjectID{}, errors.Join(ErrDuplicateKey, err)
		}
		return bson.ObjectID{}, fmt.Errorf("schema: add to %s: %w", a.collection.Name(), err)
	}

	oid, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("schema: add to %s: unexpected inserted id type %T", a.collection.Name(), result.InsertedID)
	}
	return oid, nil
}

// Update applies an update document to the first match of filter.
func (a *Accessor[M]) Update(ctx context.Context, filter, update any) error {
	if _, err := a.collection.UpdateOne(ctx, filter, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateKey, err)
		}
		return fmt.Errorf("schema: update in %s: %w", a.collection.Name(), err)
	}
	return nil
}

// Delete removes the document with the given object id.
func (a *Accessor[M]) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := a.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("schema: delete from %s: %w", a.collection.Name(), err)
	}
	return nil
}
