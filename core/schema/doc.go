// Package schema provides the storage accessor every persisted entity in
// this system is built on: a typed capability object bound to one collection
// of one logical database.
//
// An Accessor exposes a deliberately small surface (Get, Has, Add, Update,
// Delete) plus index helpers for schema initialization. Lookup misses are
// represented as nil, never as errors; unique-index violations surface as
// ErrDuplicateKey so callers can distinguish conflicts from infrastructure
// failures.
//
//	accessor := schema.NewAccessor[sessionRecord](db, "session")
//
//	rec, err := accessor.Get(ctx, bson.M{"sid": sid})
//	if err != nil {
//		// storage failure
//	}
//	if rec == nil {
//		// no such document
//	}
//
// # TTL Indexes
//
// EnsureTTLIndex lets the store enforce retention windows (audit records,
// idle sessions). When the retention window changes between deployments,
// the helper retunes the existing index via collMod instead of recreating
// it; the retune is best effort and reported separately so initialization
// can log it without failing.
package schema
