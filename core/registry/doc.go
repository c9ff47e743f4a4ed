// Package registry provides the process-scoped connection and schema caches.
//
// A Registry hands out database connections keyed by identifier and schema
// instances keyed by schema name, constructing each at most once for the
// process lifetime. First-time construction is serialized per key, so
// concurrent first requests cannot create duplicate connections or run a
// schema's initialization twice. A failed construction is not cached; the
// next caller retries.
//
// The registry is an explicit dependency: create it during startup and pass
// it to the components that need it.
//
//	reg := registry.New(registry.WithLogger(log))
//
//	// First use establishes the connection and caches it under "schema".
//	client, err := reg.Connection(ctx, "schema", cfg.Connection)
//
//	// Later uses need only the identifier.
//	client, err = reg.Connection(ctx, "schema", "")
//
// Schema instances follow the same shape through the generic Schema
// function; each schema package wraps it with its own typed constructor:
//
//	store, err := session.NewSchema(ctx, reg, &opts) // first use
//	store, err = session.NewSchema(ctx, reg, nil)    // cached
//
// Accessing an unknown connection without a connection string fails with
// ErrMissingConnectionParameters; accessing an unbuilt schema without
// options fails with ErrMissingSchemaOptions.
package registry
