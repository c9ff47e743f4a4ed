// Package session provides the server-side session lifecycle: creation,
// lookup with sliding renewal, mutation, and store-driven expiry.
//
// A session is identified by a public sid (random UUID) and authorized by a
// secret vid (long random URL-safe verifier). The (sid, vid) pair is the
// only valid lookup key; a lookup miss never signals which half failed.
//
// # Lifecycle
//
//	ABSENT -> CREATED -> ACTIVE (renewed on each lookup) -> EXPIRED (TTL)
//
// There is no explicit logout state. Sessions idle longer than the
// retention window (default 24h, measured from LastAccessedAt) are purged
// by the store's TTL index; every successful lookup renews the window
// fire-and-forget, so renewal failures cost at most a stale stamp.
//
// # Stores
//
// Schema is the mongo-backed store obtained through the registry:
//
//	store, err := session.NewSchema(ctx, reg, &opts) // first use
//	store, err = session.NewSchema(ctx, reg, nil)    // cached singleton
//
// MemoryStore implements the same Store contract in process memory for
// tests and local development.
//
// # Session Data
//
// Data is a typed struct, not an open-ended map: CodeVerifier, OAuthState,
// and ReturnTo carry OAuth2 flow state between requests, and UserUID marks
// the session authenticated. Mutations go through Store.Update, which
// stamps lastUpdatedAt on every write.
package session
