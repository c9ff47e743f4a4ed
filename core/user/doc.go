// Package user manages account records: identifier-based resolution,
// validated creation with unique uid and bearer-token generation, and
// additive linkage of external identity-provider ids.
//
// Accounts are resolved by any one of three identifier classes through a
// single lookup: the public uid, the email address, or a linked external
// provider id. A miss yields (nil, nil), not an error.
//
// Creation fills empty UID and Token fields with fresh random values
// drawn through a bounded collision-retry loop before the insert, so an
// exhausted ErrIdentifierExhausted signals a broken entropy source rather
// than surfacing as a duplicate-key insert failure.
//
// The mongo-backed Schema is obtained through the registry and shares its
// deduplication guarantees:
//
//	users, err := user.NewSchema(ctx, reg, &schema.Options{
//		Server:     "identity-1",
//		Connection: os.Getenv("MONGODB_URL"),
//		Database:   "identity",
//	})
//
// MemoryStore provides the same Store contract in-process for tests and
// local development.
package user
