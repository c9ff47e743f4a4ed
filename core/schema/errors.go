package schema

import "errors"

var (
	// ErrDuplicateKey is returned when an insert or update violates a
	// unique index.
	ErrDuplicateKey = errors.New("schema: duplicate key")
	// ErrIndexSetup is returned when index creation fails during schema
	// initialization. Schemas remain usable; the failure is traced.
	ErrIndexSetup = errors.New("schema: index setup failed")
)
