package registry

import "errors"

var (
	// ErrMissingConnectionParameters is returned when an unknown connection
	// identifier is accessed without a connection string.
	ErrMissingConnectionParameters = errors.New("registry: unknown connection accessed without connection string")
	// ErrMissingSchemaOptions is returned when a schema is accessed before
	// construction and no options were supplied.
	ErrMissingSchemaOptions = errors.New("registry: schema options must be specified during first use")
)
