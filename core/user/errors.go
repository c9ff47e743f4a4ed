package user

import "errors"

var (
	// ErrMissingEmail is returned when creating a user without an email.
	ErrMissingEmail = errors.New("user: field \"email\" is required")
	// ErrMissingName is returned when creating a user without a first
	// and/or last name.
	ErrMissingName = errors.New("user: field \"firstName\" and/or \"lastName\" is required")
	// ErrMissingDateOfBirth is returned when creating a user without a
	// date of birth.
	ErrMissingDateOfBirth = errors.New("user: field \"dateOfBirth\" is required")
	// ErrCreateFailed is returned when the account record cannot be
	// written to the store.
	ErrCreateFailed = errors.New("user: failed to create user")
	// ErrIdentifierExhausted is returned when the collision-retry loop for
	// uid or token generation exceeds its attempt bound. With healthy
	// entropy this indicates a broken randomness source, not bad luck.
	ErrIdentifierExhausted = errors.New("user: identifier generation exhausted retry budget")
)
