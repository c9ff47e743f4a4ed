package config

import "errors"

// ErrNilConfig is returned when Load receives a nil configuration pointer.
var ErrNilConfig = errors.New("config: nil config pointer")
