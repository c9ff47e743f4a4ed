package session

import "errors"

// ErrCreateConflict is returned when a freshly generated session collides
// with an existing record on insert. Entropy makes this effectively
// impossible; the unique index enforces it anyway.
var ErrCreateConflict = errors.New("session: create conflict")
