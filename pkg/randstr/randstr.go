package randstr

import (
	"crypto/rand"
	"errors"
)

// alphabet contains 64 URL-safe characters, so every 6 bits of entropy map
// to exactly one character without modulo bias.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// ErrInvalidLength is returned when a non-positive length is requested.
var ErrInvalidLength = errors.New("randstr: length must be positive")

// New generates a cryptographically secure random string of the given length
// using the URL-safe alphabet [A-Za-z0-9-_]. Each character carries 6 bits of
// entropy, so a 128-character string holds 768 bits.
func New(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	for i := range b {
		b[i] = alphabet[b[i]&0x3f]
	}
	return string(b), nil
}

// MustNew generates a random string or panics on entropy exhaustion.
// Use only where a failing system randomness source is unrecoverable anyway.
func MustNew(length int) string {
	s, err := New(length)
	if err != nil {
		panic(err)
	}
	return s
}
