// Package randstr provides cryptographically secure random string generation
// with a URL-safe alphabet.
//
// The package backs secret identifiers that travel in cookies, headers, and
// query strings: session verifiers, bearer tokens, OAuth2 state parameters.
// All output uses the 64-character alphabet [A-Za-z0-9-_], which survives URL
// encoding untouched.
//
// Basic usage:
//
//	import "github.com/amethyst-live/identity/pkg/randstr"
//
//	verifier, err := randstr.New(128)
//	if err != nil {
//		// crypto/rand failed; the process has bigger problems
//	}
//
// MustNew panics instead of returning an error and is intended for startup
// paths where a broken randomness source should stop the process:
//
//	state := randstr.MustNew(32)
package randstr
