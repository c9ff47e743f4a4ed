package authflow

import "errors"

var (
	// ErrExchangeFailed is returned when the authorization code could not
	// be traded for an access token.
	ErrExchangeFailed = errors.New("authflow: authorization code exchange failed")
	// ErrProfileFetchFailed is returned when the provider's profile
	// endpoint rejects or cannot serve the identity document.
	ErrProfileFetchFailed = errors.New("authflow: profile fetch failed")
)
