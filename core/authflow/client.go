package authflow

import "context"

// Authorization is the outcome of starting an authorization-code grant:
// the URI to redirect the end user to, plus the PKCE verifier and state
// value that must survive until the callback.
type Authorization struct {
	URI          string
	CodeVerifier string
	State        string
}

// Profile is the minimal identity document fetched from the provider after
// a successful code exchange.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// Client abstracts one OAuth2 provider for the login flow. Implementations
// must be safe for concurrent use.
type Client interface {
	// AuthorizationURI builds a fresh authorization redirect with a
	// one-time PKCE verifier and state value.
	AuthorizationURI(ctx context.Context) (Authorization, error)

	// Exchange trades the callback's authorization code plus the stored
	// verifier for an access token.
	Exchange(ctx context.Context, code, verifier string) (accessToken string, err error)

	// Profile fetches the provider's identity document for the token.
	Profile(ctx context.Context, accessToken string) (*Profile, error)
}
