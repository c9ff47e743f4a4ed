// Package authflow implements the OAuth2 login flow that links external
// identities to accounts.
//
// The flow has two externally visible phases, correlated only through the
// session's data bag. Phase A stores a one-time PKCE code verifier and
// state value in the session and redirects the user to the provider's
// authorization endpoint. Phase B requires that verifier, exchanges the
// callback's authorization code for an access token, fetches the identity
// profile, resolves or creates the account owning the profile's email,
// links the provider id additively, and writes the account's uid into the
// session.
//
// Email is the primary account-linking key: the profile lookup is always
// by email first, and provider ids are secondary linkage fields attached
// to whichever account owns that email. Re-running phase B for an
// already-linked account creates no duplicate.
//
// Usage:
//
//	client := authflow.NewGoogleClient(config.MustLoad[authflow.GoogleConfig]())
//	flow := authflow.New(user.ProviderGoogle, client, sessions, users,
//		authflow.WithLogger(log))
//	flow.Register(e)
package authflow
