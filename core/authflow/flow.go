package authflow

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/response"
	"github.com/amethyst-live/identity/core/session"
	"github.com/amethyst-live/identity/core/user"
	"github.com/amethyst-live/identity/middleware"
)

// ReturnToHeader names the request header a caller can set in phase A to
// record where the client should be sent after the flow completes.
const ReturnToHeader = "ReturnTo"

// Flow wires one provider's login flow: the authorization redirect (phase
// A) and the callback exchange (phase B), correlated only through the
// session's data bag.
type Flow struct {
	provider user.Provider
	client   Client
	sessions session.Store
	users    user.Store
	log      *slog.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger sets the flow's logger (default: discard).
func WithLogger(log *slog.Logger) Option {
	return func(f *Flow) { f.log = log }
}

// New builds the login flow for one provider.
func New(provider user.Provider, client Client, sessions session.Store, users user.Store, opts ...Option) *Flow {
	f := &Flow{
		provider: provider,
		client:   client,
		sessions: sessions,
		users:    users,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register mounts both phases under /auth/flow/{provider} and
// /auth/flow/{provider}-connect, with session resolve-or-create applied so
// the flow can always persist its correlation state.
func (f *Flow) Register(e *echo.Echo) {
	sess := middleware.Session(f.sessions)
	e.GET("/auth/flow/"+string(f.provider), f.Begin, sess)
	e.GET("/auth/flow/"+string(f.provider)+"-connect", f.Connect, sess)
}

// Begin is phase A: store a fresh PKCE verifier, state value, and the
// caller's intended return URL in the session, then redirect to the
// provider's authorization endpoint. No account lookup happens here.
func (f *Flow) Begin(c echo.Context) error {
	ctx := c.Request().Context()

	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to establish session. Cookies are required for OAuth2."))
	}

	auth, err := f.client.AuthorizationURI(ctx)
	if err != nil {
		f.log.ErrorContext(ctx, "authorization uri build failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to start the login flow. Please try again and contact support if this issue persists."))
	}

	sess.Data.CodeVerifier = auth.CodeVerifier
	sess.Data.OAuthState = auth.State
	sess.Data.ReturnTo = c.Request().Header.Get(ReturnToHeader)
	if err := f.sessions.Update(ctx, sess.SID, sess.Data); err != nil {
		f.log.ErrorContext(ctx, "session persist failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to persist session state. Please try again and contact support if this issue persists."))
	}

	return c.Redirect(http.StatusFound, auth.URI)
}

// Connect is phase B: exchange the callback's authorization code for an
// access token, resolve or create the account behind the fetched profile,
// link the provider id, and authenticate the session.
//
// The stored verifier is single use: it is cleared and the session
// persisted before the profile is trusted, so replaying the callback with
// a stale session fails at the verifier check.
func (f *Flow) Connect(c echo.Context) error {
	ctx := c.Request().Context()

	sess := middleware.SessionFromContext(c)
	verifier := ""
	if sess != nil {
		verifier = sess.Data.CodeVerifier
	}
	if verifier == "" {
		return response.JSON(c, response.Failure(response.StatusBadRequest,
			"Unable to reference codeVerifier. Cookies are required for OAuth2, or you attempted to access this resource directly."))
	}

	if state := c.QueryParam("state"); sess.Data.OAuthState != "" && state != sess.Data.OAuthState {
		return response.JSON(c, response.Failure(response.StatusBadRequest,
			"Unable to verify request state. Please restart the login flow."))
	}

	accessToken, err := f.client.Exchange(ctx, c.QueryParam("code"), verifier)
	if err != nil {
		f.log.ErrorContext(ctx, "code exchange failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to exchange authorization code. Please restart the login flow."))
	}

	sess.Data.CodeVerifier = ""
	sess.Data.OAuthState = ""
	if err := f.sessions.Update(ctx, sess.SID, sess.Data); err != nil {
		f.log.ErrorContext(ctx, "session persist failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to persist session state. Please try again and contact support if this issue persists."))
	}

	profile, err := f.client.Profile(ctx, accessToken)
	if err != nil {
		f.log.ErrorContext(ctx, "profile fetch failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to fetch identity profile. Please restart the login flow."))
	}

	if !profile.VerifiedEmail {
		return response.JSON(c, response.Failure(response.StatusBadRequest,
			"Unable to utilize identity. Please verify your email with this provider."))
	}

	resolved, err := f.users.GetByIdentifier(ctx, profile.Email)
	if err != nil {
		f.log.ErrorContext(ctx, "account lookup failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to resolve profile. Please try again and contact support if this issue persists."))
	}

	if resolved == nil {
		resolved = &user.User{
			Email:            profile.Email,
			EmailVerified:    profile.VerifiedEmail,
			EmailDeliverable: true,
			FirstName:        profile.GivenName,
			LastName:         profile.FamilyName,
			DateOfBirth:      "00-00-0000",
		}
		if err := f.users.Create(ctx, resolved); err != nil {
			f.log.ErrorContext(ctx, "account creation failed",
				logger.Component("authflow"),
				logger.SessionID(sess.SID),
				logger.Error(err),
			)
			return response.JSON(c, response.Failure(response.StatusInternalServerError,
				"Unable to register profile. Please try again and contact support if this issue persists."))
		}
	}

	if !resolved.IsLinked(f.provider) {
		if err := f.users.LinkProvider(ctx, resolved.UID, f.provider, profile.ID); err != nil {
			f.log.ErrorContext(ctx, "provider linkage failed",
				logger.Component("authflow"),
				logger.UserID(resolved.UID),
				logger.Error(err),
			)
		}
	}

	sess.Data.UserUID = resolved.UID
	if err := f.sessions.Update(ctx, sess.SID, sess.Data); err != nil {
		f.log.ErrorContext(ctx, "session persist failed",
			logger.Component("authflow"),
			logger.SessionID(sess.SID),
			logger.Error(err),
		)
		return response.JSON(c, response.Failure(response.StatusInternalServerError,
			"Unable to persist session state. Please try again and contact support if this issue persists."))
	}

	return response.JSON(c, response.Success("Authentication Successful.").With("user", resolved))
}
