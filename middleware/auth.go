package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/response"
	"github.com/amethyst-live/identity/core/user"
)

const userContextKey = "identity.user"

// ForwardRequestToHeader carries the original URL on the login redirect so
// the client can return after completing the flow.
const ForwardRequestToHeader = "Forward-Request-To"

// DefaultLoginPath is the login-flow entry point unauthenticated sessions
// are redirected to.
const DefaultLoginPath = "/auth/flow/google"

// AuthConfig configures the authentication resolver middleware.
type AuthConfig struct {
	// Users resolves accounts by identifier.
	Users user.Store

	// Logger for structured logging (default: discard).
	Logger *slog.Logger

	// AllowSession enables resolution through the request's session.
	AllowSession bool

	// AllowToken enables resolution through the Authorization header,
	// format "uid:token".
	AllowToken bool

	// Require turns absence of identity into a failure: a login redirect
	// on the session path, a 401 envelope otherwise.
	Require bool

	// LoginPath overrides DefaultLoginPath.
	LoginPath string
}

// Authenticate creates the resolver with all sources enabled and identity
// required.
func Authenticate(users user.Store) echo.MiddlewareFunc {
	return AuthenticateWithConfig(AuthConfig{
		Users:        users,
		AllowSession: true,
		AllowToken:   true,
		Require:      true,
	})
}

// AuthenticateWithConfig creates the authentication resolver middleware.
//
// Sources are tried in order. The session path reads the account reference
// from the session's data bag; a missing or unauthenticated session with
// Require set short-circuits into a 302 redirect to the login entry point,
// with the original URL preserved in the Forward-Request-To header. The
// token path parses "uid:token" from the Authorization header, resolves by
// uid, and accepts only on a constant-time token match. The resolver only
// sets the request-scoped user slot; it never mutates the account record.
func AuthenticateWithConfig(cfg AuthConfig) echo.MiddlewareFunc {
	if cfg.Users == nil {
		panic("middleware: user store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var resolved *user.User

			if cfg.AllowSession {
				sess := SessionFromContext(c)
				if sess == nil || !sess.IsAuthenticated() {
					if cfg.Require {
						c.Response().Header().Set(ForwardRequestToHeader, requestURL(c))
						return c.Redirect(http.StatusFound, cfg.LoginPath)
					}
				} else {
					u, err := cfg.Users.GetByIdentifier(ctx, sess.Data.UserUID)
					if err != nil {
						cfg.Logger.ErrorContext(ctx, "session identity lookup failed",
							logger.Component("middleware.auth"),
							logger.SessionID(sess.SID),
							logger.Error(err),
						)
					}
					resolved = u
				}
			}

			if cfg.AllowToken && resolved == nil {
				if u := resolveBearer(c, cfg); u != nil {
					resolved = u
				}
			}

			if cfg.Require && resolved == nil {
				return response.JSON(c, response.Failure(response.StatusUnauthorized,
					"Unable to resolve an authenticated identity from session or bearer credentials."))
			}

			if resolved != nil {
				c.Set(userContextKey, resolved)
			}
			return next(c)
		}
	}
}

// UserFromContext returns the identity resolved by the middleware, nil when
// the request is anonymous.
func UserFromContext(c echo.Context) *user.User {
	u, _ := c.Get(userContextKey).(*user.User)
	return u
}

func resolveBearer(c echo.Context, cfg AuthConfig) *user.User {
	ctx := c.Request().Context()

	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	uid, token, ok := strings.Cut(authorization, ":")
	if !ok || uid == "" || token == "" {
		return nil
	}

	u, err := cfg.Users.GetByIdentifier(ctx, uid)
	if err != nil {
		cfg.Logger.ErrorContext(ctx, "bearer identity lookup failed",
			logger.Component("middleware.auth"),
			logger.UserID(uid),
			logger.Error(err),
		)
		return nil
	}
	if u == nil || u.Token == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(u.Token), []byte(token)) != 1 {
		return nil
	}
	return u
}

func requestURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
}
