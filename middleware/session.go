package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/response"
	"github.com/amethyst-live/identity/core/session"
)

// Cookie names carrying the session credential pair.
const (
	CookieSID = "sid"
	CookieVID = "vid"
)

const sessionContextKey = "identity.session"

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Store resolves and creates sessions.
	Store session.Store

	// Logger for structured logging (default: discard).
	Logger *slog.Logger

	// Create controls behavior when no valid session is presented:
	// when true a fresh session is created and its cookies set, when
	// false the request proceeds without a session.
	Create bool

	// Skip defines a function to skip middleware execution for specific requests.
	Skip func(c echo.Context) bool
}

// Session creates middleware that resolves the session from the sid/vid
// cookie pair and stores it on the request context, creating a fresh
// session when none resolves.
func Session(store session.Store) echo.MiddlewareFunc {
	return SessionWithConfig(SessionConfig{Store: store, Create: true})
}

// SessionWithConfig creates session middleware with custom configuration.
//
// Resolution order: read the sid/vid cookies, look up the exact pair, and
// on any miss either build a replacement session (Create) or continue with
// no session. Cookies are scoped to path "/", marked secure on HTTPS, and
// carry no expiry; the server-side retention window is authoritative.
func SessionWithConfig(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Store == nil {
		panic("middleware: session store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}

			ctx := c.Request().Context()

			sid := cookieValue(c, CookieSID)
			vid := cookieValue(c, CookieVID)

			var sess *session.Session
			if sid != "" && vid != "" {
				var err error
				sess, err = cfg.Store.Get(ctx, sid, vid)
				if err != nil {
					cfg.Logger.ErrorContext(ctx, "session lookup failed",
						logger.Component("middleware.session"),
						logger.SessionID(sid),
						logger.Error(err),
					)
					return response.JSON(c, response.Failure(response.StatusInternalServerError,
						"Unable to resolve session. Please try again and contact support if this issue persists."))
				}
			}

			if sess == nil && cfg.Create {
				var err error
				sess, err = cfg.Store.Create(ctx)
				if err != nil {
					cfg.Logger.ErrorContext(ctx, "session creation failed",
						logger.Component("middleware.session"),
						logger.Error(err),
					)
					return response.JSON(c, response.Failure(response.StatusInternalServerError,
						"Unable to establish session. Please try again and contact support if this issue persists."))
				}
				setSessionCookies(c, sess)
			}

			if sess != nil {
				c.Set(sessionContextKey, sess)
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session resolved by the middleware, nil
// when the request carries none.
func SessionFromContext(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookies(c echo.Context, sess *session.Session) {
	secure := c.Scheme() == "https"
	c.SetCookie(&http.Cookie{
		Name:   CookieSID,
		Value:  sess.SID,
		Path:   "/",
		Secure: secure,
	})
	c.SetCookie(&http.Cookie{
		Name:   CookieVID,
		Value:  sess.VID,
		Path:   "/",
		Secure: secure,
	})
}
