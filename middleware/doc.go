// Package middleware provides the request-scoped identity plumbing: session
// resolution from the sid/vid cookie pair and the layered authentication
// resolver.
//
// The session middleware resolves or creates a session and stores it on the
// echo context; handlers read it back with SessionFromContext. The resolver
// runs after it, trying the enabled identity sources in order (session
// first, then bearer token) and storing the resolved account for
// UserFromContext.
//
// Usage:
//
//	e := echo.New()
//	e.Use(middleware.Session(sessions))
//	e.GET("/me", handleMe, middleware.Authenticate(users))
//
// Routes that must observe but not create sessions (for example the OAuth
// callback) use SessionWithConfig with Create disabled.
package middleware
