package session

import (
	"context"
	"time"

	"github.com/amethyst-live/identity/core/schema"
)

// Data is the typed session-scoped state bag. The fields are the transient
// values business logic stashes between requests; all of them are optional
// and none of them leave the server.
type Data struct {
	// CodeVerifier is the PKCE secret generated before redirecting to an
	// authorization server and required again at token-exchange time.
	// Single use: the callback clears it before trusting the exchange.
	CodeVerifier string `bson:"codeVerifier,omitempty" json:"-"`

	// OAuthState is the anti-forgery state parameter accompanying the
	// authorization redirect.
	OAuthState string `bson:"oauthState,omitempty" json:"-"`

	// ReturnTo is the URL to send the client back to after login.
	ReturnTo string `bson:"returnTo,omitempty" json:"-"`

	// UserUID references the authenticated account, empty for anonymous
	// sessions.
	UserUID string `bson:"uid,omitempty" json:"-"`
}

// Session represents one client's continuity across requests. It is a
// transient value object: callers may mutate the in-memory copy but must
// persist changes explicitly through Store.Update.
type Session struct {
	schema.Model `bson:",inline"`

	// SID is the public session identifier (opaque random UUID).
	SID string `bson:"sid" json:"sid"`

	// VID is the secret verifier. It must accompany SID on every lookup;
	// SID alone is not sufficient authorization.
	VID string `bson:"vid" json:"-"`

	// LastAccessedAt drives the sliding retention window: a session idle
	// longer than the window is purged by the store.
	LastAccessedAt time.Time `bson:"lastAccessedAt" json:"lastAccessedAt"`

	Data Data `bson:"data" json:"-"`
}

// IsAuthenticated reports whether the session references an account.
func (s Session) IsAuthenticated() bool {
	return s.Data.UserUID != ""
}

// Store is the session persistence contract.
type Store interface {
	// Create generates and persists a new anonymous session.
	Create(ctx context.Context) (*Session, error)

	// Get looks up a session by the exact (sid, vid) pair and returns nil
	// when the pair does not match, without signaling which half failed.
	// On a hit the last-access time is stamped fire-and-forget.
	Get(ctx context.Context, sid, vid string) (*Session, error)

	// Update replaces the session's data bag, filtered by sid alone, and
	// stamps the last-update time. Callers are expected to have validated
	// the session via Get first.
	Update(ctx context.Context, sid string, data Data) error
}

// Config holds session lifecycle settings.
type Config struct {
	// Retention is the sliding idle window measured from LastAccessedAt.
	Retention time.Duration `env:"SESSION_RETENTION" envDefault:"24h"`

	// VerifierLength is the length of the generated secret verifier.
	VerifierLength int `env:"SESSION_VERIFIER_LENGTH" envDefault:"128"`
}
