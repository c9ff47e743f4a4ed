package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amethyst-live/identity/core/schema"
	"github.com/amethyst-live/identity/pkg/randstr"
)

// MemoryStore is an in-process Store for tests and local development.
// It enforces the same semantics as the mongo-backed schema: exact
// (sid, vid) lookups, sliding retention measured from LastAccessedAt,
// and lastUpdatedAt stamping on every mutation.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	retention time.Duration
	vidLength int
	now       func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTimeSource overrides the clock, letting tests age sessions past the
// retention window without sleeping.
func WithTimeSource(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

// WithVerifierLength overrides the generated verifier length.
func WithVerifierLength(length int) MemoryOption {
	return func(m *MemoryStore) {
		m.vidLength = length
	}
}

// NewMemoryStore creates an empty in-memory store with the given sliding
// retention window.
func NewMemoryStore(retention time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		sessions:  make(map[string]*Session),
		retention: retention,
		vidLength: 128,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create generates and stores a new anonymous session.
func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	vid, err := randstr.New(m.vidLength)
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := Session{
		Model:          schema.Model{CreatedAt: now},
		SID:            uuid.NewString(),
		VID:            vid,
		LastAccessedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[sess.SID]; exists {
		return nil, ErrCreateConflict
	}
	m.sessions[sess.SID] = &sess

	out := sess
	return &out, nil
}

// Get looks up the session by the exact (sid, vid) pair, purging sessions
// idle past the retention window on the way.
func (m *MemoryStore) Get(ctx context.Context, sid, vid string) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sid]
	if !ok {
		return nil, nil
	}
	if now.Sub(sess.LastAccessedAt) > m.retention {
		delete(m.sessions, sid)
		return nil, nil
	}
	if sess.VID != vid {
		return nil, nil
	}

	sess.LastAccessedAt = now

	out := *sess
	return &out, nil
}

// Update replaces the data bag of the session with the given sid.
// A missing session is not an error, matching the keyed update semantics
// of the mongo store.
func (m *MemoryStore) Update(ctx context.Context, sid string, data Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sid]; ok {
		sess.Data = data
		sess.LastUpdatedAt = m.now()
	}
	return nil
}

// Age rewinds a stored session's last-access stamp by the given amount.
// Test helper for simulating idle sessions.
func (m *MemoryStore) Age(sid string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sid]; ok {
		sess.LastAccessedAt = sess.LastAccessedAt.Add(-d)
	}
}
