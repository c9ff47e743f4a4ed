package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amethyst-live/identity/pkg/randstr"
)

// MemoryStore is an in-process Store for tests and local development,
// enforcing the same contract as the mongo-backed schema: OR-identifier
// resolution, validated creation with unique uid/token generation, and
// additive provider linkage.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*User // keyed by uid
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (m *MemoryStore) find(identifier string) *User {
	for _, u := range m.users {
		if u.UID == identifier || u.Email == identifier {
			return u
		}
		for _, p := range providers {
			if id := u.ProviderID(p); id != "" && id == identifier {
				return u
			}
		}
	}
	return nil
}

// GetByIdentifier resolves a user by uid, email, or any linked external id.
func (m *MemoryStore) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u := m.find(identifier); u != nil {
		out := *u
		return &out, nil
	}
	return nil, nil
}

// Create validates and stores a new account, filling empty UID and Token
// fields with fresh unique values.
func (m *MemoryStore) Create(ctx context.Context, u *User) error {
	if u.Email == "" {
		return ErrMissingEmail
	}
	if u.FirstName == "" || u.LastName == "" {
		return ErrMissingName
	}
	if u.DateOfBirth == "" {
		return ErrMissingDateOfBirth
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u.UID == "" {
		for {
			candidate := uuid.NewString()
			if _, taken := m.users[candidate]; !taken {
				u.UID = candidate
				break
			}
		}
	} else if _, taken := m.users[u.UID]; taken {
		return ErrCreateFailed
	}

	if u.Token == "" {
		token, err := randstr.New(TokenLength)
		if err != nil {
			return err
		}
		u.Token = token
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	if existing := m.find(u.Email); existing != nil {
		return ErrCreateFailed
	}

	stored := *u
	m.users[u.UID] = &stored
	return nil
}

// LinkProvider attaches an external id to the account owning uid, leaving
// already-linked providers untouched.
func (m *MemoryStore) LinkProvider(ctx context.Context, uid string, p Provider, providerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[uid]
	if !ok || u.IsLinked(p) {
		return nil
	}
	u.setProviderID(p, providerID)
	u.LastUpdatedAt = time.Now()
	return nil
}
