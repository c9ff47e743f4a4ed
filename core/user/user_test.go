package user_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/core/user"
)

func newUser() *user.User {
	return &user.User{
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-04-01",
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fills uid and token", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		u := newUser()
		require.NoError(t, store.Create(ctx, u))

		assert.NotEmpty(t, u.UID)
		assert.Len(t, u.Token, user.TokenLength)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("keeps provided uid", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		u := newUser()
		u.UID = "fixed-uid"
		require.NoError(t, store.Create(ctx, u))
		assert.Equal(t, "fixed-uid", u.UID)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()

		u := newUser()
		u.Email = ""
		assert.ErrorIs(t, store.Create(ctx, u), user.ErrMissingEmail)

		u = newUser()
		u.LastName = ""
		assert.ErrorIs(t, store.Create(ctx, u), user.ErrMissingName)

		u = newUser()
		u.DateOfBirth = ""
		assert.ErrorIs(t, store.Create(ctx, u), user.ErrMissingDateOfBirth)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newUser()))
		assert.ErrorIs(t, store.Create(ctx, newUser()), user.ErrCreateFailed)
	})

	t.Run("concurrent creations yield distinct uids", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()

		const n = 32
		uids := make([]string, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u := newUser()
				u.Email = "jane+" + string(rune('a'+i%26)) + string(rune('a'+i/26)) + "@example.com"
				if err := store.Create(ctx, u); err == nil {
					uids[i] = u.UID
				}
			}()
		}
		wg.Wait()

		seen := make(map[string]bool, n)
		for _, uid := range uids {
			require.NotEmpty(t, uid)
			assert.False(t, seen[uid], "uid %q issued twice", uid)
			seen[uid] = true
		}
	})
}

func TestGetByIdentifier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := user.NewMemoryStore()
	u := newUser()
	u.GoogleUserID = "google-123"
	require.NoError(t, store.Create(ctx, u))

	t.Run("uid, email, and provider id resolve the same user", func(t *testing.T) {
		t.Parallel()

		for _, identifier := range []string{u.UID, u.Email, "google-123"} {
			got, err := store.GetByIdentifier(ctx, identifier)
			require.NoError(t, err)
			require.NotNil(t, got, "identifier %q", identifier)
			assert.Equal(t, u.UID, got.UID)
		}
	})

	t.Run("miss yields nil without error", func(t *testing.T) {
		t.Parallel()

		got, err := store.GetByIdentifier(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestLinkProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("links once", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		u := newUser()
		require.NoError(t, store.Create(ctx, u))

		require.NoError(t, store.LinkProvider(ctx, u.UID, user.ProviderGoogle, "google-1"))

		got, err := store.GetByIdentifier(ctx, u.UID)
		require.NoError(t, err)
		assert.Equal(t, "google-1", got.ProviderID(user.ProviderGoogle))
		assert.True(t, got.IsLinked(user.ProviderGoogle))
	})

	t.Run("second link is a no-op", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		u := newUser()
		require.NoError(t, store.Create(ctx, u))

		require.NoError(t, store.LinkProvider(ctx, u.UID, user.ProviderGoogle, "first"))
		require.NoError(t, store.LinkProvider(ctx, u.UID, user.ProviderGoogle, "second"))

		got, err := store.GetByIdentifier(ctx, u.UID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.ProviderID(user.ProviderGoogle))
	})

	t.Run("other providers stay independent", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		u := newUser()
		require.NoError(t, store.Create(ctx, u))

		require.NoError(t, store.LinkProvider(ctx, u.UID, user.ProviderGoogle, "g-1"))
		require.NoError(t, store.LinkProvider(ctx, u.UID, user.ProviderDiscord, "d-1"))

		got, err := store.GetByIdentifier(ctx, u.UID)
		require.NoError(t, err)
		assert.Equal(t, "g-1", got.ProviderID(user.ProviderGoogle))
		assert.Equal(t, "d-1", got.ProviderID(user.ProviderDiscord))
		assert.False(t, got.IsLinked(user.ProviderGitHub))
	})

	t.Run("unknown uid is ignored", func(t *testing.T) {
		t.Parallel()

		store := user.NewMemoryStore()
		assert.NoError(t, store.LinkProvider(ctx, "missing", user.ProviderGoogle, "g-1"))
	})
}
