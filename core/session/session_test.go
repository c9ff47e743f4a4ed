package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/core/session"
)

func TestSessionIsAuthenticated(t *testing.T) {
	t.Parallel()

	var sess session.Session
	assert.False(t, sess.IsAuthenticated())

	sess.Data.UserUID = "u-123"
	assert.True(t, sess.IsAuthenticated())
}

func TestMemoryStoreCreate(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	t.Run("generates valid identifiers", func(t *testing.T) {
		t.Parallel()

		sess, err := store.Create(ctx)
		require.NoError(t, err)

		_, err = uuid.Parse(sess.SID)
		assert.NoError(t, err, "sid must be a valid UUID")
		assert.Len(t, sess.VID, 128)
		assert.False(t, sess.CreatedAt.IsZero())
		assert.Equal(t, sess.CreatedAt, sess.LastAccessedAt)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("concurrent creations yield distinct sessions", func(t *testing.T) {
		t.Parallel()

		const n = 50
		sids := make([]string, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess, err := store.Create(ctx)
				assert.NoError(t, err)
				sids[i] = sess.SID
			}()
		}
		wg.Wait()

		seen := make(map[string]struct{}, n)
		for _, sid := range sids {
			_, dup := seen[sid]
			assert.False(t, dup, "duplicate sid %s", sid)
			seen[sid] = struct{}{}
		}
	})

	t.Run("honors configured verifier length", func(t *testing.T) {
		t.Parallel()

		long := session.NewMemoryStore(time.Hour, session.WithVerifierLength(256))
		sess, err := long.Create(ctx)
		require.NoError(t, err)
		assert.Len(t, sess.VID, 256)
	})
}

func TestMemoryStoreGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round-trips the created session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(24 * time.Hour)
		created, err := store.Create(ctx)
		require.NoError(t, err)

		got, err := store.Get(ctx, created.SID, created.VID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.SID, got.SID)
		assert.Equal(t, created.VID, got.VID)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("wrong verifier misses without detail", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(24 * time.Hour)
		created, err := store.Create(ctx)
		require.NoError(t, err)

		got, err := store.Get(ctx, created.SID, "not-the-verifier")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.Get(ctx, uuid.NewString(), created.VID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("renews last access monotonically", func(t *testing.T) {
		t.Parallel()

		current := time.Now()
		store := session.NewMemoryStore(24*time.Hour, session.WithTimeSource(func() time.Time { return current }))

		created, err := store.Create(ctx)
		require.NoError(t, err)

		previous := created.LastAccessedAt
		for range 5 {
			current = current.Add(time.Minute)
			got, err := store.Get(ctx, created.SID, created.VID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.False(t, got.LastAccessedAt.Before(previous), "renewal must be monotonic")
			previous = got.LastAccessedAt
		}
	})

	t.Run("session idle past retention is unreachable", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Hour)
		created, err := store.Create(ctx)
		require.NoError(t, err)

		store.Age(created.SID, 2*time.Hour)

		got, err := store.Get(ctx, created.SID, created.VID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemoryStoreUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("persists the data bag and stamps lastUpdatedAt", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(24 * time.Hour)
		created, err := store.Create(ctx)
		require.NoError(t, err)
		assert.True(t, created.LastUpdatedAt.IsZero())

		err = store.Update(ctx, created.SID, session.Data{
			CodeVerifier: "verifier",
			ReturnTo:     "/dashboard",
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, created.SID, created.VID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "verifier", got.Data.CodeVerifier)
		assert.Equal(t, "/dashboard", got.Data.ReturnTo)
		assert.False(t, got.LastUpdatedAt.IsZero())
	})

	t.Run("missing session is not an error", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(24 * time.Hour)
		assert.NoError(t, store.Update(ctx, uuid.NewString(), session.Data{UserUID: "u-1"}))
	})

	t.Run("clearing a field persists the zero value", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(24 * time.Hour)
		created, err := store.Create(ctx)
		require.NoError(t, err)

		require.NoError(t, store.Update(ctx, created.SID, session.Data{CodeVerifier: "one-shot"}))
		require.NoError(t, store.Update(ctx, created.SID, session.Data{}))

		got, err := store.Get(ctx, created.SID, created.VID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Data.CodeVerifier)
	})
}
