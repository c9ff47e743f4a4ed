package async_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/pkg/async"
)

func TestExec(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for successful operation", func(t *testing.T) {
		t.Parallel()

		future := async.Exec(context.Background(), func(ctx context.Context) error {
			time.Sleep(20 * time.Millisecond)
			return nil
		})

		require.NoError(t, future.Await())
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates operation error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("storage unavailable")
		future := async.Exec(context.Background(), func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, future.Await(), wantErr)
	})

	t.Run("returns context error when pre-canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		future := async.Exec(ctx, func(ctx context.Context) error {
			return nil
		})

		assert.ErrorIs(t, future.Await(), context.Canceled)
	})

	t.Run("IsComplete does not block", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		future := async.Exec(context.Background(), func(ctx context.Context) error {
			<-release
			return nil
		})

		assert.False(t, future.IsComplete())
		close(release)
		require.NoError(t, future.Await())
		assert.True(t, future.IsComplete())
	})
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("returns result before deadline", func(t *testing.T) {
		t.Parallel()

		future := async.Exec(context.Background(), func(ctx context.Context) error {
			return nil
		})

		assert.NoError(t, future.AwaitWithTimeout(time.Second))
	})

	t.Run("returns ErrTimeout when deadline hits first", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		future := async.Exec(context.Background(), func(ctx context.Context) error {
			<-release
			return nil
		})

		assert.ErrorIs(t, future.AwaitWithTimeout(20*time.Millisecond), async.ErrTimeout)
	})
}

func TestFire(t *testing.T) {
	t.Parallel()

	t.Run("runs detached from caller cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // simulate request finishing before the side effect runs

		ran := false
		future := async.Fire(ctx, slog.New(slog.DiscardHandler), "test.op", func(ctx context.Context) error {
			ran = ctx.Err() == nil
			return nil
		})

		require.NoError(t, future.Await())
		assert.True(t, ran, "side effect should run on a non-canceled context")
	})

	t.Run("captures error without propagating", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("write failed")
		future := async.Fire(context.Background(), slog.New(slog.DiscardHandler), "test.op", func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, future.Await(), wantErr)
	})

	t.Run("tolerates nil logger", func(t *testing.T) {
		t.Parallel()

		future := async.Fire(context.Background(), nil, "test.op", func(ctx context.Context) error {
			return errors.New("ignored")
		})

		assert.Error(t, future.Await())
	})
}

func TestAwaitAll(t *testing.T) {
	t.Parallel()

	t.Run("waits for every future", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		count := 0
		futures := make([]*async.Future, 0, 10)
		for range 10 {
			futures = append(futures, async.Exec(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				count++
				return nil
			}))
		}

		require.NoError(t, async.AwaitAll(futures...))
		assert.Equal(t, 10, count)
	})

	t.Run("returns first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("second failed")
		ok := async.Exec(context.Background(), func(ctx context.Context) error { return nil })
		bad := async.Exec(context.Background(), func(ctx context.Context) error { return wantErr })

		assert.ErrorIs(t, async.AwaitAll(ok, bad), wantErr)
	})
}
