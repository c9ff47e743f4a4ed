package registry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/core/registry"
	"github.com/amethyst-live/identity/core/schema"
)

type fakeSchema struct {
	name string
}

func TestConnection(t *testing.T) {
	t.Parallel()

	t.Run("unknown identifier without connection string", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Connection(context.Background(), "command", "")
		assert.ErrorIs(t, err, registry.ErrMissingConnectionParameters)
	})
}

func TestSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := &schema.Options{Server: "test", Database: "amethyst-dev"}

	t.Run("constructs once and caches", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		builds := 0
		build := func(ctx context.Context, r *registry.Registry, o schema.Options) (*fakeSchema, error) {
			builds++
			return &fakeSchema{name: o.Database}, nil
		}

		first, err := registry.Schema(ctx, reg, "session", opts, build)
		require.NoError(t, err)
		assert.Equal(t, "amethyst-dev", first.name)

		// Options are no longer required once cached.
		second, err := registry.Schema(ctx, reg, "session", nil, build)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 1, builds)
	})

	t.Run("requires options on first use", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := registry.Schema(ctx, reg, "user", nil,
			func(ctx context.Context, r *registry.Registry, o schema.Options) (*fakeSchema, error) {
				return &fakeSchema{}, nil
			})
		assert.ErrorIs(t, err, registry.ErrMissingSchemaOptions)
	})

	t.Run("failed construction is retried", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		buildErr := errors.New("index setup refused")
		attempts := 0
		build := func(ctx context.Context, r *registry.Registry, o schema.Options) (*fakeSchema, error) {
			attempts++
			if attempts == 1 {
				return nil, buildErr
			}
			return &fakeSchema{name: "trace"}, nil
		}

		_, err := registry.Schema(ctx, reg, "trace", opts, build)
		assert.ErrorIs(t, err, buildErr)

		got, err := registry.Schema(ctx, reg, "trace", opts, build)
		require.NoError(t, err)
		assert.Equal(t, "trace", got.name)
		assert.Equal(t, 2, attempts)
	})

	t.Run("distinct keys get distinct instances", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		build := func(ctx context.Context, r *registry.Registry, o schema.Options) (*fakeSchema, error) {
			return &fakeSchema{}, nil
		}

		a, err := registry.Schema(ctx, reg, "session", opts, build)
		require.NoError(t, err)
		b, err := registry.Schema(ctx, reg, "user", opts, build)
		require.NoError(t, err)
		assert.NotSame(t, a, b)
	})

	t.Run("concurrent first access constructs exactly once", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		var builds atomic.Int32
		build := func(ctx context.Context, r *registry.Registry, o schema.Options) (*fakeSchema, error) {
			builds.Add(1)
			return &fakeSchema{}, nil
		}

		const workers = 32
		results := make([]*fakeSchema, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := registry.Schema(ctx, reg, "session", opts, build)
				assert.NoError(t, err)
				results[i] = s
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), builds.Load())
		for _, s := range results[1:] {
			assert.Same(t, results[0], s)
		}
	})
}
