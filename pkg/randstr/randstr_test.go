package randstr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/pkg/randstr"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("generates string of requested length", func(t *testing.T) {
		t.Parallel()

		for _, length := range []int{1, 32, 128, 255} {
			s, err := randstr.New(length)
			require.NoError(t, err)
			assert.Len(t, s, length)
		}
	})

	t.Run("uses only the URL-safe alphabet", func(t *testing.T) {
		t.Parallel()

		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

		s, err := randstr.New(1024)
		require.NoError(t, err)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
		}
	})

	t.Run("rejects non-positive lengths", func(t *testing.T) {
		t.Parallel()

		_, err := randstr.New(0)
		assert.ErrorIs(t, err, randstr.ErrInvalidLength)

		_, err = randstr.New(-5)
		assert.ErrorIs(t, err, randstr.ErrInvalidLength)
	})

	t.Run("does not repeat", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 100)
		for range 100 {
			s, err := randstr.New(64)
			require.NoError(t, err)
			_, dup := seen[s]
			require.False(t, dup, "generated duplicate string")
			seen[s] = struct{}{}
		}
	})
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.Len(t, randstr.MustNew(16), 16)
	assert.Panics(t, func() { randstr.MustNew(-1) })
}
