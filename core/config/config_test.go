package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amethyst-live/identity/core/config"
)

type serverConfig struct {
	Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_MISSING_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("TEST_CFG_OVERRIDE", "10.0.0.1")

		type overrideConfig struct {
			Host string `env:"TEST_CFG_OVERRIDE" envDefault:"localhost"`
		}
		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "10.0.0.1", cfg.Host)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[serverConfig](nil), config.ErrNilConfig)
	})

	t.Run("caches per type", func(t *testing.T) {
		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "initial", first.Value)

		// Environment changes after the first load are not observed.
		t.Setenv("TEST_CFG_CACHED", "changed")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "initial", second.Value)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		var cfg serverConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("panics on failure", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
