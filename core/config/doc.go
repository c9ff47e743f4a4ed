// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/amethyst-live/identity/core/config"
//
//	type StoreConfig struct {
//		URL      string `env:"MONGODB_URL,required"`
//		Database string `env:"MONGODB_DATABASE" envDefault:"amethyst"`
//	}
//
//	func main() {
//		var store StoreConfig
//
//		// Load with error handling
//		if err := config.Load(&store); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&store)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 StoreConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 StoreConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently.
package config
