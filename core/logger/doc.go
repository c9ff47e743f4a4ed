// Package logger provides structured logging built on Go's standard slog
// package: a small factory with environment presets and type-safe attribute
// helpers for the identifiers this system logs most.
//
// # Basic Usage
//
//	import "github.com/amethyst-live/identity/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("identity"))
//
//	// Production: JSON format, info level
//	log := logger.New(logger.WithProduction("identity"))
//
//	log.Info("schema ready",
//		logger.Component("registry"),
//		logger.Collection("session"),
//	)
//
// # Attribute Helpers
//
// Helpers follow the empty-Attr pattern: passing a nil error or empty
// identifier yields an attribute slog silently drops, so call sites never
// need nil checks:
//
//	log.Warn("renewal failed", logger.SessionID(sid), logger.Error(err))
//
// SessionID logs only the public sid; the secret verifier has no helper on
// purpose and must never reach a log record.
package logger
