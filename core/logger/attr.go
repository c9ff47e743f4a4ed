package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Warn("msg", logger.Error(err)) without explicit
// nil checks, following the principle of making zero values useful.

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Collection creates an attribute for storage collection identifiers.
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Connection creates an attribute for registry connection identifiers.
func Connection(id string) slog.Attr {
	return slog.String("connection", id)
}

// SessionID creates an attribute for public session identifiers.
// The secret verifier must never be logged.
func SessionID(sid string) slog.Attr {
	if sid == "" {
		return slog.Attr{}
	}
	return slog.String("sid", sid)
}

// UserID creates an attribute for public account identifiers.
func UserID(uid string) slog.Attr {
	if uid == "" {
		return slog.Attr{}
	}
	return slog.String("uid", uid)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// RetryCount creates an attribute for retry attempts.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
