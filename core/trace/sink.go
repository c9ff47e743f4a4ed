package trace

import (
	"context"
	"log/slog"

	"github.com/amethyst-live/identity/core/logger"
)

// LogSink is a Sink that mirrors events to a structured logger without
// persisting them. Useful in development and as a default collaborator in
// components that require a sink.
type LogSink struct {
	log *slog.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink creates a sink writing to the given logger.
// A nil logger discards everything.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = logger.Discard()
	}
	return &LogSink{log: log}
}

// Send logs the event at a level matching its action.
func (s *LogSink) Send(ctx context.Context, event Event) {
	if event.Context == nil {
		event.Context = map[string]any{}
	}

	attrs := []any{
		logger.Component(event.Service),
		logger.Event(string(event.Action)),
		slog.String("status", string(event.Status)),
		slog.Any("context", event.Context),
	}

	switch event.Action {
	case ActionError, ActionCritical:
		s.log.ErrorContext(ctx, "trace event", attrs...)
	case ActionWarning:
		s.log.WarnContext(ctx, "trace event", attrs...)
	default:
		s.log.InfoContext(ctx, "trace event", attrs...)
	}
}

// Nop is a Sink that drops every event. Zero value is ready to use.
type Nop struct{}

var _ Sink = Nop{}

// Send discards the event.
func (Nop) Send(context.Context, Event) {}
