package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	level   slog.Level
	json    bool
	output  io.Writer
	service string
	attrs   []slog.Attr
}

// Option configures the logger factory.
type Option func(*config)

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSONFormatter switches output to JSON records.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithOutput redirects log output (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithAttr attaches a static attribute to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithDevelopment configures text output at debug level for local work.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.service = service
		c.level = slog.LevelDebug
		c.json = false
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.service = service
		c.level = slog.LevelInfo
		c.json = true
	}
}

// New creates a slog.Logger with the given options.
// Without options it produces text output at info level on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	attrs := cfg.attrs
	if cfg.service != "" {
		attrs = append([]slog.Attr{slog.String("service", cfg.service)}, attrs...)
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
// Useful as a default in components where logging is optional.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
