package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/schema"
	mongodb "github.com/amethyst-live/identity/integration/database/mongo"
)

// Registry is the process-scoped cache of database connections and schema
// instances. At most one connection exists per connection identifier and at
// most one schema instance per schema key, even under concurrent first
// access: construction is serialized per key.
//
// Pass the registry explicitly to components that need it; there is no
// package-level instance.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	log      *slog.Logger
	connCfg  mongodb.Config
	hasCfg   bool
}

type entry struct {
	ready chan struct{}
	value any
	err   error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for construction events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithConnectionConfig overrides the driver settings applied when the
// registry establishes new connections. The URL field is ignored; the
// connection string is always supplied per call.
func WithConnectionConfig(cfg mongodb.Config) Option {
	return func(r *Registry) {
		r.connCfg = cfg
		r.hasCfg = true
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// do returns the cached value for key, constructing it at most once.
// Concurrent first access blocks on the in-flight construction; a failed
// construction is not cached, so the next caller retries.
func (r *Registry) do(ctx context.Context, key string, build func(context.Context) (any, error)) (any, error) {
	r.mu.Lock()
	if e, ok := r.entries[key]; ok {
		r.mu.Unlock()
		select {
		case <-e.ready:
			return e.value, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e := &entry{ready: make(chan struct{})}
	r.entries[key] = e
	r.mu.Unlock()

	e.value, e.err = build(ctx)
	close(e.ready)

	if e.err != nil {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
	}

	return e.value, e.err
}

// lookup returns the cached value for key without constructing.
func (r *Registry) lookup(ctx context.Context, key string) (any, bool, error) {
	r.mu.Lock()
	e, ok := r.entries[key]
	r.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	select {
	case <-e.ready:
		if e.err != nil {
			return nil, false, nil
		}
		return e.value, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Connection returns the cached client for id, establishing it first when a
// connection string is supplied. Accessing an unknown identifier without a
// connection string fails with ErrMissingConnectionParameters.
func (r *Registry) Connection(ctx context.Context, id, uri string) (*mongo.Client, error) {
	key := "connection:" + id

	if v, ok, err := r.lookup(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return v.(*mongo.Client), nil
	}

	if uri == "" {
		return nil, ErrMissingConnectionParameters
	}

	v, err := r.do(ctx, key, func(ctx context.Context) (any, error) {
		start := time.Now()

		cfg := r.connectionConfig()
		cfg.URL = uri

		client, err := mongodb.New(ctx, cfg)
		if err != nil {
			return nil, err
		}

		r.log.InfoContext(ctx, "connection established",
			logger.Component("registry"),
			logger.Connection(id),
			logger.Elapsed(start),
		)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

func (r *Registry) connectionConfig() mongodb.Config {
	if r.hasCfg {
		return r.connCfg
	}
	return mongodb.Config{
		ConnectTimeout:  10 * time.Second,
		MaxPoolSize:     100,
		MinPoolSize:     1,
		MaxConnIdleTime: 300 * time.Second,
		RetryWrites:     true,
		RetryReads:      true,
		RetryAttempts:   3,
		RetryInterval:   5 * time.Second,
	}
}

// Logger exposes the registry's logger so schema builders share it.
func (r *Registry) Logger() *slog.Logger {
	return r.log
}

// BuildFunc constructs a schema instance. It receives the registry so it can
// obtain its connection, bind its accessor, and run schema-specific
// initialization before the instance is handed to any caller.
type BuildFunc[S any] func(ctx context.Context, r *Registry, opts schema.Options) (S, error)

// Schema returns the cached singleton for key. On first access, opts must be
// supplied and build runs exactly once under the key's lock (two-phase:
// bind connection, bind accessor, then schema initialization); otherwise the
// call fails with ErrMissingSchemaOptions.
func Schema[S any](ctx context.Context, r *Registry, key string, opts *schema.Options, build BuildFunc[S]) (S, error) {
	var zero S
	cacheKey := "schema:" + key

	if v, ok, err := r.lookup(ctx, cacheKey); err != nil {
		return zero, err
	} else if ok {
		return v.(S), nil
	}

	if opts == nil {
		return zero, ErrMissingSchemaOptions
	}

	v, err := r.do(ctx, cacheKey, func(ctx context.Context) (any, error) {
		s, err := build(ctx, r, *opts)
		if err != nil {
			return nil, err
		}

		r.log.InfoContext(ctx, "schema ready",
			logger.Component("registry"),
			logger.Event("INITIALIZATION"),
			logger.Collection(key),
		)
		return s, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(S), nil
}
