package trace

import (
	"context"
	"log/slog"
	"time"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/registry"
	"github.com/amethyst-live/identity/core/schema"
	"github.com/amethyst-live/identity/pkg/async"
)

const (
	collection = "trace"

	// Retention is the audit window. Records older than this are purged by
	// the store's TTL index; the trace collection is an audit log, not a
	// permanent record.
	Retention = 4 * time.Hour
)

// Record is the persisted form of an Event.
type Record struct {
	schema.Model `bson:",inline"`
	Server       string `bson:"server"`
	Event        `bson:",inline"`
}

// Schema is the mongo-backed trace sink. Send persists events fire-and-forget
// and mirrors them to the structured log.
type Schema struct {
	accessor *schema.Accessor[Record]
	server   string
	log      *slog.Logger
}

var _ Sink = (*Schema)(nil)

// NewSchema returns the process-wide trace schema, constructing and
// initializing it on first use. See registry.Schema for the options contract.
func NewSchema(ctx context.Context, reg *registry.Registry, opts *schema.Options) (*Schema, error) {
	return registry.Schema(ctx, reg, collection, opts, build)
}

func build(ctx context.Context, reg *registry.Registry, opts schema.Options) (*Schema, error) {
	client, err := reg.Connection(ctx, "schema", opts.Connection)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		accessor: schema.NewAccessor[Record](client.Database(opts.Database), collection),
		server:   opts.Server,
		log:      reg.Logger(),
	}
	s.initialize(ctx)
	return s, nil
}

// initialize sets the retention TTL index. Failures leave the schema usable;
// they are logged and the process continues without the intended expiry.
func (s *Schema) initialize(ctx context.Context) {
	retuneErr, err := s.accessor.EnsureTTLIndex(ctx, "expire_"+collection, "createdAt", Retention)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to set trace indices",
			logger.Component(collection),
			logger.Error(err),
		)
	}
	if retuneErr != nil {
		s.log.WarnContext(ctx, "failed to retune trace retention",
			logger.Component(collection),
			logger.Error(retuneErr),
		)
	}
}

// Send records the event. Persistence happens fire-and-forget: failures are
// logged, never returned, and never block the operation being traced.
func (s *Schema) Send(ctx context.Context, event Event) {
	s.send(ctx, event)
}

func (s *Schema) send(ctx context.Context, event Event) *async.Future {
	if event.Context == nil {
		event.Context = map[string]any{}
	}

	record := Record{
		Model:  schema.Model{CreatedAt: time.Now()},
		Server: s.server,
		Event:  event,
	}

	s.log.InfoContext(ctx, "trace event",
		logger.Component(event.Service),
		logger.Event(string(event.Action)),
		slog.String("status", string(event.Status)),
		slog.Any("context", event.Context),
	)

	return async.Fire(ctx, s.log, "trace.send", func(ctx context.Context) error {
		_, err := s.accessor.Add(ctx, record)
		return err
	})
}
