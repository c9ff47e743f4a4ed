package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amethyst-live/identity/core/config"
	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/registry"
	"github.com/amethyst-live/identity/core/schema"
	"github.com/amethyst-live/identity/core/trace"
	"github.com/amethyst-live/identity/pkg/async"
	"github.com/amethyst-live/identity/pkg/randstr"
)

const collection = "session"

// Schema is the mongo-backed session store.
type Schema struct {
	accessor *schema.Accessor[Session]
	cfg      Config
	log      *slog.Logger
	sink     trace.Sink
}

var _ Store = (*Schema)(nil)

// NewSchema returns the process-wide session schema, constructing and
// initializing it on first use. See registry.Schema for the options contract.
func NewSchema(ctx context.Context, reg *registry.Registry, opts *schema.Options) (*Schema, error) {
	return registry.Schema(ctx, reg, collection, opts, build)
}

func build(ctx context.Context, reg *registry.Registry, opts schema.Options) (*Schema, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	client, err := reg.Connection(ctx, "schema", opts.Connection)
	if err != nil {
		return nil, err
	}

	sink, err := trace.NewSchema(ctx, reg, &opts)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		accessor: schema.NewAccessor[Session](client.Database(opts.Database), collection),
		cfg:      cfg,
		log:      reg.Logger(),
		sink:     sink,
	}
	s.initialize(ctx)
	return s, nil
}

// initialize sets the unique sid index and the sliding retention TTL index.
// Failures are reported to the trace sink and logged; the schema remains
// usable without the intended indexes.
func (s *Schema) initialize(ctx context.Context) {
	if err := s.accessor.EnsureUniqueIndex(ctx, "session_data", "sid"); err != nil {
		s.report(ctx, "Failed to set indices for session collection. Please investigate.", err)
	}

	retuneErr, err := s.accessor.EnsureTTLIndex(ctx, "expire_"+collection, "lastAccessedAt", s.cfg.Retention)
	if err != nil {
		s.report(ctx, "Failed to set the session retention index. Please investigate.", err)
	}
	if retuneErr != nil {
		s.log.WarnContext(ctx, "failed to retune session retention",
			logger.Component(collection),
			logger.Error(retuneErr),
		)
	}
}

func (s *Schema) report(ctx context.Context, message string, err error) {
	s.log.ErrorContext(ctx, "session schema initialization",
		logger.Component(collection),
		logger.Error(err),
	)
	s.sink.Send(ctx, trace.Event{
		Service: "session_model",
		Status:  trace.StatusConflict,
		Action:  trace.ActionWarning,
		Context: map[string]any{"message": message, "error": err.Error()},
	})
}

// Create generates a fresh (sid, vid) pair and persists the session.
// No collision check is performed on generation; the unique index enforces
// correctness and an insertion conflict surfaces as ErrCreateConflict.
func (s *Schema) Create(ctx context.Context) (*Session, error) {
	vid, err := randstr.New(s.cfg.VerifierLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := Session{
		Model:          schema.Model{CreatedAt: now},
		SID:            uuid.NewString(),
		VID:            vid,
		LastAccessedAt: now,
	}

	if _, err := s.accessor.Add(ctx, sess); err != nil {
		if errors.Is(err, schema.ErrDuplicateKey) {
			return nil, errors.Join(ErrCreateConflict, err)
		}
		return nil, err
	}

	return &sess, nil
}

// Get looks up the session by the exact (sid, vid) pair. A miss returns
// nil without signaling which half of the pair failed. On a hit the
// last-access stamp is renewed fire-and-forget: renewal failures are
// logged, never surfaced, and a stale stamp is acceptable.
func (s *Schema) Get(ctx context.Context, sid, vid string) (*Session, error) {
	sess, err := s.accessor.Get(ctx, bson.M{"sid": sid, "vid": vid})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	async.Fire(ctx, s.log, "session.renew", func(ctx context.Context) error {
		return s.accessor.Update(ctx,
			bson.M{"sid": sid},
			bson.M{"$set": bson.M{"lastAccessedAt": time.Now()}},
		)
	})

	return sess, nil
}

// Update replaces the session's data bag, keyed by sid alone, and always
// stamps lastUpdatedAt.
func (s *Schema) Update(ctx context.Context, sid string, data Data) error {
	return s.accessor.Update(ctx,
		bson.M{"sid": sid},
		bson.M{"$set": bson.M{"data": data, "lastUpdatedAt": time.Now()}},
	)
}
