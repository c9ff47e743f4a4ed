package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/registry"
	"github.com/amethyst-live/identity/core/schema"
	"github.com/amethyst-live/identity/core/trace"
	"github.com/amethyst-live/identity/pkg/randstr"
)

const collection = "user"

// maxGenerateAttempts bounds the uid/token collision-retry loops.
const maxGenerateAttempts = 16

var providers = []Provider{ProviderGoogle, ProviderGitHub, ProviderGitLab, ProviderDiscord}

// Schema is the mongo-backed account store.
type Schema struct {
	accessor *schema.Accessor[User]
	log      *slog.Logger
	sink     trace.Sink
}

var _ Store = (*Schema)(nil)

// NewSchema returns the process-wide user schema, constructing and
// initializing it on first use. See registry.Schema for the options contract.
func NewSchema(ctx context.Context, reg *registry.Registry, opts *schema.Options) (*Schema, error) {
	return registry.Schema(ctx, reg, collection, opts, build)
}

func build(ctx context.Context, reg *registry.Registry, opts schema.Options) (*Schema, error) {
	client, err := reg.Connection(ctx, "schema", opts.Connection)
	if err != nil {
		return nil, err
	}

	sink, err := trace.NewSchema(ctx, reg, &opts)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		accessor: schema.NewAccessor[User](client.Database(opts.Database), collection),
		log:      reg.Logger(),
		sink:     sink,
	}
	s.initialize(ctx)
	return s, nil
}

// initialize sets unique indexes on uid and email and sparse unique indexes
// on the token and each provider id, so optional fields are unique only
// when present. Failures are reported to the trace sink and do not abort
// the process; the schema remains usable without the intended indexes.
func (s *Schema) initialize(ctx context.Context) {
	report := func(err error) {
		s.log.ErrorContext(ctx, "user schema initialization",
			logger.Component(collection),
			logger.Error(err),
		)
		s.sink.Send(ctx, trace.Event{
			Service: "user_model",
			Status:  trace.StatusConflict,
			Action:  trace.ActionWarning,
			Context: map[string]any{
				"message": "Failed to set indices for user collection. Please investigate.",
				"error":   err.Error(),
			},
		})
	}

	if err := s.accessor.EnsureUniqueIndex(ctx, "user_uid", "uid"); err != nil {
		report(err)
	}
	if err := s.accessor.EnsureUniqueIndex(ctx, "user_email", "email"); err != nil {
		report(err)
	}
	if err := s.accessor.EnsureSparseUniqueIndex(ctx, "user_token", "token"); err != nil {
		report(err)
	}
	for _, p := range providers {
		if err := s.accessor.EnsureSparseUniqueIndex(ctx, "user_"+p.field(), p.field()); err != nil {
			report(err)
		}
	}
}

// identifierFilter matches a user by any of its public identifiers.
func identifierFilter(identifier string) bson.M {
	or := bson.A{
		bson.M{"uid": identifier},
		bson.M{"email": identifier},
	}
	for _, p := range providers {
		or = append(or, bson.M{p.field(): identifier})
	}
	return bson.M{"$or": or}
}

// GetByIdentifier resolves a user by uid, email, or any linked external id.
func (s *Schema) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	return s.accessor.Get(ctx, identifierFilter(identifier))
}

// Create validates and persists a new account. Empty UID and Token fields
// are generated through a bounded collision-retry loop: a fresh random
// value is drawn while a collision exists, never by catching an insert
// conflict after the fact.
func (s *Schema) Create(ctx context.Context, u *User) error {
	if u.Email == "" {
		return ErrMissingEmail
	}
	if u.FirstName == "" || u.LastName == "" {
		return ErrMissingName
	}
	if u.DateOfBirth == "" {
		return ErrMissingDateOfBirth
	}

	if u.UID == "" {
		uid, err := s.generate(ctx, "uid", func() (string, error) {
			return uuid.NewString(), nil
		})
		if err != nil {
			return err
		}
		u.UID = uid
	}
	if u.Token == "" {
		token, err := s.generate(ctx, "token", func() (string, error) {
			return randstr.New(TokenLength)
		})
		if err != nil {
			return err
		}
		u.Token = token
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	if _, err := s.accessor.Add(ctx, *u); err != nil {
		return errors.Join(ErrCreateFailed, err)
	}
	return nil
}

// generate draws fresh random values for field until one is unused,
// bounded by maxGenerateAttempts.
func (s *Schema) generate(ctx context.Context, field string, draw func() (string, error)) (string, error) {
	for attempt := range maxGenerateAttempts {
		candidate, err := draw()
		if err != nil {
			return "", err
		}

		exists, err := s.accessor.Has(ctx, bson.M{field: candidate})
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		s.log.WarnContext(ctx, "identifier collision, drawing again",
			logger.Component(collection),
			slog.String("field", field),
			logger.RetryCount(attempt+1),
		)
	}
	return "", ErrIdentifierExhausted
}

// LinkProvider attaches an external id to the account owning uid, stamping
// lastUpdatedAt. The filter excludes already-linked documents, so a second
// link attempt for the same provider is a no-op rather than an overwrite.
func (s *Schema) LinkProvider(ctx context.Context, uid string, p Provider, providerID string) error {
	return s.accessor.Update(ctx,
		bson.M{"uid": uid, p.field(): bson.M{"$exists": false}},
		bson.M{"$set": bson.M{p.field(): providerID, "lastUpdatedAt": time.Now()}},
	)
}
