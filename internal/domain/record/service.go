package record

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	recordMeter            = otel.Meter("wisewallet/record")
	recordsCreatedTotal, _ = recordMeter.Int64Counter("records.created", metric.WithDescription("Records created"))
	recordsDeletedTotal, _ = recordMeter.Int64Counter("records.deleted", metric.WithDescription("Records deleted"))
	validationFailTotal, _ = recordMeter.Int64Counter("records.validation_failed", metric.WithDescription("Rejected create payloads"))
)

// Service implements list/create/delete/stats for one record kind. The
// income and expense APIs are two instances of it.
type Service struct {
	kind      Kind
	store     *Store
	publisher Publisher
	logger    *slog.Logger
}

// NewService creates a service for kind. A nil publisher disables events.
func NewService(kind Kind, repo Repository, publisher Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		kind:      kind,
		store:     NewStore(kind, repo),
		publisher: publisher,
		logger:    logger.With("kind", kind.Name),
	}
}

func (s *Service) Kind() Kind {
	return s.kind
}

// List returns every record owned by owner, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]*Record, error) {
	return s.store.List(ctx, owner)
}

// Create validates in and stores it under owner.
func (s *Service) Create(ctx context.Context, owner string, in RawInput) (*Record, error) {
	if owner == "" {
		return nil, ErrUnauthenticated
	}

	nr, err := Validate(s.kind, in)
	if err != nil {
		validationFailTotal.Add(ctx, 1, s.kindAttr())
		return nil, err
	}

	rec, err := s.store.Create(ctx, owner, nr)
	if err != nil {
		return nil, err
	}

	recordsCreatedTotal.Add(ctx, 1, s.kindAttr())
	s.logger.InfoContext(ctx, "record created", "id", rec.ID, "user", owner)
	s.publish(ctx, EventCreated, rec)

	return rec, nil
}

// Delete removes the record id on behalf of owner.
func (s *Service) Delete(ctx context.Context, owner, id string) (*Record, error) {
	rec, err := s.store.Delete(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	recordsDeletedTotal.Add(ctx, 1, s.kindAttr())
	s.logger.InfoContext(ctx, "record deleted", "id", rec.ID, "user", owner)
	s.publish(ctx, EventDeleted, rec)

	return rec, nil
}

// Stats aggregates all of owner's records.
func (s *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	records, err := s.store.List(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(records), nil
}

// publish never fails the caller: the record is already persisted.
func (s *Service) publish(ctx context.Context, eventType string, rec *Record) {
	evt := Event{
		Type:      eventType,
		Kind:      s.kind.Name,
		Record:    *rec,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "failed to publish record event", "event", eventType, "id", rec.ID, "error", err)
	}
}

func (s *Service) kindAttr() metric.AddOption {
	return metric.WithAttributes(attribute.String("kind", s.kind.Name))
}
