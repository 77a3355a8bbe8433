package record

import (
	"context"
)

// Repository is the raw storage port. Every method targets a single
// collection; implementations need only per-record atomicity.
type Repository interface {
	Insert(ctx context.Context, collection string, rec *Record) error
	// GetByID returns nil, nil when no record has the id.
	GetByID(ctx context.Context, collection, id string) (*Record, error)
	// ListByOwner returns the owner's records, date descending, ties in
	// insertion order.
	ListByOwner(ctx context.Context, collection, owner string) ([]*Record, error)
	// DeleteByID removes the record only if it also matches owner, and reports
	// whether a record was removed.
	DeleteByID(ctx context.Context, collection, owner, id string) (bool, error)
	Ping(ctx context.Context) error
}
