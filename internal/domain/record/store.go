package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the ownership-scoped accessor for one kind. Every read and write
// goes through an owner filter; callers never reach the repository directly.
type Store struct {
	kind  Kind
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewStore(kind Kind, repo Repository) *Store {
	return &Store{
		kind:  kind,
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// List returns all of owner's records, newest first.
func (s *Store) List(ctx context.Context, owner string) ([]*Record, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrUnauthenticated
	}

	records, err := s.repo.ListByOwner(ctx, s.kind.Collection, owner)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Collection, err)
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// Create persists nr with a fresh id and timestamp. The owner is always the
// caller's identity.
func (s *Store) Create(ctx context.Context, owner string, nr NewRecord) (*Record, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrUnauthenticated
	}

	rec := &Record{
		ID:          s.newID(),
		Owner:       owner,
		Title:       nr.Title,
		Amount:      nr.Amount,
		Category:    nr.Category,
		Description: nr.Description,
		Date:        nr.Date,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.kind.Collection, rec); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", s.kind.Collection, err)
	}
	return rec, nil
}

// Delete removes the record with id if owner owns it. It returns ErrNotFound
// when the id does not exist and ErrForbidden when someone else owns it.
func (s *Store) Delete(ctx context.Context, owner, id string) (*Record, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	rec, err := s.repo.GetByID(ctx, s.kind.Collection, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", s.kind.Collection, id, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.Owner != owner {
		return nil, ErrForbidden
	}

	removed, err := s.repo.DeleteByID(ctx, s.kind.Collection, owner, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", s.kind.Collection, id, err)
	}
	if !removed {
		// Lost a race with a concurrent delete.
		return nil, ErrNotFound
	}
	return rec, nil
}
