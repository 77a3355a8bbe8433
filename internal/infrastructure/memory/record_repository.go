// Package memory provides a process-local record repository used for local
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"wisewallet/internal/domain/record"
)

type RecordRepository struct {
	mu          sync.RWMutex
	collections map[string][]record.Record
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{collections: make(map[string][]record.Record)}
}

func (r *RecordRepository) Insert(ctx context.Context, collection string, rec *record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.collections[collection] = append(r.collections[collection], *rec)
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, collection, id string) (*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.collections[collection] {
		if rec.ID == id {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *RecordRepository) ListByOwner(ctx context.Context, collection, owner string) ([]*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	records := make([]*record.Record, 0)
	for _, rec := range r.collections[collection] {
		if rec.Owner == owner {
			out := rec
			records = append(records, &out)
		}
	}
	r.mu.RUnlock()

	// Stored in insertion order, so a stable sort keeps that order for equal dates.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (r *RecordRepository) DeleteByID(ctx context.Context, collection, owner, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.collections[collection]
	for i, rec := range records {
		if rec.ID == id && rec.Owner == owner {
			r.collections[collection] = append(records[:i:i], records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *RecordRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
