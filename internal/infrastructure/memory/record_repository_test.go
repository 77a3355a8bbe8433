package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"wisewallet/internal/domain/record"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordRepository_ListOrdersByDateDescStable(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	for _, rec := range []record.Record{
		{ID: "a", Owner: "u1", Date: day(1)},
		{ID: "b", Owner: "u1", Date: day(3)},
		{ID: "c", Owner: "u1", Date: day(2)},
		{ID: "d", Owner: "u1", Date: day(3)},
		{ID: "x", Owner: "u2", Date: day(5)},
	} {
		rec := rec
		if err := repo.Insert(ctx, "expenses", &rec); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	got, err := repo.ListByOwner(ctx, "expenses", "u1")
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}

	want := []string{"b", "d", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("ListByOwner() returned %d records, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRecordRepository_CollectionsAreIsolated(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	rec := record.Record{ID: "a", Owner: "u1", Date: day(1)}
	if err := repo.Insert(ctx, "incomes", &rec); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "expenses", "a")
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID() found %+v in the wrong collection", got)
	}
}

func TestRecordRepository_DeleteRequiresOwner(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	rec := record.Record{ID: "a", Owner: "u1", Date: day(1)}
	if err := repo.Insert(ctx, "incomes", &rec); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	removed, err := repo.DeleteByID(ctx, "incomes", "u2", "a")
	if err != nil {
		t.Fatalf("DeleteByID() failed: %v", err)
	}
	if removed {
		t.Error("DeleteByID() removed a record for the wrong owner")
	}

	removed, err = repo.DeleteByID(ctx, "incomes", "u1", "a")
	if err != nil {
		t.Fatalf("DeleteByID() failed: %v", err)
	}
	if !removed {
		t.Error("DeleteByID() did not remove the owner's record")
	}

	got, _ := repo.GetByID(ctx, "incomes", "a")
	if got != nil {
		t.Errorf("record still present after delete: %+v", got)
	}
}

func TestRecordRepository_ReturnsCopies(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	rec := record.Record{ID: "a", Owner: "u1", Title: "original", Date: day(1)}
	if err := repo.Insert(ctx, "incomes", &rec); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	rec.Title = "mutated by caller"

	got, _ := repo.GetByID(ctx, "incomes", "a")
	if got.Title != "original" {
		t.Errorf("Title = %q, want %q", got.Title, "original")
	}
}

func TestRecordRepository_ConcurrentAccess(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := record.Record{ID: fmt.Sprintf("r-%d", i), Owner: "u1", Date: day(1 + i%28)}
			if err := repo.Insert(ctx, "expenses", &rec); err != nil {
				t.Errorf("Insert() failed: %v", err)
			}
			if _, err := repo.ListByOwner(ctx, "expenses", "u1"); err != nil {
				t.Errorf("ListByOwner() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := repo.ListByOwner(ctx, "expenses", "u1")
	if len(got) != 50 {
		t.Errorf("ListByOwner() returned %d records, want 50", len(got))
	}
}
