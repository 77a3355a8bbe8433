package record_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"wisewallet/internal/domain/record"
	"wisewallet/internal/infrastructure/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []record.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt record.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func input(title, amount, category, date string) record.RawInput {
	return record.RawInput{
		Title:    title,
		Amount:   json.RawMessage(amount),
		Category: category,
		Date:     date,
	}
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := record.NewService(record.Expense, memory.NewRecordRepository(), pub, nil)

	created, err := svc.Create(ctx, "user-1", input("Lunch", "12.50", "Food", "2024-01-15"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.Owner != "user-1" {
		t.Errorf("Owner = %q, want %q", created.Owner, "user-1")
	}
	if !created.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Amount = %s, want 12.5", created.Amount)
	}

	records, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != created.ID {
		t.Fatalf("List() = %+v, want the created record", records)
	}

	others, err := svc.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("List(user-2) returned %d records, want 0", len(others))
	}

	if len(pub.events) != 1 || pub.events[0].Type != record.EventCreated || pub.events[0].Kind != "expense" {
		t.Errorf("published events = %+v, want one expense record.created", pub.events)
	}
}

func TestService_CreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := record.NewService(record.Expense, memory.NewRecordRepository(), pub, nil)

	_, err := svc.Create(ctx, "user-1", input("Refund", "-5", "Food", "2024-01-15"))

	var verrs record.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Create() error = %v, want ValidationErrors", err)
	}
	if !verrs.Has("amount", record.CodeInvalidAmount) {
		t.Errorf("errors = %v, want amount/%s", verrs, record.CodeInvalidAmount)
	}

	records, _ := svc.List(ctx, "user-1")
	if len(records) != 0 {
		t.Errorf("List() returned %d records after rejected create, want 0", len(records))
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events for rejected create, want 0", len(pub.events))
	}
}

func TestService_CreateRequiresOwner(t *testing.T) {
	svc := record.NewService(record.Income, memory.NewRecordRepository(), nil, nil)

	_, err := svc.Create(context.Background(), "", input("Salary", "1000", "Salary", "2024-01-31"))
	if !errors.Is(err, record.ErrUnauthenticated) {
		t.Errorf("Create() error = %v, want %v", err, record.ErrUnauthenticated)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := record.NewService(record.Income, memory.NewRecordRepository(), nil, nil)

	created, err := svc.Create(ctx, "user-1", input("Salary", "1000", "Salary", "2024-01-31"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := svc.Delete(ctx, "user-2", created.ID); !errors.Is(err, record.ErrForbidden) {
		t.Errorf("Delete() by other user error = %v, want %v", err, record.ErrForbidden)
	}
	if records, _ := svc.List(ctx, "user-1"); len(records) != 1 {
		t.Fatalf("record removed by foreign delete, %d left", len(records))
	}

	removed, err := svc.Delete(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if removed.ID != created.ID {
		t.Errorf("removed ID = %q, want %q", removed.ID, created.ID)
	}

	if _, err := svc.Delete(ctx, "user-1", created.ID); !errors.Is(err, record.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, record.ErrNotFound)
	}
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	svc := record.NewService(record.Expense, memory.NewRecordRepository(), nil, nil)

	empty, err := svc.Stats(ctx, "user-1")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if !empty.Total.IsZero() || empty.Count != 0 || len(empty.ByCategory) != 0 {
		t.Errorf("Stats() on empty = %+v, want zero", empty)
	}
	if empty.ByCategory == nil {
		t.Error("ByCategory is nil, want empty map")
	}

	for _, in := range []record.RawInput{
		input("Groceries", "100", "Food", "2024-01-15"),
		input("Dinner", "50", "Food", "2024-02-01"),
		input("Train", "200", "Transport", "2024-02-10"),
	} {
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("Create(%s) failed: %v", in.Title, err)
		}
	}

	stats, err := svc.Stats(ctx, "user-1")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if !stats.Total.Equal(decimal.NewFromInt(350)) || stats.Count != 3 {
		t.Errorf("Stats() = %+v, want total 350 count 3", stats)
	}
	if !stats.ByCategory["Food"].Equal(decimal.NewFromInt(150)) {
		t.Errorf("ByCategory[Food] = %s, want 150", stats.ByCategory["Food"])
	}
}

func TestService_PublishFailureDoesNotFailCreate(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := record.NewService(record.Expense, memory.NewRecordRepository(), pub, nil)

	if _, err := svc.Create(ctx, "user-1", input("Taxi", "30", "Transport", "2024-03-01")); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if records, _ := svc.List(ctx, "user-1"); len(records) != 1 {
		t.Errorf("List() returned %d records, want 1", len(records))
	}
}
