package record

import (
	"context"
	"time"
)

const (
	EventCreated = "record.created"
	EventDeleted = "record.deleted"
)

// Event announces a change to a single record.
type Event struct {
	Type      string
	Kind      string
	Record    Record
	Timestamp time.Time
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
