package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"wisewallet/internal/domain/record"
)

// RecordMessage is the wire form of a record lifecycle event.
type RecordMessage struct {
	Type      string          `json:"type"`
	Kind      string          `json:"kind"`
	ID        string          `json:"id"`
	User      string          `json:"user"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewRecordMessage(evt record.Event) *RecordMessage {
	return &RecordMessage{
		Type:      evt.Type,
		Kind:      evt.Kind,
		ID:        evt.Record.ID,
		User:      evt.Record.Owner,
		Amount:    evt.Record.Amount,
		Category:  evt.Record.Category,
		Date:      evt.Record.Date,
		Timestamp: evt.Timestamp,
	}
}

func (m *RecordMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RoutingKey is "<kind>.<event>", e.g. "expense.record.created".
func (m *RecordMessage) RoutingKey() string {
	return m.Kind + "." + m.Type
}
