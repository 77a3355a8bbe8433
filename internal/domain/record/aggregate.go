package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Total sums the amounts of records. An empty slice yields zero.
func Total(records []*Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// ByCategory sums amounts per category. Categories absent from records do not
// appear in the result.
func ByCategory(records []*Record) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		out[r.Category] = out[r.Category].Add(r.Amount)
	}
	return out
}

// ByMonth sums amounts per "YYYY-MM" key, covering only months that occur in
// records.
func ByMonth(records []*Record) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		key := MonthKey(r.Date)
		out[key] = out[key].Add(r.Amount)
	}
	return out
}

// MonthKey formats t as the "YYYY-MM" bucket used by ByMonth, in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

type Stats struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	Count      int                        `json:"count"`
}

// Summarize computes the stats payload for records.
func Summarize(records []*Record) Stats {
	return Stats{
		Total:      Total(records),
		ByCategory: ByCategory(records),
		Count:      len(records),
	}
}
