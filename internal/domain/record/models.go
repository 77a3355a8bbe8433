package record

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("forbidden: record does not belong to user")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Kind describes one family of records (income or expense). Both families
// share the same shape and differ only in storage collection and category set.
type Kind struct {
	Name       string
	Label      string
	Collection string
	Categories []string
}

var (
	Income = Kind{
		Name:       "income",
		Label:      "Income",
		Collection: "incomes",
		Categories: []string{"Salary", "Freelance", "Business", "Investment", "Other"},
	}

	Expense = Kind{
		Name:       "expense",
		Label:      "Expense",
		Collection: "expenses",
		Categories: []string{"Food", "Transport", "Shopping", "Entertainment", "Bills", "Healthcare", "Education", "Other"},
	}
)

// Kinds returns every supported record kind.
func Kinds() []Kind {
	return []Kind{Income, Expense}
}

// KindByName looks up a kind by its route name ("income", "expense").
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// HasCategory reports whether category belongs to the kind's closed enum.
func (k Kind) HasCategory(category string) bool {
	for _, c := range k.Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Record struct {
	ID          string          `json:"id"`
	Owner       string          `json:"user"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewRecord is a validated, normalized payload ready to be persisted.
type NewRecord struct {
	Title       string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}
