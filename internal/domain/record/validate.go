package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CodeEmptyField      = "EmptyField"
	CodeRequiredField   = "RequiredField"
	CodeInvalidAmount   = "InvalidAmount"
	CodeInvalidCategory = "InvalidCategory"
	CodeInvalidDate     = "InvalidDate"
)

// dateLayouts are the ISO-8601 shapes accepted for the date field.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// RawInput is the create payload as sent by the client. It has no owner field;
// the owner always comes from the caller.
type RawInput struct {
	Title       string          `json:"title"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field of a payload.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with the given code.
func (v ValidationErrors) Has(field, code string) bool {
	for _, fe := range v {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}

// Validate checks every field of in independently and returns either the
// normalized record or a ValidationErrors listing all failures.
func Validate(kind Kind, in RawInput) (NewRecord, error) {
	var errs ValidationErrors
	var out NewRecord

	out.Title = strings.TrimSpace(in.Title)
	if out.Title == "" {
		errs = append(errs, FieldError{Field: "title", Code: CodeEmptyField, Message: "Title is required"})
	}

	amount, err := parseAmount(in.Amount)
	if err != nil {
		errs = append(errs, FieldError{Field: "amount", Code: CodeInvalidAmount, Message: "Amount must be a positive number"})
	}
	out.Amount = amount

	out.Category = strings.TrimSpace(in.Category)
	switch {
	case out.Category == "":
		errs = append(errs, FieldError{Field: "category", Code: CodeRequiredField, Message: "Category is required"})
	case !kind.HasCategory(out.Category):
		errs = append(errs, FieldError{
			Field:   "category",
			Code:    CodeInvalidCategory,
			Message: "Category must be one of: " + strings.Join(kind.Categories, ", "),
		})
	}

	date, ok := parseDate(in.Date)
	if !ok {
		errs = append(errs, FieldError{Field: "date", Code: CodeInvalidDate, Message: "Valid date is required"})
	}
	out.Date = date

	out.Description = strings.TrimSpace(in.Description)

	if len(errs) > 0 {
		return NewRecord{}, errs
	}
	return out, nil
}

// parseAmount accepts a JSON number or a numeric JSON string and rejects
// anything negative.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return d, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
