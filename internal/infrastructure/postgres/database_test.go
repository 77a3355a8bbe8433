package postgres

import (
	"io/fs"
	"strings"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "placeholders kept",
			query: "SELECT id FROM incomes WHERE user_id = $1 AND id = $2",
			want:  "SELECT id FROM incomes WHERE user_id = $1 AND id = $2",
		},
		{
			name:  "string literal masked",
			query: "SELECT id FROM incomes WHERE title = 'rent'",
			want:  "SELECT id FROM incomes WHERE title = '?'",
		},
		{
			name:  "escaped quote masked",
			query: "SELECT id FROM incomes WHERE title = 'it''s'",
			want:  "SELECT id FROM incomes WHERE title = '?'",
		},
		{
			name:  "numeric literal masked",
			query: "SELECT id FROM incomes WHERE amount > 12.50",
			want:  "SELECT id FROM incomes WHERE amount > ?",
		},
		{
			name:  "whitespace collapsed",
			query: "\n\t\tDELETE FROM expenses\n\t\tWHERE id = $1\n",
			want:  "DELETE FROM expenses WHERE id = $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeQuery(tt.query); got != tt.want {
				t.Errorf("sanitizeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeQuery_Truncates(t *testing.T) {
	q := "SELECT " + strings.Repeat("a, ", 200) + "b FROM incomes"
	got := sanitizeQuery(q)
	if len(got) != 256+len("...") {
		t.Errorf("len(sanitizeQuery()) = %d, want %d", len(got), 256+len("..."))
	}
}

func TestExtractSQLVerb(t *testing.T) {
	tests := map[string]string{
		"select 1":                  "SELECT",
		"\n\t\tINSERT INTO incomes": "INSERT",
		"DELETE\nFROM expenses":     "DELETE",
		"BEGIN":                     "BEGIN",
	}
	for query, want := range tests {
		if got := extractSQLVerb(query); got != want {
			t.Errorf("extractSQLVerb(%q) = %q, want %q", query, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Errorf("found %d up and %d down migrations, want matching non-zero counts", up, down)
	}
}
