package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"wisewallet/internal/domain/record"
	"wisewallet/internal/infrastructure/memory"
	"wisewallet/internal/shared/auth"
)

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"alice", []string{"alice"}},
		{" alice, bob ,,carol ", []string{"alice", "bob", "carol"}},
	}

	for _, tt := range tests {
		got := parseUserIDs(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseUserIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out)

	if !strings.HasPrefix(out.String(), "WiseWallet Admin CLI") {
		t.Errorf("usage output starts with %q", out.String()[:20])
	}
	if strings.HasSuffix(out.String(), "\n\n") {
		t.Error("usage output ends with a blank line")
	}
}

func TestRunToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "admin-test-secret")

	var out bytes.Buffer
	if err := runToken([]string{"--user=alice", "--name=Alice", "--ttl=1h"}, &out); err != nil {
		t.Fatalf("runToken() failed: %v", err)
	}

	claims, err := auth.NewJWT("admin-test-secret").Validate(strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.UserID() != "alice" || claims.Name != "Alice" {
		t.Errorf("claims = %+v", claims)
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining > time.Hour || remaining < 59*time.Minute {
		t.Errorf("token expires in %v, want about 1h", remaining)
	}
}

func TestRunToken_RequiresUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "admin-test-secret")

	var out bytes.Buffer
	if err := runToken(nil, &out); err == nil {
		t.Error("runToken() without --user expected error, got nil")
	}
}

func TestCollectStatsAndPrint(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecordRepository()
	income := record.NewService(record.Income, repo, nil, nil)
	expense := record.NewService(record.Expense, repo, nil, nil)

	create := func(svc *record.Service, owner, amount, category string) {
		t.Helper()
		_, err := svc.Create(ctx, owner, record.RawInput{
			Title:    "x",
			Amount:   json.RawMessage(amount),
			Category: category,
			Date:     "2024-01-15",
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	create(income, "alice", "1000", "Salary")
	create(expense, "alice", "100", "Food")
	create(expense, "alice", "50.5", "Food")
	create(expense, "bob", "20", "Bills")

	services := []*record.Service{income, expense}
	results, err := collectStats(ctx, services, []string{"alice", "bob"}, 2)
	if err != nil {
		t.Fatalf("collectStats() failed: %v", err)
	}

	if got := results["alice"][1]; got.Count != 2 || got.Total.String() != "150.5" {
		t.Errorf("alice expense stats = %+v", got)
	}
	if got := results["bob"][0]; got.Count != 0 {
		t.Errorf("bob income stats = %+v, want empty", got)
	}

	var out bytes.Buffer
	printStats(&out, "alice", services, results["alice"])
	for _, want := range []string{"=== User alice ===", "1000.00 (1 records)", "150.50 (2 records)", "Food", "150.50"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
