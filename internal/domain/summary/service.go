// Package summary builds the dashboard overview that combines the income and
// expense record families: totals, balance, category breakdowns and the
// month-over-month series.
package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"wisewallet/internal/domain/record"
)

const (
	SignPositive = "positive"
	SignNegative = "negative"
	SignZero     = "zero"
)

// Lister is the read side of a record service.
type Lister interface {
	List(ctx context.Context, owner string) ([]*record.Record, error)
}

type Service struct {
	income  Lister
	expense Lister
}

func NewService(income, expense Lister) *Service {
	return &Service{income: income, expense: expense}
}

type MonthPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type Overview struct {
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpense      decimal.Decimal            `json:"totalExpense"`
	Balance           decimal.Decimal            `json:"balance"`
	BalanceSign       string                     `json:"balanceSign"`
	IncomeCount       int                        `json:"incomeCount"`
	ExpenseCount      int                        `json:"expenseCount"`
	IncomeByCategory  map[string]decimal.Decimal `json:"incomeByCategory"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expenseByCategory"`
	Monthly           []MonthPoint               `json:"monthly"`
}

// Overview loads both record families for owner concurrently and aggregates them.
func (s *Service) Overview(ctx context.Context, owner string) (*Overview, error) {
	var incomes, expenses []*record.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.income.List(gctx, owner)
		if err != nil {
			return fmt.Errorf("list income: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expense.List(gctx, owner)
		if err != nil {
			return fmt.Errorf("list expense: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Build(incomes, expenses), nil
}

// Build computes the overview from already loaded records.
func Build(incomes, expenses []*record.Record) *Overview {
	totalIncome := record.Total(incomes)
	totalExpense := record.Total(expenses)
	balance := totalIncome.Sub(totalExpense)

	return &Overview{
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		Balance:           balance,
		BalanceSign:       sign(balance),
		IncomeCount:       len(incomes),
		ExpenseCount:      len(expenses),
		IncomeByCategory:  record.ByCategory(incomes),
		ExpenseByCategory: record.ByCategory(expenses),
		Monthly:           MonthlySeries(incomes, expenses),
	}
}

// MonthlySeries merges the per-month sums of both families over the sorted
// union of their months. A month present in only one family is zero in the other.
func MonthlySeries(incomes, expenses []*record.Record) []MonthPoint {
	incomeByMonth := record.ByMonth(incomes)
	expenseByMonth := record.ByMonth(expenses)

	months := make([]string, 0, len(incomeByMonth)+len(expenseByMonth))
	for m := range incomeByMonth {
		months = append(months, m)
	}
	for m := range expenseByMonth {
		if _, ok := incomeByMonth[m]; !ok {
			months = append(months, m)
		}
	}
	sort.Strings(months)

	series := make([]MonthPoint, 0, len(months))
	for _, m := range months {
		series = append(series, MonthPoint{
			Month:   m,
			Income:  incomeByMonth[m],
			Expense: expenseByMonth[m],
		})
	}
	return series
}

func sign(d decimal.Decimal) string {
	switch d.Sign() {
	case 1:
		return SignPositive
	case -1:
		return SignNegative
	default:
		return SignZero
	}
}
