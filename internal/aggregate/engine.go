// Package aggregate folds the stored ledger into totals and grouped summaries.
//
// Every operation reads the full record set from the store on each call and
// keeps no state between calls. Stored amounts that do not parse, and lines
// with the wrong field count, are returned as errors instead of being
// counted as zero.
package aggregate

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"mobiz/internal/core"
	"mobiz/internal/store"
)

type Engine struct {
	store store.Reader
}

func NewEngine(r store.Reader) *Engine {
	return &Engine{store: r}
}

// Ledger is the decoded record set.
type Ledger struct {
	Incomes  []core.IncomeRecord
	Expenses []core.ExpenseRecord
}

// Load reads and decodes every income and expense record.
func (e *Engine) Load(ctx context.Context) (Ledger, error) {
	incomes, err := e.incomes(ctx)
	if err != nil {
		return Ledger{}, err
	}
	expenses, err := e.expenses(ctx)
	if err != nil {
		return Ledger{}, err
	}
	return Ledger{Incomes: incomes, Expenses: expenses}, nil
}

func (e *Engine) incomes(ctx context.Context) ([]core.IncomeRecord, error) {
	rows, err := e.store.ReadAll(ctx, core.KindIncome)
	if err != nil {
		return nil, fmt.Errorf("read incomes: %w", err)
	}
	out := make([]core.IncomeRecord, 0, len(rows))
	for i, fields := range rows {
		rec, err := core.DecodeIncome(fields, i+1)
		if err != nil {
			return nil, fmt.Errorf("decode income: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (e *Engine) expenses(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := e.store.ReadAll(ctx, core.KindExpense)
	if err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}
	out := make([]core.ExpenseRecord, 0, len(rows))
	for i, fields := range rows {
		rec, err := core.DecodeExpense(fields, i+1)
		if err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Totals returns total income, total expense and their difference.
func (e *Engine) Totals(ctx context.Context) (core.Totals, error) {
	l, err := e.Load(ctx)
	if err != nil {
		return core.Totals{}, err
	}
	return l.Totals(), nil
}

// MonthlySummary groups the ledger by YYYY-MM, first-seen month first.
func (e *Engine) MonthlySummary(ctx context.Context) (core.Summary, error) {
	l, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}
	return l.GroupBy(core.MonthKey), nil
}

// YearlySummary groups the ledger by YYYY, first-seen year first.
func (e *Engine) YearlySummary(ctx context.Context) (core.Summary, error) {
	l, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}
	return l.GroupBy(core.YearKey), nil
}

// CategoryTotals sums expenses per exact category string.
func (e *Engine) CategoryTotals(ctx context.Context) (core.CategoryTotals, error) {
	expenses, err := e.expenses(ctx)
	if err != nil {
		return nil, err
	}
	return categoryTotals(expenses), nil
}

// Totals folds the loaded ledger.
func (l Ledger) Totals() core.Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range l.Incomes {
		income = income.Add(r.Amount)
	}
	for _, r := range l.Expenses {
		expense = expense.Add(r.Amount)
	}
	return core.Totals{Income: income, Expense: expense, Net: income.Sub(expense)}
}

// GroupBy buckets incomes then expenses by key(date). Bucket order is the
// order in which keys are first seen.
func (l Ledger) GroupBy(key func(date string) string) core.Summary {
	out := core.Summary{}
	index := make(map[string]int)
	bucket := func(date string) *core.Bucket {
		k := key(date)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, core.Bucket{Key: k, Income: decimal.Zero, Expense: decimal.Zero})
		}
		return &out[i]
	}
	for _, r := range l.Incomes {
		b := bucket(r.Date)
		b.Income = b.Income.Add(r.Amount)
	}
	for _, r := range l.Expenses {
		b := bucket(r.Date)
		b.Expense = b.Expense.Add(r.Amount)
	}
	return out
}

func categoryTotals(expenses []core.ExpenseRecord) core.CategoryTotals {
	out := core.CategoryTotals{}
	index := make(map[string]int)
	for _, r := range expenses {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, core.CategoryAmount{Name: r.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(r.Amount)
	}
	return out
}
