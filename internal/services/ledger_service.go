package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mobiz/internal/aggregate"
	"mobiz/internal/core"
	"mobiz/internal/export"
	"mobiz/internal/log"
	"mobiz/internal/pricing"
	"mobiz/internal/store"
)

// Publisher announces appended records to other processes.
type Publisher interface {
	PublishRecordAppended(ctx context.Context, kind core.Kind, fields []string) error
}

// LedgerService is the entry point used by the HTTP layer and the commands:
// it validates input, stamps dates, appends to the store and renders reports.
type LedgerService struct {
	store     store.RecordStore
	engine    *aggregate.Engine
	publisher Publisher
	now       func() time.Time
	version   string
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithClock replaces time.Now for date stamping.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

// WithVersion sets the ledger version shown in the readme.
func WithVersion(v string) Option {
	return func(s *LedgerService) { s.version = v }
}

// NewLedgerService wires the store and an optional publisher (nil disables events).
func NewLedgerService(st store.RecordStore, pub Publisher, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:     st,
		engine:    aggregate.NewEngine(st),
		publisher: pub,
		now:       time.Now,
		version:   "v18",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddIncome records an income dated today.
func (s *LedgerService) AddIncome(ctx context.Context, description, amountText string) (core.IncomeRecord, error) {
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.IncomeRecord{}, err
	}
	rec := core.IncomeRecord{
		Date:        core.FormatDate(s.now()),
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
	if err := rec.Validate(); err != nil {
		return core.IncomeRecord{}, err
	}
	if err := s.append(ctx, core.KindIncome, rec.Fields()); err != nil {
		return core.IncomeRecord{}, err
	}
	log.NewStructuredLogger(log.FromContext(ctx)).
		LogRecordAppended(ctx, core.KindIncome.String(), rec.Date, "", rec.Amount.String())
	return rec, nil
}

// AddExpense records an expense dated today.
func (s *LedgerService) AddExpense(ctx context.Context, category, description, amountText string) (core.ExpenseRecord, error) {
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	rec := core.ExpenseRecord{
		Date:        core.FormatDate(s.now()),
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	if err := s.append(ctx, core.KindExpense, rec.Fields()); err != nil {
		return core.ExpenseRecord{}, err
	}
	log.NewStructuredLogger(log.FromContext(ctx)).
		LogRecordAppended(ctx, core.KindExpense.String(), rec.Date, rec.Category, rec.Amount.String())
	return rec, nil
}

// append writes to the store, then publishes. A failed publish is logged;
// the record is already durable.
func (s *LedgerService) append(ctx context.Context, kind core.Kind, fields []string) error {
	if err := s.store.Append(ctx, kind, fields); err != nil {
		return fmt.Errorf("append %s: %w", kind, err)
	}
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishRecordAppended(ctx, kind, fields); err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentAMQP).WarnContext(ctx,
			"Failed to publish record event",
			log.FieldOperation, log.OpPublish, log.FieldKind, kind.String(), log.FieldError, err)
	}
	return nil
}

// DashboardSnapshot returns whole-ledger totals.
func (s *LedgerService) DashboardSnapshot(ctx context.Context) (core.Totals, error) {
	return s.engine.Totals(ctx)
}

// RecordsView returns the stored field lists of one kind, in append order.
func (s *LedgerService) RecordsView(ctx context.Context, kind core.Kind) ([][]string, error) {
	if !kind.IsValid() {
		return nil, core.ErrUnknownKind
	}
	return s.store.ReadAll(ctx, kind)
}

// MonthlyReportText renders one line per month, or "No Data".
func (s *LedgerService) MonthlyReportText(ctx context.Context) (string, error) {
	sum, err := s.engine.MonthlySummary(ctx)
	if err != nil {
		return "", err
	}
	return FormatSummary(sum), nil
}

// YearlyReportText renders one line per year, or "No Data".
func (s *LedgerService) YearlyReportText(ctx context.Context) (string, error) {
	sum, err := s.engine.YearlySummary(ctx)
	if err != nil {
		return "", err
	}
	return FormatSummary(sum), nil
}

// ProfitReportText renders the three-line profit summary.
func (s *LedgerService) ProfitReportText(ctx context.Context) (string, error) {
	t, err := s.engine.Totals(ctx)
	if err != nil {
		return "", err
	}
	return FormatProfit(t), nil
}

// ChartSeries returns the income and expense totals for the comparison chart.
func (s *LedgerService) ChartSeries(ctx context.Context) (core.ChartSeries, error) {
	t, err := s.engine.Totals(ctx)
	if err != nil {
		return core.ChartSeries{}, err
	}
	return core.ChartSeries{Income: t.Income, Expense: t.Expense}, nil
}

func (s *LedgerService) CategoryTotals(ctx context.Context) (core.CategoryTotals, error) {
	return s.engine.CategoryTotals(ctx)
}

func (s *LedgerService) MonthlySummary(ctx context.Context) (core.Summary, error) {
	return s.engine.MonthlySummary(ctx)
}

func (s *LedgerService) YearlySummary(ctx context.Context) (core.Summary, error) {
	return s.engine.YearlySummary(ctx)
}

// Export builds the export table from the current store contents.
func (s *LedgerService) Export(ctx context.Context) (export.Table, error) {
	return export.Build(ctx, s.store)
}

// ExportToFile writes the export table as CSV to path, replacing any
// previous export, and returns the number of data rows written.
func (s *LedgerService) ExportToFile(ctx context.Context, path string) (int, error) {
	t, err := s.Export(ctx)
	if err != nil {
		return 0, err
	}
	if err := export.WriteFile(path, t); err != nil {
		return 0, err
	}
	log.FromContext(ctx).WithComponent(log.ComponentExport).InfoContext(ctx, "Ledger exported",
		log.FieldPathOnDisk, path, log.FieldRows, len(t.Rows))
	return len(t.Rows), nil
}

// ProjectPrice computes base plus profit and tax percentages.
func (s *LedgerService) ProjectPrice(base, profitPercent, taxPercent string) (decimal.Decimal, error) {
	return pricing.Price(base, profitPercent, taxPercent)
}

// Readme returns the feature list.
func (s *LedgerService) Readme() string {
	return fmt.Sprintf(readmeTemplate, s.version)
}

const readmeTemplate = `MoBiz Manager %s

Features:
- Dashboard Overview
- Add / View Income
- Add / View Expenses
- Profit Summary
- Monthly / Yearly Summary
- Project / Job Calculator
- Export to CSV
- Income vs Expense Chart
- Expense Category Breakdown
`

// NoData is the report text for an empty ledger.
const NoData = "No Data"

// FormatSummary renders buckets as "<key> → Income: x.xx, Expense: y.yy, Net: z.zz",
// one per line in bucket order.
func FormatSummary(sum core.Summary) string {
	if len(sum) == 0 {
		return NoData
	}
	var b strings.Builder
	for _, bucket := range sum {
		fmt.Fprintf(&b, "%s → Income: %s, Expense: %s, Net: %s\n",
			bucket.Key, money(bucket.Income), money(bucket.Expense), money(bucket.Net()))
	}
	return b.String()
}

// FormatProfit renders totals as the three-line profit summary.
func FormatProfit(t core.Totals) string {
	return fmt.Sprintf("Total Income: %s\nTotal Expense: %s\nNet Profit: %s",
		money(t.Income), money(t.Expense), money(t.Net))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
