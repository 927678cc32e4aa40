package aggregate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"mobiz/internal/core"
	"mobiz/internal/store/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T, incomes, expenses [][]string) *memory.Store {
	t.Helper()
	s := memory.New()
	for _, f := range incomes {
		if err := s.Append(context.Background(), core.KindIncome, f); err != nil {
			t.Fatalf("seed income %v: %v", f, err)
		}
	}
	for _, f := range expenses {
		if err := s.Append(context.Background(), core.KindExpense, f); err != nil {
			t.Fatalf("seed expense %v: %v", f, err)
		}
	}
	return s
}

func TestTotalsEmptyStore(t *testing.T) {
	tot, err := NewEngine(memory.New()).Totals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tot.Income.IsZero() || !tot.Expense.IsZero() || !tot.Net.IsZero() {
		t.Fatalf("expected zeros, got %+v", tot)
	}
}

func TestTotals(t *testing.T) {
	s := seed(t,
		[][]string{{"2024-01-05", "Job A", "100.0"}},
		[][]string{{"2024-01-10", "Supplies", "Paint", "40.0"}},
	)
	tot, err := NewEngine(s).Totals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tot.Income.Equal(d("100")) || !tot.Expense.Equal(d("40")) || !tot.Net.Equal(d("60")) {
		t.Fatalf("unexpected totals %+v", tot)
	}
}

func TestTotalsKeepsFullPrecision(t *testing.T) {
	s := seed(t,
		[][]string{{"2024-01-05", "a", "0.1"}, {"2024-01-05", "b", "0.2"}, {"2024-01-05", "c", "0.005"}},
		nil,
	)
	tot, err := NewEngine(s).Totals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tot.Income.Equal(d("0.305")) {
		t.Fatalf("expected 0.305, got %s", tot.Income)
	}
}

func TestMonthlySummary(t *testing.T) {
	s := seed(t,
		[][]string{
			{"2024-01-05", "Job A", "100"},
			{"2024-02-01", "Job B", "50"},
			{"2024-01-20", "Job C", "25"},
		},
		[][]string{
			{"2024-01-10", "Supplies", "Paint", "40"},
			{"2024-03-02", "Travel", "Bus", "5"},
		},
	)
	sum, err := NewEngine(s).MonthlySummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := make([]string, len(sum))
	for i, b := range sum {
		keys[i] = b.Key
	}
	if !reflect.DeepEqual(keys, []string{"2024-01", "2024-02", "2024-03"}) {
		t.Fatalf("unexpected bucket order %v", keys)
	}

	jan, _ := sum.Get("2024-01")
	if !jan.Income.Equal(d("125")) || !jan.Expense.Equal(d("40")) || !jan.Net().Equal(d("85")) {
		t.Fatalf("unexpected january %+v", jan)
	}
	feb, ok := sum.Get("2024-02")
	if !ok || !feb.Expense.IsZero() || !feb.Income.Equal(d("50")) {
		t.Fatalf("february must exist with zero expense: %+v", feb)
	}
	mar, ok := sum.Get("2024-03")
	if !ok || !mar.Income.IsZero() || !mar.Expense.Equal(d("5")) {
		t.Fatalf("march must exist with zero income: %+v", mar)
	}
}

func TestMonthlySummaryMalformedDatesFormOwnBucket(t *testing.T) {
	s := seed(t, [][]string{{"01/05/2024", "x", "1"}, {"bad", "y", "2"}}, nil)
	sum, err := NewEngine(s).MonthlySummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sum.Get("01/05/2"); !ok {
		t.Fatalf("expected literal prefix bucket, got %+v", sum)
	}
	if _, ok := sum.Get("bad"); !ok {
		t.Fatalf("expected short date bucket, got %+v", sum)
	}
}

func TestYearlySummary(t *testing.T) {
	s := seed(t,
		[][]string{{"2023-12-31", "a", "10"}, {"2024-01-01", "b", "20"}},
		[][]string{{"2024-06-01", "Rent", "June", "5"}},
	)
	sum, err := NewEngine(s).YearlySummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum) != 2 || sum[0].Key != "2023" || sum[1].Key != "2024" {
		t.Fatalf("unexpected years %+v", sum)
	}
	if !sum[1].Net().Equal(d("15")) {
		t.Fatalf("unexpected 2024 net %s", sum[1].Net())
	}
}

func TestCategoryTotals(t *testing.T) {
	s := seed(t, nil, [][]string{
		{"2024-01-10", "Supplies", "Paint", "40"},
		{"2024-01-11", "Supplies", "Tape", "10"},
		{"2024-01-12", "Travel", "Train", "20"},
		{"2024-01-13", "supplies", "Glue", "1"},
	})
	cats, err := NewEngine(s).CategoryTotals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("categories are case-sensitive, got %+v", cats)
	}
	if v, _ := cats.Get("Supplies"); !v.Equal(d("50")) {
		t.Fatalf("Supplies=%s", v)
	}
	if v, _ := cats.Get("Travel"); !v.Equal(d("20")) {
		t.Fatalf("Travel=%s", v)
	}
}

func TestCategoryTotalsEmpty(t *testing.T) {
	cats, err := NewEngine(memory.New()).CategoryTotals(context.Background())
	if err != nil || len(cats) != 0 {
		t.Fatalf("expected empty categories, got %+v (err=%v)", cats, err)
	}
}

func TestCorruptStoredAmountIsError(t *testing.T) {
	s := memory.New()
	s.PutRaw(core.KindIncome, "2024-01-05|Job A|100")
	s.PutRaw(core.KindIncome, "2024-01-06|Job B|lots")
	e := NewEngine(s)

	_, err := e.Totals(context.Background())
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	var re *core.RecordError
	if !errors.As(err, &re) || re.Record != 2 || re.Kind != core.KindIncome {
		t.Fatalf("expected RecordError on income record 2, got %v", err)
	}
	if _, err := e.MonthlySummary(context.Background()); err == nil {
		t.Fatal("monthly summary must fail on corrupt amount")
	}
}

func TestRecordErrorCountsRecordsNotLines(t *testing.T) {
	s := memory.New()
	s.PutRaw(core.KindIncome, "")
	s.PutRaw(core.KindIncome, "   ")
	s.PutRaw(core.KindIncome, "2024-01-05|Job A|100")
	s.PutRaw(core.KindIncome, "2024-01-06|Job B|lots")

	_, err := NewEngine(s).Totals(context.Background())
	var re *core.RecordError
	if !errors.As(err, &re) || re.Record != 2 {
		t.Fatalf("expected RecordError for record 2, got %v", err)
	}
	if !strings.Contains(err.Error(), "income record 2") {
		t.Fatalf("error should name the record position, got %q", err)
	}
}

func TestShortStoredLineIsFormatError(t *testing.T) {
	s := memory.New()
	s.PutRaw(core.KindExpense, "2024-01-10|Supplies|40")
	_, err := NewEngine(s).CategoryTotals(context.Background())
	var fe *core.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	s := seed(t,
		[][]string{{"2024-01-05", "Job A", "100"}, {"2024-02-05", "Job B", "3"}},
		[][]string{{"2024-01-10", "Supplies", "Paint", "40"}},
	)
	e := NewEngine(s)
	ctx := context.Background()

	t1, _ := e.Totals(ctx)
	t2, _ := e.Totals(ctx)
	if !reflect.DeepEqual(t1, t2) {
		t.Fatalf("totals changed between calls: %+v vs %+v", t1, t2)
	}
	m1, _ := e.MonthlySummary(ctx)
	m2, _ := e.MonthlySummary(ctx)
	if !reflect.DeepEqual(m1, m2) {
		t.Fatalf("monthly summary changed between calls")
	}
	if s.Len(core.KindIncome) != 2 || s.Len(core.KindExpense) != 1 {
		t.Fatalf("reads must not mutate the store")
	}
}
