package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mobiz/internal/core"
	"mobiz/internal/store/memory"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	// Expense dated before the second income: export order ignores dates.
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(s.Append(ctx, core.KindIncome, []string{"2024-01-05", "Job A", "100"}))
	must(s.Append(ctx, core.KindExpense, []string{"2024-01-02", "Supplies", "Paint", "40"}))
	must(s.Append(ctx, core.KindIncome, []string{"2024-03-01", "Job B", "7.5"}))
	must(s.Append(ctx, core.KindExpense, []string{"2024-02-01", "Travel", "Train", "20"}))
	return s
}

func TestBuildOrderAndSchema(t *testing.T) {
	tbl, err := Build(context.Background(), seeded(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(tbl.Header, []string{"Type", "Date", "Category", "Description", "Amount"}) {
		t.Fatalf("unexpected header %v", tbl.Header)
	}
	want := [][]string{
		{"Income", "2024-01-05", "", "Job A", "100"},
		{"Income", "2024-03-01", "", "Job B", "7.5"},
		{"Expense", "2024-01-02", "Supplies", "Paint", "40"},
		{"Expense", "2024-02-01", "Travel", "Train", "20"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows mismatch:\n got %v\nwant %v", tbl.Rows, want)
	}
}

func TestBuildEmpty(t *testing.T) {
	tbl, err := Build(context.Background(), memory.New())
	if err != nil || len(tbl.Rows) != 0 || len(tbl.Header) != 5 {
		t.Fatalf("unexpected empty export %+v (err=%v)", tbl, err)
	}
}

func TestBuildShortLine(t *testing.T) {
	s := memory.New()
	s.PutRaw(core.KindIncome, "2024-01-05|100")
	_, err := Build(context.Background(), s)
	var fe *core.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	tbl, err := Build(context.Background(), seeded(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Type,Date,Category,Description,Amount\n" +
		"Income,2024-01-05,,Job A,100\n" +
		"Income,2024-03-01,,Job B,7.5\n" +
		"Expense,2024-01-02,Supplies,Paint,40\n" +
		"Expense,2024-02-01,Travel,Train,20\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	tbl := Table{Header: Header, Rows: [][]string{{"Expense", "2024-01-02", "Food", "Bread, milk", "3"}}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"Bread, milk"`)) {
		t.Fatalf("expected quoted field, got %s", buf.String())
	}
}

func TestWriteFileReplaces(t *testing.T) {
	path := DefaultPath(filepath.Join(t.TempDir(), "out"), "v18")
	if filepath.Base(path) != "mobiz_export_v18.csv" {
		t.Fatalf("unexpected default path %s", path)
	}
	if err := WriteFile(path, Table{Header: Header, Rows: [][]string{{"Income", "d", "", "x", "1"}}}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFile(path, Table{Header: Header}); err != nil {
		t.Fatalf("second write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "Type,Date,Category,Description,Amount\n" {
		t.Fatalf("export must be replaced, got %q", raw)
	}
}

func TestWriteFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mobiz_export_v18.csv")
	if err := WriteFile(path, Table{Header: Header}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Fatalf("export mode = %v, want 0644", got)
	}
}
