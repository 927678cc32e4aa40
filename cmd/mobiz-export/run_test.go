package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mobiz/internal/core"
	"mobiz/internal/export"
	"mobiz/internal/log"
	"mobiz/internal/services"
	"mobiz/internal/store/memory"
)

type fakeWriter struct {
	tables []export.Table
	err    error
}

func (f *fakeWriter) WriteTable(_ context.Context, table export.Table) error {
	f.tables = append(f.tables, table)
	return f.err
}

func testLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = &bytes.Buffer{}
	return log.New(cfg)
}

func seededService() *services.LedgerService {
	st := memory.New()
	st.PutRaw(core.KindIncome, "2024-01-05|Job A|100")
	st.PutRaw(core.KindExpense, "2024-01-10|Supplies|Paint|40")
	return services.NewLedgerService(st, nil)
}

func TestRunWritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mobiz_export_v18.csv")
	called := false
	newWriter := func(context.Context) (tableWriter, error) {
		called = true
		return &fakeWriter{}, nil
	}

	if err := run(context.Background(), testLogger(), seededService(), out, false, true, newWriter); err != nil {
		t.Fatalf("run: %v", err)
	}
	if called {
		t.Fatal("sheets writer should not be created without -sheets")
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Supplies") {
		t.Fatalf("export missing expense row:\n%s", data)
	}
}

func TestRunMirrorsToSheets(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export.csv")
	w := &fakeWriter{}
	newWriter := func(context.Context) (tableWriter, error) { return w, nil }

	if err := run(context.Background(), testLogger(), seededService(), out, true, true, newWriter); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(w.tables) != 1 || len(w.tables[0].Rows) != 2 {
		t.Fatalf("expected one table with 2 rows, got %+v", w.tables)
	}
}

func TestRunSheetsErrors(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "export.csv")

	err := run(ctx, testLogger(), seededService(), out, true, false, nil)
	if !errors.Is(err, errSheetsNotConfigured) {
		t.Fatalf("expected errSheetsNotConfigured, got %v", err)
	}

	boom := errors.New("quota exceeded")
	newWriter := func(context.Context) (tableWriter, error) { return &fakeWriter{err: boom}, nil }
	if err := run(ctx, testLogger(), seededService(), out, true, true, newWriter); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
