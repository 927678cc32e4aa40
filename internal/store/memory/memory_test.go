package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mobiz/internal/core"
)

func TestMemoryStoreAppendAndReadAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Append(ctx, core.KindIncome, []string{"2024-01-05", "Job A", "100"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, core.KindIncome, []string{"2024-01-05", "Job|B", "100"}); !errors.Is(err, core.ErrDelimiterInField) {
		t.Fatalf("expected ErrDelimiterInField, got %v", err)
	}
	recs, err := s.ReadAll(ctx, core.KindIncome)
	if err != nil || len(recs) != 1 || recs[0][1] != "Job A" {
		t.Fatalf("unexpected records %v (err=%v)", recs, err)
	}
	if s.Len(core.KindExpense) != 0 {
		t.Fatalf("expected no expenses")
	}
}

func TestMemoryStoreCorruptLine(t *testing.T) {
	s := New()
	s.PutRaw(core.KindExpense, "2024-01-10|Supplies|40")
	_, err := s.ReadAll(context.Background(), core.KindExpense)
	var fe *core.FormatError
	if !errors.As(err, &fe) || fe.Line != 1 {
		t.Fatalf("expected FormatError on line 1, got %v", err)
	}
}

func TestNewFromFilesSeeds(t *testing.T) {
	dir := t.TempDir()
	inc := filepath.Join(dir, "income.txt")
	if err := os.WriteFile(inc, []byte("2024-01-05|Job A|100\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewFromFiles(inc, filepath.Join(dir, "missing.txt"))
	recs, err := s.ReadAll(context.Background(), core.KindIncome)
	if err != nil || len(recs) != 1 {
		t.Fatalf("unexpected seed: %v (err=%v)", recs, err)
	}
	exp, err := s.ReadAll(context.Background(), core.KindExpense)
	if err != nil || len(exp) != 0 {
		t.Fatalf("missing file should seed nothing: %v (err=%v)", exp, err)
	}
}
