// Package export renders the ledger as a single table with a fixed column
// schema and writes it as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mobiz/internal/core"
	"mobiz/internal/store"
)

const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Header is the fixed first row of every export.
var Header = []string{"Type", "Date", "Category", "Description", "Amount"}

// Table is the export header plus one row per record.
type Table struct {
	Header []string
	Rows   [][]string
}

// DefaultPath returns the versioned export file name inside dir.
func DefaultPath(dir, version string) string {
	return filepath.Join(dir, fmt.Sprintf("mobiz_export_%s.csv", version))
}

// Row maps stored fields to an export row. Values are copied verbatim;
// income rows have an empty category.
func Row(kind core.Kind, fields []string) ([]string, error) {
	if err := core.CheckArity(kind, fields, 0); err != nil {
		return nil, err
	}
	switch kind {
	case core.KindIncome:
		return []string{TypeIncome, fields[0], "", fields[1], fields[2]}, nil
	default:
		return []string{TypeExpense, fields[0], fields[1], fields[2], fields[3]}, nil
	}
}

// Build reads the store and returns all income rows in store order followed
// by all expense rows in store order.
func Build(ctx context.Context, r store.Reader) (Table, error) {
	t := Table{Header: append([]string(nil), Header...), Rows: [][]string{}}
	for _, kind := range core.Kinds() {
		recs, err := r.ReadAll(ctx, kind)
		if err != nil {
			return Table{}, fmt.Errorf("read %s records: %w", kind, err)
		}
		for i, fields := range recs {
			row, err := Row(kind, fields)
			if err != nil {
				return Table{}, &core.RecordError{Kind: kind, Record: i + 1, Err: err}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

// WriteCSV writes the header and rows as comma-separated values.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteFile replaces the file at path with the CSV rendering of t.
func WriteFile(path string, t Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".mobiz-export-*.csv")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	// CreateTemp uses 0600; the export is a regular shared file.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace export: %w", err)
	}
	return nil
}
