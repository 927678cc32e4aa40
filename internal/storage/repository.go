package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mobiz/internal/core"
	"mobiz/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.RecordStore = (*SQLiteRepository)(nil)

// SQLiteRepository stores ledger lines in a single table, one row per
// record, in the same "|" format as the text logs.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps appends ordered and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.Appender
func (r *SQLiteRepository) Append(ctx context.Context, kind core.Kind, fields []string) error {
	line, err := core.JoinFields(kind, fields)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_lines (kind, line) VALUES (?, ?)`, string(kind), line)
	if err != nil {
		return fmt.Errorf("insert %s line: %w", kind, err)
	}

	id, _ := res.LastInsertId()
	slog.DebugContext(ctx, "Record saved to SQLite", "id", id, "kind", kind)
	return nil
}

// ReadAll implements store.Reader
func (r *SQLiteRepository) ReadAll(ctx context.Context, kind core.Kind) ([][]string, error) {
	if !kind.IsValid() {
		return nil, core.ErrUnknownKind
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT line FROM ledger_lines WHERE kind = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s lines: %w", kind, err)
	}
	defer rows.Close()

	records := [][]string{}
	n := 0
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan %s line: %w", kind, err)
		}
		n++
		fields, ok, err := core.SplitLine(kind, line, n)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, fields)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s lines: %w", kind, err)
	}
	return records, nil
}

// Count returns the number of stored rows of kind.
func (r *SQLiteRepository) Count(ctx context.Context, kind core.Kind) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_lines WHERE kind = ?`, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s lines: %w", kind, err)
	}
	return n, nil
}

// insertRaw bypasses the line codec; tests use it to plant corrupt rows.
func (r *SQLiteRepository) insertRaw(ctx context.Context, kind core.Kind, line string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_lines (kind, line) VALUES (?, ?)`, string(kind), line)
	return err
}
