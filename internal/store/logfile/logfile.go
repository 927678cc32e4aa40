// Package logfile implements the Record Store as two append-only text logs,
// one line per record with fields joined by "|".
package logfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"mobiz/internal/core"
	"mobiz/internal/store"
)

const maxLineSize = 1 << 20

var _ store.RecordStore = (*Store)(nil)

// Paths locates the backing log of each record kind.
type Paths struct {
	Income  string
	Expense string
}

// DefaultPaths returns the versioned log names inside dir,
// e.g. income_log_v18.txt and expense_log_v18.txt.
func DefaultPaths(dir, version string) Paths {
	return Paths{
		Income:  filepath.Join(dir, fmt.Sprintf("income_log_%s.txt", version)),
		Expense: filepath.Join(dir, fmt.Sprintf("expense_log_%s.txt", version)),
	}
}

// Store appends to and reads from the kind's log file. Appends within one
// process are serialized; nothing guards against a second process.
type Store struct {
	mu    sync.Mutex
	paths Paths
}

func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// Path returns the log file backing kind.
func (s *Store) Path(kind core.Kind) (string, error) {
	switch kind {
	case core.KindIncome:
		return s.paths.Income, nil
	case core.KindExpense:
		return s.paths.Expense, nil
	default:
		return "", core.ErrUnknownKind
	}
}

// Append writes one line to the kind's log. The line is validated first so a
// rejected record leaves the log untouched.
func (s *Store) Append(ctx context.Context, kind core.Kind, fields []string) error {
	path, err := s.Path(kind)
	if err != nil {
		return err
	}
	line, err := core.JoinFields(kind, fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s log: %w", kind, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append %s log: %w", kind, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s log: %w", kind, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s log: %w", kind, err)
	}

	slog.DebugContext(ctx, "Record appended", "kind", kind, "path", path)
	return nil
}

// ReadAll returns the split lines of the kind's log in file order.
// Blank lines are skipped and reported at debug level.
func (s *Store) ReadAll(ctx context.Context, kind core.Kind) ([][]string, error) {
	path, err := s.Path(kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return [][]string{}, nil
		}
		return nil, fmt.Errorf("open %s log: %w", kind, err)
	}
	defer f.Close()

	records := [][]string{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo, blank := 0, 0
	for sc.Scan() {
		lineNo++
		fields, ok, err := core.SplitLine(kind, sc.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if !ok {
			blank++
			continue
		}
		records = append(records, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s log: %w", kind, err)
	}
	if blank > 0 {
		slog.DebugContext(ctx, "Blank log lines skipped", "kind", kind, "path", path, "blank_lines", blank)
	}
	return records, nil
}
