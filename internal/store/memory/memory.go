package memory

import (
	"bufio"
	"context"
	"os"
	"sync"

	"mobiz/internal/core"
	"mobiz/internal/store"
)

var _ store.RecordStore = (*Store)(nil)

// Store keeps stored lines per kind in memory, using the same line codec as
// the file logs so both backends reject the same input.
type Store struct {
	mu    sync.Mutex
	lines map[core.Kind][]string
}

func New() *Store {
	return &Store{lines: make(map[core.Kind][]string)}
}

// NewFromFiles seeds the store with the lines of existing logs. Missing files
// are skipped; later appends stay in memory only.
func NewFromFiles(incomePath, expensePath string) *Store {
	s := New()
	s.lines[core.KindIncome] = readLines(incomePath)
	s.lines[core.KindExpense] = readLines(expensePath)
	return s
}

// Append stores the joined line.
func (s *Store) Append(_ context.Context, kind core.Kind, fields []string) error {
	line, err := core.JoinFields(kind, fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[kind] = append(s.lines[kind], line)
	return nil
}

// ReadAll splits every stored line of kind.
func (s *Store) ReadAll(_ context.Context, kind core.Kind) ([][]string, error) {
	if !kind.IsValid() {
		return nil, core.ErrUnknownKind
	}
	s.mu.Lock()
	lines := append([]string(nil), s.lines[kind]...)
	s.mu.Unlock()

	out := make([][]string, 0, len(lines))
	for i, l := range lines {
		fields, ok, err := core.SplitLine(kind, l, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, fields)
		}
	}
	return out, nil
}

// Len returns the number of stored lines of kind.
func (s *Store) Len(kind core.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines[kind])
}

// PutRaw stores a line without validation. Tests use it to simulate
// externally corrupted logs.
func (s *Store) PutRaw(kind core.Kind, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[kind] = append(s.lines[kind], line)
}

func readLines(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out
}
