package backend

import (
	"context"
	"fmt"

	"mobiz/internal/core"
	"mobiz/internal/log"
	"mobiz/internal/storage"
	"mobiz/internal/store/logfile"
	"mobiz/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileBackend(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	st := logfile.New(logfile.Paths{Income: config.IncomeLogPath, Expense: config.ExpenseLogPath})

	f.logger.InfoContext(ctx, "Initialized file backend",
		"income_log", config.IncomeLogPath,
		"expense_log", config.ExpenseLogPath)

	return &BackendResult{Store: st}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	st := memory.NewFromFiles(config.IncomeLogPath, config.ExpenseLogPath)

	f.logger.InfoContext(ctx, "Initialized memory backend",
		"income_seeded", st.Len(core.KindIncome),
		"expense_seeded", st.Len(core.KindExpense))

	return &BackendResult{Store: st}, nil
}
