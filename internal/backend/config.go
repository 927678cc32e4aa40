package backend

import (
	"fmt"

	"mobiz/internal/config"
	"mobiz/internal/store/logfile"
)

// FromAppConfig converts the application config to backend config. Explicit
// log paths win over the versioned defaults in the ledger directory.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	paths := logfile.DefaultPaths(appConfig.LedgerDir, appConfig.LedgerVersion)
	if appConfig.IncomeLogPath != "" {
		paths.Income = appConfig.IncomeLogPath
	}
	if appConfig.ExpenseLogPath != "" {
		paths.Expense = appConfig.ExpenseLogPath
	}

	return Config{
		Type:           backendType,
		IncomeLogPath:  paths.Income,
		ExpenseLogPath: paths.Expense,
		SQLiteDBPath:   appConfig.SQLiteDBPath,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s (valid: %v)", c.Type, GetBackendTypes())
	}

	switch c.Type {
	case FileBackend:
		if c.IncomeLogPath == "" || c.ExpenseLogPath == "" {
			return fmt.Errorf("income and expense log paths are required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// log paths are optional seeds
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{FileBackend, SQLiteBackend, MemoryBackend}
}
