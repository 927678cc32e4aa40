package main

import (
	"errors"
	"fmt"

	"mobiz/internal/backend"
	"mobiz/internal/config"
)

var (
	errAMQPRequired   = errors.New("mobiz-worker requires AMQP_URL")
	errSheetsRequired = errors.New("mobiz-worker requires GOOGLE_SPREADSHEET_ID")
)

// checkWorkerConfig rejects settings the mirror worker cannot run with. A
// memory store in the worker never sees records appended by the server, so a
// resync from it would clear the sheet.
func checkWorkerConfig(cfg *config.Config) error {
	var errs []error
	if !cfg.AMQPEnabled() {
		errs = append(errs, errAMQPRequired)
	}
	if !cfg.SheetsEnabled() {
		errs = append(errs, errSheetsRequired)
	}
	if backend.BackendType(cfg.DataBackend) == backend.MemoryBackend {
		errs = append(errs, fmt.Errorf("DATA_BACKEND %q is process-local; mobiz-worker needs %s or %s",
			cfg.DataBackend, backend.FileBackend, backend.SQLiteBackend))
	}
	return errors.Join(errs...)
}
