package main

import (
	"context"
	"errors"
	"fmt"

	"mobiz/internal/export"
	"mobiz/internal/log"
	"mobiz/internal/services"
)

var errSheetsNotConfigured = errors.New("google sheets not configured: set GOOGLE_SPREADSHEET_ID and credentials")

type tableWriter interface {
	WriteTable(ctx context.Context, table export.Table) error
}

func run(
	ctx context.Context,
	logger *log.Logger,
	svc *services.LedgerService,
	out string,
	toSheets, sheetsEnabled bool,
	newWriter func(context.Context) (tableWriter, error),
) error {
	rows, err := svc.ExportToFile(ctx, out)
	if err != nil {
		return err
	}
	logger.Info("Export written", log.FieldOperation, log.OpExport, log.FieldPathOnDisk, out, log.FieldRows, rows)

	if !toSheets {
		return nil
	}
	if !sheetsEnabled {
		return errSheetsNotConfigured
	}
	w, err := newWriter(ctx)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}
	table, err := svc.Export(ctx)
	if err != nil {
		return err
	}
	if err := w.WriteTable(ctx, table); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	logger.Info("Export mirrored to Google Sheets", log.FieldRows, len(table.Rows))
	return nil
}
