package worker

import (
	"context"
	"fmt"
	"time"

	"mobiz/internal/amqp"
	"mobiz/internal/export"
	"mobiz/internal/log"
	"mobiz/internal/sheets"
	"mobiz/internal/store"
)

// MirrorWorker copies the ledger into a spreadsheet. Record events append one
// export row each; Resync rewrites the whole sheet from the store, which also
// repairs duplicates left by redelivered messages.
type MirrorWorker struct {
	store  store.Reader
	sink   sheets.Sink
	logger *log.Logger
}

func NewMirrorWorker(r store.Reader, sink sheets.Sink, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &MirrorWorker{
		store:  r,
		sink:   sink,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleRecordAppended appends the export row for one record event.
func (w *MirrorWorker) HandleRecordAppended(ctx context.Context, msg *amqp.RecordAppendedMessage) error {
	row, err := export.Row(msg.Kind, msg.Fields)
	if err != nil {
		return fmt.Errorf("message %s: %w", msg.ID, err)
	}
	if err := w.sink.AppendRows(ctx, [][]string{row}); err != nil {
		return fmt.Errorf("mirror message %s: %w", msg.ID, err)
	}

	w.logger.InfoContext(ctx, "Record mirrored",
		"message_id", msg.ID,
		log.FieldKind, msg.Kind.String(),
		log.FieldOperation, log.OpSync)
	return nil
}

// Resync replaces the sheet with a fresh export of the store.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	t, err := export.Build(ctx, w.store)
	if err != nil {
		return fmt.Errorf("build export: %w", err)
	}
	if err := w.sink.WriteTable(ctx, t); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}

	w.logger.InfoContext(ctx, "Sheet resynced", log.FieldRows, len(t.Rows))
	return nil
}

// RunResync resyncs once immediately and then every interval until ctx ends.
// Failed rounds are logged and retried on the next tick.
func (w *MirrorWorker) RunResync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := w.Resync(ctx); err != nil && ctx.Err() == nil {
			w.logger.ErrorContext(ctx, "Resync failed", log.FieldError, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
