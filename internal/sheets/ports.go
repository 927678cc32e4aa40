package sheets

import (
	"context"

	"mobiz/internal/export"
)

// Ports for outbound spreadsheet adapters.
type (
	// RowAppender adds export rows below the existing ones.
	RowAppender interface {
		AppendRows(ctx context.Context, rows [][]string) error
	}

	// TableWriter replaces the whole sheet with an export table.
	TableWriter interface {
		WriteTable(ctx context.Context, t export.Table) error
	}

	Sink interface {
		RowAppender
		TableWriter
	}
)
