// Package store defines the Record Store ports shared by every backend.
package store

import (
	"context"

	"mobiz/internal/core"
)

// Ports for record persistence.
type (
	// Appender durably appends one record of the given kind.
	Appender interface {
		Append(ctx context.Context, kind core.Kind, fields []string) error
	}

	// Reader returns every stored record of a kind in append order.
	// A missing backing log is an empty ledger, not an error.
	Reader interface {
		ReadAll(ctx context.Context, kind core.Kind) ([][]string, error)
	}

	RecordStore interface {
		Appender
		Reader
	}
)
