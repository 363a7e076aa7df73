package storage

import (
	"context"

	"depositScanner/internal/model"
)

// Sink persists batches of deposit rows.
type Sink interface {
	PutRows(ctx context.Context, rows []model.LogRow) error
}
