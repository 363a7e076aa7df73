package storage

import (
	"context"
	"fmt"

	"depositScanner/internal/model"
)

// MultiSink writes every batch to each sink in order and stops at the first failure.
type MultiSink []Sink

func (m MultiSink) PutRows(ctx context.Context, rows []model.LogRow) error {
	for i, sink := range m {
		if err := sink.PutRows(ctx, rows); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
