package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"depositScanner/internal/model"
)

type recordingSink struct {
	batches [][]model.LogRow
	err     error
}

func (s *recordingSink) PutRows(_ context.Context, rows []model.LogRow) error {
	s.batches = append(s.batches, rows)
	return s.err
}

var _ Sink = (*recordingSink)(nil)

func TestMultiSinkWritesAll(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	rows := []model.LogRow{sampleRow("bsc", "1")}

	require.NoError(t, MultiSink{a, b}.PutRows(context.Background(), rows))
	require.Equal(t, [][]model.LogRow{rows}, a.batches)
	require.Equal(t, [][]model.LogRow{rows}, b.batches)
}

func TestMultiSinkStopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recordingSink{err: boom}, &recordingSink{}

	err := MultiSink{a, b}.PutRows(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	require.Len(t, a.batches, 1)
	require.Empty(t, b.batches)
}
