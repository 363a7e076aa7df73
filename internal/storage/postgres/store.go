package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"depositScanner/internal/model"
)

const createDepositLogs = `
	CREATE TABLE IF NOT EXISTS deposit_logs (
		chain            TEXT        NOT NULL,
		token            TEXT        NOT NULL,
		recipient        TEXT        NOT NULL,
		amount           NUMERIC(78) NOT NULL,
		transaction_hash TEXT        NOT NULL,
		log_index        BIGINT      NOT NULL,
		address          TEXT        NOT NULL,
		block_number     BIGINT      NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (chain, transaction_hash, log_index)
	)
`

// Store mirrors deposit rows into Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the deposit_logs table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createDepositLogs); err != nil {
		return fmt.Errorf("create deposit_logs: %w", err)
	}
	return nil
}

// PutRows inserts rows, skipping ones already stored for the same log.
func (s *Store) PutRows(ctx context.Context, rows []model.LogRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO deposit_logs (
				chain, token, recipient, amount, transaction_hash, log_index, address, block_number
			) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
			ON CONFLICT (chain, transaction_hash, log_index) DO NOTHING
		`,
			row.Chain,
			row.Token,
			row.Recipient,
			row.Amount,
			row.TransactionHash,
			int64(row.LogIndex),
			row.Address,
			int64(row.BlockNumber),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
