package scanner

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"depositScanner/internal/deposit"
	"depositScanner/internal/model"
	"depositScanner/internal/storage"
)

// LogSource is the chain RPC surface used by the scanner.
type LogSource interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)
}

// Config holds runtime settings for one scan.
type Config struct {
	Chain          string
	Contract       common.Address
	Start          BlockRef
	End            BlockRef
	Filter         deposit.Filter
	ChunkThreshold uint64
	MaxRetries     int
	RetryBackoff   time.Duration
}

// Scanner reads Deposit events over a block range and appends them to a sink.
type Scanner struct {
	cfg     Config
	source  LogSource
	decoder *deposit.Decoder
	sink    storage.Sink
	logger  *zap.Logger
}

// New builds a Scanner with its dependencies.
func New(cfg Config, source LogSource, decoder *deposit.Decoder, sink storage.Sink, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ChunkThreshold == 0 {
		cfg.ChunkThreshold = DefaultChunkThreshold
	}
	return &Scanner{
		cfg:     cfg,
		source:  source,
		decoder: decoder,
		sink:    sink,
		logger:  logger,
	}
}

// Run resolves the range and scans it chunk by chunk. Rows of completed
// chunks stay persisted when a later chunk fails.
func (s *Scanner) Run(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("log source is nil")
	}
	if s.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if s.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if _, ok := DefaultEndpoints()[s.cfg.Chain]; !ok {
		return &InvalidChainError{Chain: s.cfg.Chain}
	}

	from, err := s.resolve(ctx, s.cfg.Start)
	if err != nil {
		return err
	}
	to, err := s.resolve(ctx, s.cfg.End)
	if err != nil {
		return err
	}
	if to < from {
		return &RangeError{Start: from, End: to}
	}

	if from == to {
		s.logger.Info("scanning block", zap.String("chain", s.cfg.Chain), zap.Uint64("block", from))
	} else {
		s.logger.Info("scanning blocks", zap.String("chain", s.cfg.Chain), zap.Uint64("from", from), zap.Uint64("to", to))
	}

	chunks, err := PlanChunks(from, to, s.cfg.ChunkThreshold)
	if err != nil {
		return err
	}

	// Block-by-block scans create the file up front so it exists even if
	// the first query fails.
	if len(chunks) > 1 {
		if err := s.write(ctx, nil); err != nil {
			return err
		}
	}

	total := 0
	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logs, err := s.filterLogsWithRetry(ctx, chunk)
		if err != nil {
			return &RPCError{Op: "eth_getLogs", From: chunk.From, To: chunk.To, Err: err}
		}

		rows, err := buildRows(s.cfg.Chain, s.decoder, logs)
		if err != nil {
			return &RPCError{Op: "decode", From: chunk.From, To: chunk.To, Err: err}
		}

		if err := s.write(ctx, rows); err != nil {
			return err
		}
		total += len(rows)

		if len(rows) > 0 {
			s.logger.Debug("chunk complete", zap.Int("rows", len(rows)), zap.Uint64("from", chunk.From), zap.Uint64("to", chunk.To))
		}
	}

	s.logger.Info("scan complete",
		zap.String("chain", s.cfg.Chain),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("chunks", len(chunks)),
		zap.Int("rows", total),
	)
	return nil
}

func (s *Scanner) resolve(ctx context.Context, ref BlockRef) (uint64, error) {
	if !ref.Latest {
		return ref.Number, nil
	}

	var head uint64
	err := withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		head, err = s.source.LatestBlockNumber(ctx)
		if err != nil {
			s.logger.Warn("latest block lookup failed", zap.Error(err))
		}
		return err
	})
	if err != nil {
		return 0, &RPCError{Op: "eth_blockNumber", Err: err}
	}
	return head, nil
}

func (s *Scanner) filterLogsWithRetry(ctx context.Context, chunk BlockRange) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(chunk.From),
		ToBlock:   new(big.Int).SetUint64(chunk.To),
		Addresses: []common.Address{s.cfg.Contract},
		Topics:    s.decoder.Topics(s.cfg.Filter),
	}

	var logs []types.Log
	err := withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = s.source.FilterLogs(ctx, query)
		if err != nil {
			s.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", chunk.From), zap.Uint64("to", chunk.To))
		}
		return err
	})
	return logs, err
}

func (s *Scanner) write(ctx context.Context, rows []model.LogRow) error {
	if err := s.sink.PutRows(ctx, rows); err != nil {
		return &IOError{Err: err}
	}
	return nil
}
