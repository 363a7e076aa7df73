package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"depositScanner/internal/chain"
	"depositScanner/internal/config"
	"depositScanner/internal/deposit"
	"depositScanner/internal/scanner"
	"depositScanner/internal/storage"
	"depositScanner/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "scanner",
		Short:        "Deposit event scanner for the avax and bsc testnets",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Append Deposit events in a block range to the CSV log",
		RunE:  runScan,
	}

	scanCmd.Flags().String("chain", "", "chain to scan (avax, bsc)")
	scanCmd.Flags().String("rpc", "", "override the RPC URL of the selected chain")
	scanCmd.Flags().String("from", "latest", "start block (inclusive) or latest")
	scanCmd.Flags().String("to", "latest", "end block (inclusive) or latest")
	scanCmd.Flags().String("contract", "", "address of the contract emitting Deposit")
	scanCmd.Flags().String("out", "deposit_logs.csv", "output CSV path")
	scanCmd.Flags().String("abi", "", "contract ABI JSON file (defaults to the built-in Deposit ABI)")
	scanCmd.Flags().String("token-field", "token", "ABI name of the token argument")
	scanCmd.Flags().String("recipient-field", "", "ABI name of the recipient argument (e.g. recipient or to)")
	scanCmd.Flags().String("amount-field", "amount", "ABI name of the amount argument")
	scanCmd.Flags().StringSlice("token", nil, "only include these tokens (comma-separated)")
	scanCmd.Flags().StringSlice("recipient", nil, "only include these recipients (comma-separated)")
	scanCmd.Flags().Uint64("chunk-threshold", scanner.DefaultChunkThreshold, "ranges narrower than this are fetched in one query")
	scanCmd.Flags().Int("max-retries", 0, "retry attempts per RPC call")
	scanCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	scanCmd.Flags().Float64("rpc-rate", 0, "max RPC requests per second, 0 for unlimited")
	scanCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to mirror rows into")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	headCmd := &cobra.Command{
		Use:   "head",
		Short: "Print the chain head header",
		RunE:  runHead,
	}

	headCmd.Flags().String("chain", "", "chain to query (avax, bsc)")
	headCmd.Flags().String("rpc", "", "override the RPC URL of the selected chain")
	headCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(headCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rpcURL, err := scanner.Endpoints(cfg.EndpointOverrides()).ResolveEndpoint(cfg.Chain)
	if err != nil {
		return err
	}

	start, err := scanner.ParseBlockRef(cfg.FromBlock)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	end, err := scanner.ParseBlockRef(cfg.ToBlock)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}

	if cfg.Contract == "" {
		return fmt.Errorf("contract address is required")
	}
	contract, err := scanner.ParseAddress(cfg.Contract)
	if err != nil {
		return err
	}

	tokens, err := scanner.ParseAddresses(cfg.Tokens)
	if err != nil {
		return err
	}
	recipients, err := scanner.ParseAddresses(cfg.Recipients)
	if err != nil {
		return err
	}

	if cfg.RecipientField == "" {
		return fmt.Errorf("recipient-field is required (the ABI name of the recipient argument, e.g. recipient or to)")
	}
	contractABI, err := deposit.LoadABI(cfg.ABIFile)
	if err != nil {
		return err
	}
	decoder, err := deposit.NewDecoder(contractABI, deposit.FieldNames{
		Token:     cfg.TokenField,
		Recipient: cfg.RecipientField,
		Amount:    cfg.AmountField,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, rpcURL, cfg.RPCRate)
	if err != nil {
		return &scanner.RPCError{Op: "dial", Err: err}
	}
	defer chainClient.Close()

	csvSink := storage.NewCSVStorage(cfg.Out)
	var sink storage.Sink = csvSink
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sink = storage.MultiSink{csvSink, store}
	}

	s := scanner.New(scanner.Config{
		Chain:          cfg.Chain,
		Contract:       contract,
		Start:          start,
		End:            end,
		Filter:         deposit.Filter{Tokens: tokens, Recipients: recipients},
		ChunkThreshold: cfg.ChunkThreshold,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
	}, chainClient, decoder, sink, logger)

	logger.Info("scanner start",
		zap.String("chain", cfg.Chain),
		zap.String("rpc", rpcURL),
		zap.String("contract", contract.Hex()),
		zap.Stringer("from", start),
		zap.Stringer("to", end),
		zap.String("recipient_field", cfg.RecipientField),
		zap.Uint64("chunk_threshold", cfg.ChunkThreshold),
		zap.String("out", csvSink.Path()),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	return s.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
