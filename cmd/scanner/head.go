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

	"depositScanner/internal/chain"
	"depositScanner/internal/config"
	"depositScanner/internal/scanner"
)

func runHead(cmd *cobra.Command, _ []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, rpcURL, cfg.RPCRate)
	if err != nil {
		return &scanner.RPCError{Op: "dial", Err: err}
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return &scanner.RPCError{Op: "eth_chainId", Err: err}
	}
	header, err := chainClient.HeaderInfo(ctx, nil)
	if err != nil {
		return &scanner.RPCError{Op: "eth_getBlockByNumber", Err: err}
	}

	logger.Debug("head fetched",
		zap.String("chain", cfg.Chain),
		zap.String("rpc", rpcURL),
		zap.Int("extra_data_len", len(header.ExtraData)),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "chain:     %s (id %s)\n", cfg.Chain, chainID)
	fmt.Fprintf(out, "number:    %d\n", header.Number)
	fmt.Fprintf(out, "hash:      %s\n", header.Hash.Hex())
	fmt.Fprintf(out, "parent:    %s\n", header.ParentHash.Hex())
	fmt.Fprintf(out, "timestamp: %s\n", time.Unix(int64(header.Time), 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "extra:     %d bytes\n", len(header.ExtraData))
	return nil
}
