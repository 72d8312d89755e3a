package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transferScope/internal/chain"
	"transferScope/internal/config"
	"transferScope/internal/storage/postgres"
	"transferScope/internal/transfer"
)

func runRefresh(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRefresh(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	retriever := transfer.NewChainRetriever(chainClient, cfg.MaxRetries, cfg.RetryBackoff, logger)
	updater := transfer.NewUpdater(store, retriever, logger)

	addresses, err := store.ListTokenAddresses(ctx)
	if err != nil {
		return fmt.Errorf("list tokens: %w", err)
	}

	logger.Info("refresh start", zap.Int("tokens", len(addresses)))

	for _, address := range addresses {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := updater.Refresh(ctx, address); err != nil {
			return err
		}
	}

	logger.Info("refresh complete", zap.Int("tokens", len(addresses)))
	return nil
}
