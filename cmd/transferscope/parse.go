package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transferScope/internal/chain"
	"transferScope/internal/config"
	"transferScope/internal/model"
	"transferScope/internal/storage"
	"transferScope/internal/storage/postgres"
	"transferScope/internal/transfer"
)

func runParse(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadParse(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}

	sigs := transfer.DefaultSignatures()
	if cfg.TransferSignature != "" {
		sigs.Transfer = cfg.TransferSignature
	}
	if cfg.DepositSignature != "" {
		sigs.Deposit = cfg.DepositSignature
	}
	if cfg.WithdrawalSignature != "" {
		sigs.Withdrawal = cfg.WithdrawalSignature
	}

	classifier, err := transfer.NewClassifier(sigs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	var updater *transfer.Updater
	if cfg.RPCURL != "" && store != nil {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		retriever := transfer.NewChainRetriever(chainClient, cfg.MaxRetries, cfg.RetryBackoff, logger)
		updater = transfer.NewUpdater(store, retriever, logger)
	}

	parser := transfer.NewParser(classifier, updater, logger)

	logs, malformed, err := readLogs(cfg.In)
	if err != nil {
		return err
	}

	logger.Info("parse start",
		zap.String("in", cfg.In),
		zap.String("out_tokens", cfg.OutTokens),
		zap.String("out_transfers", cfg.OutTransfers),
		zap.String("errors", cfg.Errors),
		zap.Int("logs", len(logs)),
		zap.Int("malformed_lines", len(malformed)),
		zap.Bool("metadata_refresh", updater != nil),
	)

	result, err := parser.Parse(ctx, logs)
	if err != nil {
		return fmt.Errorf("parse batch: %w", err)
	}

	var sink storage.Sink = storage.NewJsonlSink(cfg.OutTokens, cfg.OutTransfers, cfg.Errors)
	if err := sink.PutTokenBatch(result.Tokens); err != nil {
		return err
	}
	if err := sink.PutTransferBatch(result.Transfers); err != nil {
		return err
	}
	if err := sink.PutErrorBatch(append(malformed, result.Errors...)); err != nil {
		return err
	}

	if store != nil {
		if err := store.UpsertTokens(ctx, result.Tokens); err != nil {
			return fmt.Errorf("store tokens: %w", err)
		}
		if err := store.UpsertTransfers(ctx, result.Transfers); err != nil {
			return fmt.Errorf("store transfers: %w", err)
		}
	}

	logger.Info("parse complete",
		zap.Int("tokens", len(result.Tokens)),
		zap.Int("transfers", len(result.Transfers)),
		zap.Int("failed", len(result.Errors)),
	)

	return nil
}

func readLogs(path string) ([]*model.Log, []model.ClassifyError, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	logs := make([]*model.Log, 0)
	malformed := make([]model.ClassifyError, 0)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record model.Log
		if err := json.Unmarshal(line, &record); err != nil {
			malformed = append(malformed, model.ClassifyError{Error: err.Error()})
			continue
		}
		logs = append(logs, &record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan input: %w", err)
	}

	return logs, malformed, nil
}
