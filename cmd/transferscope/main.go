package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "transferscope",
		Short:        "Token transfer log classifier",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Classify raw logs into tokens and token transfers",
		RunE:  runParse,
	}

	parseCmd.Flags().String("in", "", "input raw logs JSONL")
	parseCmd.Flags().String("out-tokens", "./data/tokens.jsonl", "output tokens JSONL")
	parseCmd.Flags().String("out-transfers", "./data/token_transfers.jsonl", "output transfers JSONL")
	parseCmd.Flags().String("errors", "./data/classify_errors.jsonl", "classification errors JSONL")
	parseCmd.Flags().String("rpc", "", "RPC URL for token metadata refresh (optional)")
	parseCmd.Flags().String("pg-dsn", "", "Postgres DSN for token persistence (optional)")
	parseCmd.Flags().String("transfer-signature", "", "override transfer event signature")
	parseCmd.Flags().String("deposit-signature", "", "override deposit event signature")
	parseCmd.Flags().String("withdrawal-signature", "", "override withdrawal event signature")
	parseCmd.Flags().Int("max-retries", 5, "maximum metadata fetch retry attempts")
	parseCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial metadata fetch retry backoff")
	parseCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(parseCmd)

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh metadata for every stored token",
		RunE:  runRefresh,
	}

	refreshCmd.Flags().String("rpc", "", "RPC URL")
	refreshCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	refreshCmd.Flags().Int("max-retries", 5, "maximum metadata fetch retry attempts")
	refreshCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial metadata fetch retry backoff")
	refreshCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(refreshCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
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
