package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ParseConfig holds configuration for the parse command.
type ParseConfig struct {
	In                  string
	OutTokens           string
	OutTransfers        string
	Errors              string
	RPCURL              string
	PGDSN               string
	TransferSignature   string
	DepositSignature    string
	WithdrawalSignature string
	MaxRetries          int
	RetryBackoff        time.Duration
	LogLevel            string
}

// LoadParse merges config file, environment variables, and flags into
// ParseConfig.
func LoadParse(cfgFile string, flags *pflag.FlagSet) (ParseConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("out-tokens", "./data/tokens.jsonl")
		v.SetDefault("out-transfers", "./data/token_transfers.jsonl")
		v.SetDefault("errors", "./data/classify_errors.jsonl")
		v.SetDefault("max-retries", 5)
		v.SetDefault("retry-backoff", 500*time.Millisecond)
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return ParseConfig{}, err
	}

	cfg := ParseConfig{
		In:                  v.GetString("in"),
		OutTokens:           v.GetString("out-tokens"),
		OutTransfers:        v.GetString("out-transfers"),
		Errors:              v.GetString("errors"),
		RPCURL:              v.GetString("rpc"),
		PGDSN:               v.GetString("pg-dsn"),
		TransferSignature:   v.GetString("transfer-signature"),
		DepositSignature:    v.GetString("deposit-signature"),
		WithdrawalSignature: v.GetString("withdrawal-signature"),
		MaxRetries:          v.GetInt("max-retries"),
		RetryBackoff:        v.GetDuration("retry-backoff"),
		LogLevel:            v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TRANSFERSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
