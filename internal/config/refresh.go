package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RefreshConfig holds configuration for the refresh command.
type RefreshConfig struct {
	RPCURL       string
	PGDSN        string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// LoadRefresh merges config file, environment variables, and flags into
// RefreshConfig.
func LoadRefresh(cfgFile string, flags *pflag.FlagSet) (RefreshConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("max-retries", 5)
		v.SetDefault("retry-backoff", 500*time.Millisecond)
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return RefreshConfig{}, err
	}

	cfg := RefreshConfig{
		RPCURL:       v.GetString("rpc"),
		PGDSN:        v.GetString("pg-dsn"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
