package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Chain          string
	RPCURL         string
	Endpoints      map[string]string
	FromBlock      string
	ToBlock        string
	Contract       string
	Out            string
	ABIFile        string
	TokenField     string
	RecipientField string
	AmountField    string
	Tokens         []string
	Recipients     []string
	ChunkThreshold uint64
	MaxRetries     int
	RetryBackoff   time.Duration
	RPCRate        float64
	PGDSN          string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("from", "latest")
	v.SetDefault("to", "latest")
	v.SetDefault("out", "deposit_logs.csv")
	v.SetDefault("token-field", "token")
	v.SetDefault("amount-field", "amount")
	v.SetDefault("chunk-threshold", uint64(30))
	v.SetDefault("max-retries", 0)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("rpc-rate", 0.0)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Chain:          strings.TrimSpace(v.GetString("chain")),
		RPCURL:         v.GetString("rpc"),
		Endpoints:      v.GetStringMapString("endpoints"),
		FromBlock:      v.GetString("from"),
		ToBlock:        v.GetString("to"),
		Contract:       v.GetString("contract"),
		Out:            v.GetString("out"),
		ABIFile:        v.GetString("abi"),
		TokenField:     v.GetString("token-field"),
		RecipientField: v.GetString("recipient-field"),
		AmountField:    v.GetString("amount-field"),
		Tokens:         getStringSlice(v, "token"),
		Recipients:     getStringSlice(v, "recipient"),
		ChunkThreshold: v.GetUint64("chunk-threshold"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		RPCRate:        v.GetFloat64("rpc-rate"),
		PGDSN:          v.GetString("pg-dsn"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

// EndpointOverrides returns configured endpoint URLs, with RPCURL applied to
// the selected chain.
func (c Config) EndpointOverrides() map[string]string {
	out := make(map[string]string, len(c.Endpoints)+1)
	for chain, url := range c.Endpoints {
		out[chain] = url
	}
	if c.RPCURL != "" && c.Chain != "" {
		out[c.Chain] = c.RPCURL
	}
	return out
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
