package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func scanFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	flags.String("chain", "", "")
	flags.String("from", "latest", "")
	flags.String("to", "latest", "")
	flags.String("contract", "", "")
	flags.String("recipient-field", "", "")
	flags.StringSlice("token", nil, "")
	flags.Uint64("chunk-threshold", 30, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", scanFlags())
	require.NoError(t, err)
	require.Equal(t, "latest", cfg.FromBlock)
	require.Equal(t, "latest", cfg.ToBlock)
	require.Equal(t, "deposit_logs.csv", cfg.Out)
	require.Equal(t, "token", cfg.TokenField)
	require.Equal(t, "amount", cfg.AmountField)
	require.Empty(t, cfg.RecipientField)
	require.Equal(t, uint64(30), cfg.ChunkThreshold)
	require.Equal(t, 0, cfg.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFlags(t *testing.T) {
	chdir(t, t.TempDir())

	flags := scanFlags()
	require.NoError(t, flags.Parse([]string{
		"--chain", "bsc",
		"--from", "100",
		"--to", "latest",
		"--recipient-field", "to",
		"--token", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa,0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	require.Equal(t, "bsc", cfg.Chain)
	require.Equal(t, "100", cfg.FromBlock)
	require.Equal(t, "to", cfg.RecipientField)
	require.Equal(t, []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}, cfg.Tokens)
}

func TestLoadConfigFileEndpoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chain: avax
contract: "0xcccccccccccccccccccccccccccccccccccccccc"
recipient-field: recipient
endpoints:
  avax: http://localhost:9650/ext/bc/C/rpc
`), 0o644))

	cfg, err := Load(path, scanFlags())
	require.NoError(t, err)
	require.Equal(t, "avax", cfg.Chain)
	require.Equal(t, "recipient", cfg.RecipientField)
	require.Equal(t, "http://localhost:9650/ext/bc/C/rpc", cfg.EndpointOverrides()["avax"])
}

func TestLoadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SCANNER_RECIPIENT_FIELD", "to")
	t.Setenv("SCANNER_MAX_RETRIES", "3")

	cfg, err := Load("", scanFlags())
	require.NoError(t, err)
	require.Equal(t, "to", cfg.RecipientField)
	require.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestEndpointOverridesRPCFlag(t *testing.T) {
	cfg := Config{
		Chain:     "bsc",
		RPCURL:    "http://127.0.0.1:8545",
		Endpoints: map[string]string{"avax": "http://avax.local"},
	}

	overrides := cfg.EndpointOverrides()
	require.Equal(t, "http://127.0.0.1:8545", overrides["bsc"])
	require.Equal(t, "http://avax.local", overrides["avax"])
	require.NotContains(t, cfg.Endpoints, "bsc")
}
