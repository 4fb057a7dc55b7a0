package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ledger:
  chainId: 1337
  nodeAddresses:
    - http://localhost:8545
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, uint64(1337), cfg.Ledger.ChainID)
	require.Equal(t, uint64(1), cfg.Ledger.Confirmations)
	require.Equal(t, 3, cfg.Ledger.RequestRetries)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
}
