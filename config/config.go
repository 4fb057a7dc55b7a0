// Package config loads the YAML-driven configuration shared by the
// demo applications: which ledger nodes and contracts to talk to, the
// quorum/retry knobs, and the legacy ledger connection used by the
// migration demo. File/parse failures are returned as plain wrapped
// errors, not vdrerrors.Error, since they're a caller-facing
// configuration-loading concern rather than a VDR protocol one.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	"github.com/hyperledger/indy-besu-vdr-go/client"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

// Config is the top-level configuration document.
type Config struct {
	Environment string           `yaml:"environment"`
	Ledger      LedgerConfig     `yaml:"ledger"`
	Migration   *MigrationConfig `yaml:"migration,omitempty"`
	Logging     LoggingConfig    `yaml:"logging"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

// LedgerConfig describes the Besu/EVM network the client connects to:
// the chain id, the primary node followed by its quorum replicas, the
// registered contracts, and the submit/retry knobs.
type LedgerConfig struct {
	ChainID        uint64               `yaml:"chainId"`
	NodeAddresses  []string             `yaml:"nodeAddresses"`
	Contracts      []abi.ContractConfig `yaml:"contracts"`
	Confirmations  uint64               `yaml:"confirmations"`
	RequestRetries int                  `yaml:"requestRetries"`
	RequestTimeout time.Duration        `yaml:"requestTimeout"`
	RetryInterval  time.Duration        `yaml:"retryInterval"`
}

// ChainIDValue adapts the configured numeric chain id into types.ChainID.
func (l LedgerConfig) ChainIDValue() types.ChainID {
	return types.ChainID(l.ChainID)
}

// ClientConfig projects the submit/retry knobs into client.Config.
func (l LedgerConfig) ClientConfig() client.Config {
	return client.Config{
		Confirmations:  l.Confirmations,
		RequestRetries: l.RequestRetries,
		RequestTimeout: l.RequestTimeout,
		RetryInterval:  l.RetryInterval,
	}
}

// MigrationConfig carries the legacy (pre-Besu) ledger connection
// details and the audit-store DSN the migration demo needs alongside
// the new ledger's LedgerConfig.
type MigrationConfig struct {
	LegacyGenesisPath string `yaml:"legacyGenesisPath"`
	LegacyPoolName    string `yaml:"legacyPoolName"`
	AuditStoreDSN     string `yaml:"auditStoreDsn"`
}

// LoggingConfig configures internal/logger's output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures internal/metrics' HTTP exposition.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Path    string `yaml:"path"`
}

// Load reads and parses a YAML configuration file, applying defaults
// to any field the file left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unable to parse %q: %w", path, err)
	}
	setDefaults(&cfg)
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Ledger.Confirmations == 0 {
		cfg.Ledger.Confirmations = 1
	}
	if cfg.Ledger.RequestRetries == 0 {
		cfg.Ledger.RequestRetries = 3
	}
	if cfg.Ledger.RequestTimeout == 0 {
		cfg.Ledger.RequestTimeout = 5 * time.Second
	}
	if cfg.Ledger.RetryInterval == 0 {
		cfg.Ledger.RetryInterval = 200 * time.Millisecond
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
