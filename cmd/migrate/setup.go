package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hyperledger/indy-besu-vdr-go/client"
	"github.com/hyperledger/indy-besu-vdr-go/config"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/internal/migrationstore"
	"github.com/hyperledger/indy-besu-vdr-go/signing"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
)

// loadEnv reads envFile if present; a missing file is not an error,
// since the demo also runs from flags/process environment alone.
func loadEnv() {
	if err := godotenv.Load(envFile); err != nil {
		log.Debug("no env file loaded", logger.String("path", envFile), logger.String("reason", err.Error()))
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func dialClient(ctx context.Context, cfg *config.Config) (*client.LedgerClient, error) {
	return client.NewLedgerClient(ctx, cfg.Ledger.ChainIDValue(), cfg.Ledger.NodeAddresses, cfg.Ledger.Contracts, cfg.Ledger.ClientConfig())
}

// loadSigner builds a signing.Signer from the 0x-prefixed or bare hex
// private key in the MIGRATE_PRIVATE_KEY environment variable.
func loadSigner() (signing.Signer, error) {
	raw := os.Getenv("MIGRATE_PRIVATE_KEY")
	if raw == "" {
		return nil, fmt.Errorf("MIGRATE_PRIVATE_KEY is not set")
	}
	raw = strings.TrimPrefix(raw, "0x")
	keyBytes, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_PRIVATE_KEY hex: %w", err)
	}
	signer, err := signing.NewECDSASigner(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to build signer: %w", err)
	}
	return signer, nil
}

// openAuditStore opens the migration audit store, or returns nil, nil
// if cfg carries no DSN: auditing is optional.
func openAuditStore(ctx context.Context, cfg *config.Config) (*migrationstore.Store, error) {
	if cfg.Migration == nil || cfg.Migration.AuditStoreDSN == "" {
		return nil, nil
	}
	store, err := migrationstore.Open(ctx, cfg.Migration.AuditStoreDSN)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// signAndSend computes tx's signing preimage, signs it with signer,
// installs the signature, and submits it for confirmation.
func signAndSend(ctx context.Context, ledger *client.LedgerClient, signer signing.Signer, tx *transaction.Transaction) error {
	hash, err := tx.SigningBytes()
	if err != nil {
		return fmt.Errorf("unable to compute signing bytes: %w", err)
	}
	sig, err := signer.Sign(hash)
	if err != nil {
		return fmt.Errorf("unable to sign transaction: %w", err)
	}
	if err := tx.SetSignature(sig); err != nil {
		return fmt.Errorf("unable to install signature: %w", err)
	}
	hash2, err := ledger.SubmitTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("unable to submit transaction: %w", err)
	}
	fmt.Printf("submitted tx %x\n", hash2)
	return nil
}
