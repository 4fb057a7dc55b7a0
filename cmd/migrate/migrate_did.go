package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-besu-vdr-go/contracts/migration"
	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/migrationstore"
)

var (
	migrateDidLegacyDID    string
	migrateDidLegacyVerkey string
	migrateDidNewDID       string
)

var migrateDidCmd = &cobra.Command{
	Use:   "migrate-did",
	Short: "Bind a legacy Indy DID to a did:ethr successor",
	Long: `migrate-did proves control of the legacy verkey with an
Ed25519 signature over the new identity's address, then publishes the
(legacy DID, legacy verkey, new identity) binding to the
legacy-mapping registry.`,
	RunE: runMigrateDid,
}

func init() {
	rootCmd.AddCommand(migrateDidCmd)
	migrateDidCmd.Flags().StringVar(&migrateDidLegacyDID, "legacy-did", "", "legacy did:sov identifier, e.g. did:sov:2wJPyULfLLnYTEFYzByfUR")
	migrateDidCmd.Flags().StringVar(&migrateDidLegacyVerkey, "legacy-verkey", "", "base58-encoded legacy Ed25519 verkey")
	migrateDidCmd.Flags().StringVar(&migrateDidNewDID, "new-did", "", "did:ethr successor identifier")
	migrateDidCmd.MarkFlagRequired("legacy-did")
	migrateDidCmd.MarkFlagRequired("legacy-verkey")
	migrateDidCmd.MarkFlagRequired("new-did")
}

func runMigrateDid(cmd *cobra.Command, args []string) error {
	loadEnv()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ledger, err := dialClient(ctx, cfg)
	if err != nil {
		return err
	}
	signer, err := loadSigner()
	if err != nil {
		return err
	}
	legacyPrivateKey, err := loadLegacyPrivateKey()
	if err != nil {
		return err
	}

	newDID, err := identifiers.ParseDIDEthr(migrateDidNewDID)
	if err != nil {
		return fmt.Errorf("invalid --new-did: %w", err)
	}
	legacyVerkey, err := identifiers.NewLegacyVerkey(migrateDidLegacyVerkey)
	if err != nil {
		return fmt.Errorf("invalid --legacy-verkey: %w", err)
	}
	legacyDID := identifiers.NewLegacyDID(migrateDidLegacyDID)

	signature := migration.SignLegacyVerkeyPossession(legacyPrivateKey, newDID.Address)

	tx, err := migration.BuildCreateDidMappingTransaction(ctx, ledger, signer.Address(), newDID, legacyDID, legacyVerkey, signature)
	if err != nil {
		return fmt.Errorf("unable to build did-mapping transaction: %w", err)
	}
	if err := signAndSend(ctx, ledger, signer, tx); err != nil {
		return err
	}

	fmt.Printf("mapped %s -> %s\n", legacyDID.String(), newDID.String())

	store, err := openAuditStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to open audit store: %w", err)
	}
	if store == nil {
		return nil
	}
	defer store.Close()
	return store.Record(ctx, migrationstore.MigrationRecord{
		LegacyID:    legacyDID.String(),
		NewID:       newDID.String(),
		MappingType: migrationstore.MappingTypeDid,
		RecordedAt:  time.Now().UTC(),
	})
}

// loadLegacyPrivateKey reads the 64-byte Ed25519 legacy private key
// (seed || public key, the format circl/ed25519 and Indy wallets both
// use) from the MIGRATE_LEGACY_PRIVATE_KEY environment variable.
func loadLegacyPrivateKey() (ed25519.PrivateKey, error) {
	raw := os.Getenv("MIGRATE_LEGACY_PRIVATE_KEY")
	if raw == "" {
		return nil, fmt.Errorf("MIGRATE_LEGACY_PRIVATE_KEY is not set")
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_LEGACY_PRIVATE_KEY hex: %w", err)
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("MIGRATE_LEGACY_PRIVATE_KEY must be %d bytes, got %d", ed25519.PrivateKeySize, len(decoded))
	}
	return ed25519.PrivateKey(decoded), nil
}
