package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-besu-vdr-go/contracts/migration"
	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/migrationstore"
)

var (
	migrateResourceLegacyIssuerDID string
	migrateResourceLegacyID        string
	migrateResourceNewID           string
)

var migrateResourceCmd = &cobra.Command{
	Use:   "migrate-resource",
	Short: "Bind a legacy schema or credential definition identifier to its successor",
	Long: `migrate-resource publishes a (legacy identifier, new identifier)
binding for a migrated Schema or CredentialDefinition object to the
legacy-mapping registry, attributed to the legacy issuer's did:sov.`,
	RunE: runMigrateResource,
}

func init() {
	rootCmd.AddCommand(migrateResourceCmd)
	migrateResourceCmd.Flags().StringVar(&migrateResourceLegacyIssuerDID, "legacy-issuer-did", "", "legacy did:sov issuer identifier")
	migrateResourceCmd.Flags().StringVar(&migrateResourceLegacyID, "legacy-id", "", "legacy schema/creddef identifier")
	migrateResourceCmd.Flags().StringVar(&migrateResourceNewID, "new-id", "", "migrated schema/creddef identifier")
	migrateResourceCmd.MarkFlagRequired("legacy-issuer-did")
	migrateResourceCmd.MarkFlagRequired("legacy-id")
	migrateResourceCmd.MarkFlagRequired("new-id")
}

func runMigrateResource(cmd *cobra.Command, args []string) error {
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

	legacyIssuerDID := identifiers.NewLegacyDID(migrateResourceLegacyIssuerDID)
	legacyID := migration.Identifier(migrateResourceLegacyID)
	newID := migration.Identifier(migrateResourceNewID)

	tx, err := migration.BuildCreateClMappingTransaction(ctx, ledger, signer.Address(), legacyIssuerDID, legacyID, newID)
	if err != nil {
		return fmt.Errorf("unable to build resource-mapping transaction: %w", err)
	}
	if err := signAndSend(ctx, ledger, signer, tx); err != nil {
		return err
	}

	fmt.Printf("mapped %s -> %s\n", legacyID, newID)

	store, err := openAuditStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to open audit store: %w", err)
	}
	if store == nil {
		return nil
	}
	defer store.Close()
	return store.Record(ctx, migrationstore.MigrationRecord{
		LegacyID:    string(legacyID),
		NewID:       string(newID),
		MappingType: migrationstore.MappingTypeResource,
		RecordedAt:  time.Now().UTC(),
	})
}
