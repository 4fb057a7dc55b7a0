// Command migrate is a demo CLI standing in for the original
// trustee/issuer/holder/verifier actors: it registers did-indy documents
// and resolves did-indy and did:ethr identities on a Besu ledger, and walks legacy Indy
// identifiers through the legacy-mapping registry, optionally auditing
// every migrated binding to Postgres.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
)

var log = logger.New("cmd.migrate")

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate legacy Indy identifiers onto a did:ethr ledger",
	Long: `migrate is a demo application for the Verifiable Data Registry client.
It registers did-indy documents, resolves did-indy and did:ethr
identities, and binds legacy Indy
DIDs and CL object identifiers to their did:ethr successors through
the legacy-mapping registry, recording every binding it publishes in
an optional audit store.`,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file of secrets (private keys, DSNs)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
