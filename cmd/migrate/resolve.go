package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-besu-vdr-go/contracts/did"
	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

var (
	resolveDID      string
	resolveIdentity string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a DID document",
	Long: `resolve prints the DID document for a did:ethr identifier
(folded from its ownership/attribute/delegate event history) or, given
--identity, for a did-indy identity's stored document blob.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveDID, "did", "", "did:ethr identifier to resolve")
	resolveCmd.Flags().StringVar(&resolveIdentity, "identity", "", "did-indy identity account address to resolve")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ledger, err := dialClient(ctx, cfg)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(resolveDID, "did:ethr"):
		ethrDID, err := identifiers.ParseDIDEthr(resolveDID)
		if err != nil {
			return fmt.Errorf("invalid did:ethr identifier: %w", err)
		}
		doc, err := did.ResolveDidEthr(ctx, ledger, ethrDID)
		if err != nil {
			return fmt.Errorf("unable to resolve %s: %w", resolveDID, err)
		}
		return printDocument(doc)
	case resolveIdentity != "":
		identity, err := types.ParseAddress(resolveIdentity)
		if err != nil {
			return fmt.Errorf("invalid identity address: %w", err)
		}
		tx, err := did.BuildResolveDidTransaction(ctx, ledger, identity)
		if err != nil {
			return fmt.Errorf("unable to build resolve transaction: %w", err)
		}
		data, err := ledger.SubmitTransaction(ctx, tx)
		if err != nil {
			return fmt.Errorf("unable to execute resolve call: %w", err)
		}
		doc, err := did.ParseResolveDidResult(ledger, data)
		if err != nil {
			return fmt.Errorf("unable to parse resolve result: %w", err)
		}
		return printDocument(&doc)
	default:
		return fmt.Errorf("either --did (did:ethr) or --identity (did-indy) is required")
	}
}

func printDocument(doc interface{}) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
