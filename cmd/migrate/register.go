package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-besu-vdr-go/contracts/did"
)

var (
	registerDID      string
	registerEndpoint string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a did-indy document on the ledger",
	Long: `register publishes a minimal did-indy document: a single
verification method keyed to the signer's own account, plus an
optional service endpoint.`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerDID, "did", "", "did-indy identifier to register, e.g. did:indy:testnet:2wJPyULfLLnYTEFYzByfUR")
	registerCmd.Flags().StringVar(&registerEndpoint, "endpoint", "", "optional service endpoint URL")
	registerCmd.MarkFlagRequired("did")
}

func runRegister(cmd *cobra.Command, args []string) error {
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

	doc := did.NewDocumentBuilder(registerDID).
		AddVerificationMethod(vmTypeController, registerDID, signer.Address().String())
	if registerEndpoint != "" {
		doc = doc.AddService("DIDCommMessaging", registerEndpoint)
	}

	tx, err := did.BuildCreateDidTransaction(ctx, ledger, signer.Address(), registerDID, doc.Build())
	if err != nil {
		return fmt.Errorf("unable to build registration transaction: %w", err)
	}
	if err := signAndSend(ctx, ledger, signer, tx); err != nil {
		return err
	}

	fmt.Printf("registered %s\n", registerDID)
	return nil
}

const vmTypeController = "EcdsaSecp256k1RecoveryMethod2020"
