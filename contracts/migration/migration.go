// Package migration implements the LegacyIdentifiersRegistry: mapping
// pre-migration sov/indy DIDs and CL object identifiers onto their
// did:ethr-method successors (§4.6, migration demo).
package migration

import (
	"context"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	contractName = "LegacyIdentifiersRegistry"

	methodCreateDidMapping = "createDidMapping"
	methodCreateClMapping  = "createClMapping"
	methodDidMapping       = "didMapping"
	methodClMapping        = "clMapping"
)

var log = logger.New("contracts.migration")

// Identifier is an opaque legacy or new Schema/CredentialDefinition
// identifier string, mirroring the original's thin Identifier
// wrapper.
type Identifier string

// SignLegacyVerkeyPossession signs the new identity's address with the
// legacy Ed25519 private key backing the verkey being mapped, proving
// the caller controls the legacy key before the registry accepts the
// new binding.
func SignLegacyVerkeyPossession(legacyPrivateKey ed25519.PrivateKey, identity types.Address) []byte {
	return ed25519.Sign(legacyPrivateKey, identity.Bytes())
}

// VerifyLegacyVerkeyPossession reports whether signature proves
// possession of the legacy public key over the new identity's
// address, the client-side counterpart of the on-chain check.
func VerifyLegacyVerkeyPossession(legacyPublicKey ed25519.PublicKey, identity types.Address, signature []byte) bool {
	return ed25519.Verify(legacyPublicKey, identity.Bytes(), signature)
}

// BuildCreateDidMappingTransaction builds a Write transaction invoking
// LegacyIdentifiersRegistry.createDidMapping(identity, legacyDid,
// legacyVerkey, ed25519Signature): anchoring a pre-migration DID's
// address under its new did:ethr identity, proven by an Ed25519
// possession signature over the new identity address.
func BuildCreateDidMappingTransaction(ctx context.Context, client transaction.BuilderClient, sender types.Address, did identifiers.DIDEthr, legacyDID identifiers.LegacyDID, legacyVerkey identifiers.LegacyVerkey, ed25519Signature []byte) (*transaction.Transaction, error) {
	log.Debug("createDidMapping txn build has started", logger.String("did", did.String()), logger.String("legacyDid", legacyDID.String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateDidMapping).
		Params(did.Address.Common(), legacyDID.String(), legacyVerkey.Bytes(), ed25519Signature).
		From(sender).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createDidMapping txn build has finished")
	return tx, nil
}

// BuildCreateDidMappingEndorsingData builds the author-signed preimage
// for a createDidMapping call a distinct sender will later submit.
func BuildCreateDidMappingEndorsingData(client transaction.EndorsingContractResolver, did identifiers.DIDEthr, legacyDID identifiers.LegacyDID, legacyVerkey identifiers.LegacyVerkey, ed25519Signature []byte) (*transaction.TransactionEndorsingData, error) {
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(contractName).
		Identity(did.Address).
		Method(methodCreateDidMapping).
		EndorsingMethod(methodCreateDidMapping + "Signed").
		Params(legacyDID.String(), legacyVerkey.Bytes(), ed25519Signature).
		Build(client)
}

// BuildCreateDidMappingSignedTransaction builds the Write transaction
// a sender submits on the author's behalf once endorsed.
func BuildCreateDidMappingSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender types.Address, did identifiers.DIDEthr, legacyDID identifiers.LegacyDID, legacyVerkey identifiers.LegacyVerkey, ed25519Signature []byte, sig types.SignatureData) (*transaction.Transaction, error) {
	return transaction.BuildSignedTransaction(ctx, client, contractName, methodCreateDidMapping, sender, did.Address, sig, legacyDID.String(), legacyVerkey.Bytes(), ed25519Signature)
}

// BuildGetDidMappingTransaction builds a Read transaction invoking
// LegacyIdentifiersRegistry.didMapping(legacyDid).
func BuildGetDidMappingTransaction(ctx context.Context, client transaction.BuilderClient, legacyDID identifiers.LegacyDID) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodDidMapping).
		Params(legacyDID.String()).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseDidMappingResult decodes the didMapping() reply, the new
// identity's address, into its did:ethr identifier.
func ParseDidMappingResult(client transaction.ContractResolver, data []byte) (identifiers.DIDEthr, error) {
	result, err := transaction.NewTransactionParser(contractName, methodDidMapping).Parse(client, data, convertDidMappingResult)
	if err != nil {
		return identifiers.DIDEthr{}, err
	}
	return result.(identifiers.DIDEthr), nil
}

func convertDidMappingResult(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "didMapping: empty output")
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "didMapping: unexpected address type")
	}
	if addr == (common.Address{}) {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "didMapping: mapping not found")
	}
	return identifiers.NewDIDEthr("", types.AddressFromCommon(addr)), nil
}

// BuildCreateClMappingTransaction builds a Write transaction invoking
// LegacyIdentifiersRegistry.createClMapping(identity,
// legacyIssuerDid, legacyIdentifier, newIdentifier): mapping a legacy
// Schema/CredentialDefinition identifier onto its anoncreds successor.
func BuildCreateClMappingTransaction(ctx context.Context, client transaction.BuilderClient, identity types.Address, legacyIssuerDID identifiers.LegacyDID, legacyIdentifier, newIdentifier Identifier) (*transaction.Transaction, error) {
	log.Debug("createClMapping txn build has started", logger.String("legacyIdentifier", string(legacyIdentifier)), logger.String("newIdentifier", string(newIdentifier)))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateClMapping).
		Params(identity.Common(), legacyIssuerDID.String(), string(legacyIdentifier), string(newIdentifier)).
		From(identity).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createClMapping txn build has finished")
	return tx, nil
}

// BuildCreateClMappingEndorsingData builds the author-signed preimage
// for a createClMapping call a distinct sender will later submit.
func BuildCreateClMappingEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, legacyIssuerDID identifiers.LegacyDID, legacyIdentifier, newIdentifier Identifier) (*transaction.TransactionEndorsingData, error) {
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(contractName).
		Identity(identity).
		Method(methodCreateClMapping).
		EndorsingMethod(methodCreateClMapping + "Signed").
		Params(legacyIssuerDID.String(), string(legacyIdentifier), string(newIdentifier)).
		Build(client)
}

// BuildCreateClMappingSignedTransaction builds the Write transaction a
// sender submits on the author's behalf once endorsed.
func BuildCreateClMappingSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, legacyIssuerDID identifiers.LegacyDID, legacyIdentifier, newIdentifier Identifier, sig types.SignatureData) (*transaction.Transaction, error) {
	return transaction.BuildSignedTransaction(ctx, client, contractName, methodCreateClMapping, sender, identity, sig, legacyIssuerDID.String(), string(legacyIdentifier), string(newIdentifier))
}

// BuildGetClMappingTransaction builds a Read transaction invoking
// LegacyIdentifiersRegistry.clMapping(legacyIdentifier).
func BuildGetClMappingTransaction(ctx context.Context, client transaction.BuilderClient, legacyIdentifier Identifier) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodClMapping).
		Params(string(legacyIdentifier)).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseClMappingResult decodes the clMapping() reply into the new
// identifier string.
func ParseClMappingResult(client transaction.ContractResolver, data []byte) (Identifier, error) {
	result, err := transaction.NewTransactionParser(contractName, methodClMapping).Parse(client, data, convertClMappingResult)
	if err != nil {
		return "", err
	}
	return result.(Identifier), nil
}

func convertClMappingResult(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "clMapping: empty output")
	}
	s, ok := values[0].(string)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "clMapping: unexpected string type")
	}
	if s == "" {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "clMapping: mapping not found")
	}
	return Identifier(s), nil
}
