// Package creddef implements the CredentialDefinitionRegistry: storing
// and resolving anoncreds credential definition objects as canonical
// JSON bytes (§4.6), following the same create/resolve shape as
// contracts/schema.
package creddef

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	contractName         = "CredentialDefinitionRegistry"
	methodCreateCredDef  = "createCredentialDefinition"
	methodResolveCredDef = "resolveCredentialDefinition"

	// SignatureTypeCL is the only supported credential definition
	// signature type, matching the original's CredentialDefinitionTypes::CL.
	SignatureTypeCL = "CL"
)

var log = logger.New("contracts.creddef")

// CredentialDefinition is the anoncreds credential-definition object
// (§3): issuer, schema id, signature type (always "CL"), tag and the
// opaque signing-parameters value.
type CredentialDefinition struct {
	IssuerID    string          `json:"issuerId"`
	SchemaID    string          `json:"schemaId"`
	CredDefType string          `json:"credDefType"`
	Tag         string          `json:"tag"`
	Value       json.RawMessage `json:"value"`
}

// ID derives the credential definition's deterministic identifier.
func (c CredentialDefinition) ID() identifiers.CredentialDefinitionID {
	return identifiers.BuildCredentialDefinitionID(c.IssuerID, c.SchemaID, c.Tag)
}

// MatchesID reports whether the credential definition's derived id
// equals expectedID.
func (c CredentialDefinition) MatchesID(expectedID string) error {
	actual := c.ID().String()
	if actual != expectedID {
		return vdrerrors.Newf(vdrerrors.CommonInvalidCredentialDefinition, "id built from cred_def %q does not match provided id %q", actual, expectedID)
	}
	return nil
}

// Validate enforces the presence of required fields and the supported
// signature type.
func (c CredentialDefinition) Validate() error {
	if c.CredDefType != SignatureTypeCL {
		return vdrerrors.Newf(vdrerrors.CommonInvalidCredentialDefinition, "unsupported type: %s", c.CredDefType)
	}
	if c.Tag == "" {
		return vdrerrors.New(vdrerrors.CommonInvalidCredentialDefinition, "tag is not provided")
	}
	if len(c.Value) == 0 || string(c.Value) == "null" {
		return vdrerrors.New(vdrerrors.CommonInvalidCredentialDefinition, "value is not provided")
	}
	return nil
}

// BuildCreateCredentialDefinitionTransaction builds a Write
// transaction invoking
// CredentialDefinitionRegistry.createCredentialDefinition(identity, credDefBytes).
func BuildCreateCredentialDefinitionTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, c CredentialDefinition) (*transaction.Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidCredentialDefinition, "unable to serialize credential definition", err)
	}
	log.Debug("createCredentialDefinition txn build has started", logger.String("id", c.ID().String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateCredDef).
		Params(from.Common(), payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createCredentialDefinition txn build has finished")
	return tx, nil
}

// BuildCreateCredentialDefinitionEndorsingData builds the
// author-signed preimage for a createCredentialDefinition call a
// distinct sender will later submit.
func BuildCreateCredentialDefinitionEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, c CredentialDefinition) (*transaction.TransactionEndorsingData, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidCredentialDefinition, "unable to serialize credential definition", err)
	}
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(contractName).
		Identity(identity).
		Method(methodCreateCredDef).
		EndorsingMethod(methodCreateCredDef + "Signed").
		Params(payload).
		Build(client)
}

// BuildCreateCredentialDefinitionSignedTransaction builds the Write
// transaction a sender submits on the author's behalf once endorsed.
func BuildCreateCredentialDefinitionSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, c CredentialDefinition, sig types.SignatureData) (*transaction.Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidCredentialDefinition, "unable to serialize credential definition", err)
	}
	return transaction.BuildSignedTransaction(ctx, client, contractName, methodCreateCredDef, sender, identity, sig, payload)
}

// BuildResolveCredentialDefinitionTransaction builds a Read
// transaction invoking
// CredentialDefinitionRegistry.resolveCredentialDefinition(id).
func BuildResolveCredentialDefinitionTransaction(ctx context.Context, client transaction.BuilderClient, id string) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodResolveCredDef).
		Params(id).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseResolveCredentialDefinitionResult decodes the
// resolveCredentialDefinition() reply and cross-checks the decoded
// object's own id against the id the caller resolved.
func ParseResolveCredentialDefinitionResult(client transaction.ContractResolver, id string, data []byte) (CredentialDefinition, error) {
	result, err := transaction.NewTransactionParser(contractName, methodResolveCredDef).Parse(client, data, convertResult)
	if err != nil {
		return CredentialDefinition{}, err
	}
	credDef := result.(CredentialDefinition)
	if err := credDef.MatchesID(id); err != nil {
		return CredentialDefinition{}, err
	}
	return credDef, nil
}

func convertResult(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveCredentialDefinition: empty output")
	}
	raw, ok := values[0].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveCredentialDefinition: unexpected bytes type")
	}
	if len(raw) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveCredentialDefinition: credential definition not found")
	}
	var c CredentialDefinition
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to parse credential definition from response", err)
	}
	return c, nil
}
