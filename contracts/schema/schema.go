// Package schema implements the SchemaRegistry: storing and resolving
// anoncreds schema objects as canonical JSON bytes (§4.6).
package schema

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	contractName        = "SchemaRegistry"
	methodCreateSchema  = "createSchema"
	methodResolveSchema = "resolveSchema"
)

var log = logger.New("contracts.schema")

// Schema is the anoncreds schema object (§3): issuer, name, version
// and the set of attribute names. It serializes to the exact canonical
// JSON bytes stored on-chain, with attribute names sorted so the
// encoding is deterministic regardless of construction order.
type Schema struct {
	IssuerID   string   `json:"issuerId"`
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	AttrNames  []string `json:"attrNames"`
}

// ID derives the schema's deterministic identifier (§3, §8).
func (s Schema) ID() identifiers.SchemaID {
	return identifiers.BuildSchemaID(s.IssuerID, s.Name, s.Version)
}

// MatchesID reports whether the schema's derived id equals expectedID.
func (s Schema) MatchesID(expectedID string) error {
	actual := s.ID().String()
	if actual != expectedID {
		return vdrerrors.Newf(vdrerrors.CommonInvalidSchema, "id built from schema %q does not match provided id %q", actual, expectedID)
	}
	return nil
}

// Validate enforces the presence of required fields.
func (s Schema) Validate() error {
	if s.Name == "" {
		return vdrerrors.New(vdrerrors.CommonInvalidSchema, "name is not provided")
	}
	if s.Version == "" {
		return vdrerrors.New(vdrerrors.CommonInvalidSchema, "version is not provided")
	}
	if len(s.AttrNames) == 0 {
		return vdrerrors.New(vdrerrors.CommonInvalidSchema, "attributes are not provided")
	}
	return nil
}

// canonicalJSON marshals the schema with its attribute names sorted,
// the wire form both creation and the matches_id invariant rely on.
func (s Schema) canonicalJSON() ([]byte, error) {
	sorted := append([]string(nil), s.AttrNames...)
	sort.Strings(sorted)
	canonical := Schema{IssuerID: s.IssuerID, Name: s.Name, Version: s.Version, AttrNames: sorted}
	data, err := json.Marshal(canonical)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidSchema, "unable to serialize schema", err)
	}
	return data, nil
}

// BuildCreateSchemaTransaction builds a Write transaction invoking
// SchemaRegistry.createSchema(identity, schemaBytes).
func BuildCreateSchemaTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, s Schema) (*transaction.Transaction, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	payload, err := s.canonicalJSON()
	if err != nil {
		return nil, err
	}
	log.Debug("createSchema txn build has started", logger.String("id", s.ID().String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateSchema).
		Params(from.Common(), payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createSchema txn build has finished")
	return tx, nil
}

// BuildCreateSchemaEndorsingData builds the author-signed preimage for
// a createSchema call a distinct sender will later submit.
func BuildCreateSchemaEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, s Schema) (*transaction.TransactionEndorsingData, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	payload, err := s.canonicalJSON()
	if err != nil {
		return nil, err
	}
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(contractName).
		Identity(identity).
		Method(methodCreateSchema).
		EndorsingMethod(methodCreateSchema + "Signed").
		Params(payload).
		Build(client)
}

// BuildCreateSchemaSignedTransaction builds the Write transaction a
// sender submits on the author's behalf once endorsed.
func BuildCreateSchemaSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, s Schema, sig types.SignatureData) (*transaction.Transaction, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	payload, err := s.canonicalJSON()
	if err != nil {
		return nil, err
	}
	return transaction.BuildSignedTransaction(ctx, client, contractName, methodCreateSchema, sender, identity, sig, payload)
}

// BuildResolveSchemaTransaction builds a Read transaction invoking
// SchemaRegistry.resolveSchema(id).
func BuildResolveSchemaTransaction(ctx context.Context, client transaction.BuilderClient, id string) (*transaction.Transaction, error) {
	log.Debug("resolveSchema txn build has started", logger.String("id", id))
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodResolveSchema).
		Params(id).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("resolveSchema txn build has finished")
	return tx, nil
}

// ParseResolveSchemaResult decodes the resolveSchema() reply, a
// (schemaBytes, createdEventHash) pair, cross-checking that the
// decoded schema's own id matches the id the caller resolved.
func ParseResolveSchemaResult(client transaction.ContractResolver, id string, data []byte) (Schema, [32]byte, error) {
	result, err := transaction.NewTransactionParser(contractName, methodResolveSchema).Parse(client, data, convertResolveResult)
	if err != nil {
		return Schema{}, [32]byte{}, err
	}
	resolved := result.(resolvedSchema)
	if err := resolved.schema.MatchesID(id); err != nil {
		return Schema{}, [32]byte{}, err
	}
	return resolved.schema, resolved.eventHash, nil
}

type resolvedSchema struct {
	schema    Schema
	eventHash [32]byte
}

func convertResolveResult(values []interface{}) (interface{}, error) {
	if len(values) != 2 {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "resolveSchema: expected 2 output values, got %d", len(values))
	}
	raw, ok := values[0].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveSchema: unexpected schema bytes type")
	}
	if len(raw) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveSchema: schema not found")
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to parse schema from response", err)
	}
	hash, ok := values[1].([32]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveSchema: unexpected event hash type")
	}
	return resolvedSchema{schema: s, eventHash: hash}, nil
}
