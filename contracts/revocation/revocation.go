// Package revocation implements the RevocationRegistry: storing
// revocation-registry definitions as canonical JSON bytes, appending
// accumulator entries, and folding the entry history into deltas and
// per-credential status lists (§4.6).
package revocation

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
	contractName            = "RevocationRegistry"
	methodCreateRevRegDef   = "createRevocationRegistryDefinition"
	methodResolveRevRegDef  = "resolveRevocationRegistryDefinition"
	methodCreateRevRegEntry = "createRevocationRegistryEntry"
	eventRevRegEntryCreated = "RevocationRegistryEntryCreated"

	// RegistryTypeCLAccum is the only supported revocation registry
	// type, matching the original's RegistryType::CL_ACCUM.
	RegistryTypeCLAccum = "CL_ACCUM"
)

var log = logger.New("contracts.revocation")

// AccumKey is the accumulator's public key material.
type AccumKey struct {
	Z string `json:"z"`
}

// PublicKeys wraps the registry's accumulator key, mirroring the
// original's nested PublicKeys.accum_key shape.
type PublicKeys struct {
	AccumKey AccumKey `json:"accumKey"`
}

// RevocationRegistryDefinitionValue is the registry's capacity and
// tails-file location metadata.
type RevocationRegistryDefinitionValue struct {
	MaxCredNum    uint32     `json:"maxCredNum"`
	TailsHash     string     `json:"tailsHash"`
	TailsLocation string     `json:"tailsLocation"`
	PublicKeys    PublicKeys `json:"publicKeys"`
}

// RevocationRegistryDefinition is the anoncreds revocation-registry
// definition object (§3).
type RevocationRegistryDefinition struct {
	IssuerID     string                            `json:"issuerId"`
	CredDefID    string                            `json:"credDefId"`
	RevocDefType string                            `json:"revocDefType"`
	Tag          string                            `json:"tag"`
	Value        RevocationRegistryDefinitionValue `json:"value"`
}

// ID derives the revocation registry definition's identifier.
func (d RevocationRegistryDefinition) ID() identifiers.RevocationRegistryDefinitionID {
	return identifiers.BuildRevocationRegistryDefinitionID(d.IssuerID, d.CredDefID, d.Tag)
}

// MatchesID reports whether the definition's derived id equals
// expectedID.
func (d RevocationRegistryDefinition) MatchesID(expectedID string) error {
	actual := d.ID().String()
	if actual != expectedID {
		return vdrerrors.Newf(vdrerrors.CommonInvalidRevocationRegistryStatusList, "id built from revocation registry definition %q does not match provided id %q", actual, expectedID)
	}
	return nil
}

// Validate enforces the supported registry type and required fields.
func (d RevocationRegistryDefinition) Validate() error {
	if d.RevocDefType != RegistryTypeCLAccum {
		return vdrerrors.Newf(vdrerrors.CommonInvalidRevocationRegistryStatusList, "unsupported type: %s", d.RevocDefType)
	}
	if d.Tag == "" {
		return vdrerrors.New(vdrerrors.CommonInvalidRevocationRegistryStatusList, "tag is not provided")
	}
	if d.Value.MaxCredNum == 0 {
		return vdrerrors.New(vdrerrors.CommonInvalidRevocationRegistryStatusList, "max_cred_num is not provided")
	}
	return nil
}

// RevocationRegistryEntryData is the mutable accumulator state carried
// by every entry.
type RevocationRegistryEntryData struct {
	CurrentAccumulator string   `json:"currentAccumulator"`
	PrevAccumulator    string   `json:"prevAccumulator"`
	Issued             []uint32 `json:"issued"`
	Revoked            []uint32 `json:"revoked"`
	Timestamp          uint64   `json:"timestamp"`
}

// RevocationRegistryEntry is one accumulator update submitted against
// a revocation registry definition.
type RevocationRegistryEntry struct {
	RevRegDefID string                      `json:"revRegDefId"`
	IssuerID    string                      `json:"issuerId"`
	Data        RevocationRegistryEntryData `json:"revRegEntry"`
}

// RevocationRegistryDelta is the (issued, revoked, accum) triple
// produced by folding entries over a time window.
type RevocationRegistryDelta struct {
	Revoked []uint32 `json:"revoked"`
	Issued  []uint32 `json:"issued"`
	Accum   string   `json:"accum"`
}

// Validate rejects a delta whose highest issued/revoked index exceeds
// the registry's declared capacity.
func (d RevocationRegistryDelta) Validate(limitIdx uint32) error {
	highest := uint32(0)
	seen := false
	for _, idx := range d.Issued {
		if !seen || idx > highest {
			highest, seen = idx, true
		}
	}
	for _, idx := range d.Revoked {
		if !seen || idx > highest {
			highest, seen = idx, true
		}
	}
	if seen && highest > limitIdx {
		return vdrerrors.Newf(vdrerrors.CommonInvalidRevocationRegistryStatusList, "highest delta index %d is higher than maximum allowed limit %d", highest, limitIdx)
	}
	return nil
}

// RevocationStatusList is the per-index revocation state at a
// wall-clock timestamp.
type RevocationStatusList struct {
	IssuerID           string   `json:"issuerId"`
	RevRegDefID        string   `json:"revRegDefId"`
	RevocationList     []uint32 `json:"revocationList"`
	CurrentAccumulator string   `json:"currentAccumulator"`
	Timestamp          uint64   `json:"timestamp"`
}

// RevocationState is a single credential's position, active or
// revoked.
type RevocationState uint8

const (
	RevocationStateActive  RevocationState = 0
	RevocationStateRevoked RevocationState = 1
)

// RevocationStateFromUint8 validates a raw status-list byte.
func RevocationStateFromUint8(v uint8) (RevocationState, error) {
	switch v {
	case 0, 1:
		return RevocationState(v), nil
	default:
		return 0, vdrerrors.New(vdrerrors.CommonInvalidRevocationRegistryStatusList, "invalid revocation state: values should be 0 or 1")
	}
}

// BuildCreateRevocationRegistryDefinitionTransaction builds a Write
// transaction invoking
// RevocationRegistry.createRevocationRegistryDefinition(identity, defBytes).
func BuildCreateRevocationRegistryDefinitionTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, def RevocationRegistryDefinition) (*transaction.Transaction, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(def)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidRevocationRegistryStatusList, "unable to serialize revocation registry definition", err)
	}
	log.Debug("createRevocationRegistryDefinition txn build has started", logger.String("id", def.ID().String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateRevRegDef).
		Params(from.Common(), payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createRevocationRegistryDefinition txn build has finished")
	return tx, nil
}

// BuildResolveRevocationRegistryDefinitionTransaction builds a Read
// transaction invoking
// RevocationRegistry.resolveRevocationRegistryDefinition(id).
func BuildResolveRevocationRegistryDefinitionTransaction(ctx context.Context, client transaction.BuilderClient, id string) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodResolveRevRegDef).
		Params(id).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseResolveRevocationRegistryDefinitionResult decodes the
// resolveRevocationRegistryDefinition() reply and cross-checks the
// decoded definition's own id against the id the caller resolved.
func ParseResolveRevocationRegistryDefinitionResult(client transaction.ContractResolver, id string, data []byte) (RevocationRegistryDefinition, error) {
	result, err := transaction.NewTransactionParser(contractName, methodResolveRevRegDef).Parse(client, data, convertDefinitionResult)
	if err != nil {
		return RevocationRegistryDefinition{}, err
	}
	def := result.(RevocationRegistryDefinition)
	if err := def.MatchesID(id); err != nil {
		return RevocationRegistryDefinition{}, err
	}
	return def, nil
}

func convertDefinitionResult(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveRevocationRegistryDefinition: empty output")
	}
	raw, ok := values[0].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveRevocationRegistryDefinition: unexpected bytes type")
	}
	if len(raw) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveRevocationRegistryDefinition: definition not found")
	}
	var def RevocationRegistryDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to parse revocation registry definition from response", err)
	}
	return def, nil
}

// BuildCreateRevocationRegistryEntryTransaction builds a Write
// transaction invoking
// RevocationRegistry.createRevocationRegistryEntry(identity, revRegDefId, entryBytes).
func BuildCreateRevocationRegistryEntryTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, entry RevocationRegistryEntry) (*transaction.Transaction, error) {
	payload, err := json.Marshal(entry.Data)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidRevocationRegistryEntry, "unable to serialize revocation registry entry", err)
	}
	log.Debug("createRevocationRegistryEntry txn build has started", logger.String("revRegDefId", entry.RevRegDefID))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodCreateRevRegEntry).
		Params(from.Common(), entry.RevRegDefID, payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("createRevocationRegistryEntry txn build has finished")
	return tx, nil
}

// FetchRevocationDelta folds every RevocationRegistryEntryCreatedEvent
// emitted up to toTimestamp into a single delta: issued and revoked
// indices accumulate, and the accumulator value is taken from the
// last entry observed in block order.
func FetchRevocationDelta(ctx context.Context, client transaction.EventQuerier, id string, toTimestamp uint64) (*RevocationRegistryDelta, error) {
	query, err := transaction.NewEventQueryBuilder().
		Contract(contractName).
		EventSignature(eventRevRegEntryCreated).
		Build(client)
	if err != nil {
		return nil, err
	}

	logs, err := client.QueryEvents(ctx, query)
	if err != nil {
		return nil, err
	}

	parser := transaction.NewEventParser(contractName, eventRevRegEntryCreated)
	var delta *RevocationRegistryDelta
	issued := map[uint32]struct{}{}
	revoked := map[uint32]struct{}{}
	for _, entryLog := range logs {
		value, err := parser.Parse(client, entryLog, convertEntryCreatedEvent)
		if err != nil {
			return nil, err
		}
		event := value.(entryCreatedEvent)
		if event.revRegDefID != id {
			continue
		}
		if event.timestamp > toTimestamp {
			continue
		}
		for _, idx := range event.entry.Issued {
			issued[idx] = struct{}{}
		}
		for _, idx := range event.entry.Revoked {
			revoked[idx] = struct{}{}
		}
		delta = &RevocationRegistryDelta{Accum: event.entry.CurrentAccumulator}
	}
	if delta == nil {
		return nil, nil
	}
	delta.Issued = sortedKeys(issued)
	delta.Revoked = sortedKeys(revoked)
	return delta, nil
}

// ResolveRevocationRegistryStatusList folds the revocation delta up to
// toTimestamp into a per-index status-list snapshot: every issued
// index is Active unless it also appears in revoked.
func ResolveRevocationRegistryStatusList(ctx context.Context, client transaction.EventQuerier, issuerID, id string, toTimestamp uint64) (*RevocationStatusList, error) {
	delta, err := FetchRevocationDelta(ctx, client, id, toTimestamp)
	if err != nil {
		return nil, err
	}
	if delta == nil {
		return nil, vdrerrors.Newf(vdrerrors.CommonInvalidRevocationRegistryStatusList, "no revocation registry entries found for %q up to timestamp %d", id, toTimestamp)
	}

	revokedSet := make(map[uint32]struct{}, len(delta.Revoked))
	for _, idx := range delta.Revoked {
		revokedSet[idx] = struct{}{}
	}
	list := make([]uint32, 0, len(delta.Issued))
	for _, idx := range delta.Issued {
		if _, isRevoked := revokedSet[idx]; !isRevoked {
			list = append(list, idx)
		}
	}

	return &RevocationStatusList{
		IssuerID:           issuerID,
		RevRegDefID:        id,
		RevocationList:     list,
		CurrentAccumulator: delta.Accum,
		Timestamp:          toTimestamp,
	}, nil
}

// BuildLatestRevocationRegistryEntryFromStatusList derives a new entry
// from a caller-supplied per-credential state vector and the
// accumulator value produced alongside it.
func BuildLatestRevocationRegistryEntryFromStatusList(revRegDefID string, states []RevocationState, accumulator string, timestamp uint64) RevocationRegistryEntry {
	var issued, revokedIdx []uint32
	for i, state := range states {
		if state == RevocationStateRevoked {
			revokedIdx = append(revokedIdx, uint32(i))
		} else {
			issued = append(issued, uint32(i))
		}
	}
	return RevocationRegistryEntry{
		RevRegDefID: revRegDefID,
		Data: RevocationRegistryEntryData{
			CurrentAccumulator: accumulator,
			Issued:             issued,
			Revoked:            revokedIdx,
			Timestamp:          timestamp,
		},
	}
}

type entryCreatedEvent struct {
	revRegDefID string
	timestamp   uint64
	entry       RevocationRegistryEntryData
}

func convertEntryCreatedEvent(fields map[string]interface{}) (interface{}, error) {
	idBytes, ok := fields["revocationRegistryDefinitionId"].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "RevocationRegistryEntryCreatedEvent: missing revocationRegistryDefinitionId")
	}
	timestamp, err := uintField(fields["timestamp"])
	if err != nil {
		return nil, err
	}
	tuple := fields["revRegEntry"]

	currentAccumulator, err := tupleStringField(tuple, "CurrentAccumulator")
	if err != nil {
		return nil, err
	}
	prevAccumulator, err := tupleStringField(tuple, "PrevAccumulator")
	if err != nil {
		return nil, err
	}
	issued, err := tupleUint32SliceField(tuple, "Issued")
	if err != nil {
		return nil, err
	}
	revokedIdx, err := tupleUint32SliceField(tuple, "Revoked")
	if err != nil {
		return nil, err
	}
	entryTimestamp, err := tupleUint64Field(tuple, "Timestamp")
	if err != nil {
		return nil, err
	}

	return entryCreatedEvent{
		revRegDefID: string(idBytes),
		timestamp:   timestamp,
		entry: RevocationRegistryEntryData{
			CurrentAccumulator: currentAccumulator,
			PrevAccumulator:    prevAccumulator,
			Issued:             issued,
			Revoked:            revokedIdx,
			Timestamp:          entryTimestamp,
		},
	}, nil
}

func sortedKeys(set map[uint32]struct{}) []uint32 {
	keys := make([]uint32, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
