package did

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	ethrContractName = "EthereumExtDidRegistry"

	eventDIDOwnerChanged     = "DIDOwnerChanged"
	eventDIDAttributeChanged = "DIDAttributeChanged"
	eventDIDDelegateChanged  = "DIDDelegateChanged"

	attrPubKeyPrefix = "did/pub/"
	attrSvcPrefix    = "did/svc/"

	vmTypeSecp256k1Recovery = "EcdsaSecp256k1RecoveryMethod2020"
	vmTypeSigAuthDelegate   = "EcdsaSecp256k1SignatureAuthentication2019"
	vmTypeVeriKeyDelegate   = "EcdsaSecp256k1VerificationKey2019"

	delegateTypeSigAuth = "sigAuth"
	delegateTypeVeriKey = "veriKey"
)

// ResolveDidEthr projects a did:ethr document by folding every
// DIDOwnerChanged/DIDAttributeChanged/DIDDelegateChanged event emitted
// for the identity's address, in (block number, log index) order
// (§4.6, §9). An owner change to the zero address is the absorbing
// "deactivated" state: the reducer stops applying further attribute
// and delegate mutations once it is reached, since the registry itself
// rejects writes from a deactivated identity from that point on.
func ResolveDidEthr(ctx context.Context, client transaction.EventQuerier, did identifiers.DIDEthr) (*DidDocument, error) {
	events, err := fetchEthrEvents(ctx, client, did.Address)
	if err != nil {
		return nil, err
	}
	doc := foldEthrEvents(did, events)
	return &doc, nil
}

// foldEthrEvents applies the reducer described by ResolveDidEthr to an
// already-fetched event set, split out so the fold itself can be
// exercised without a live event source.
func foldEthrEvents(did identifiers.DIDEthr, events []orderedEvent) DidDocument {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].blockNumber != events[j].blockNumber {
			return events[i].blockNumber < events[j].blockNumber
		}
		return events[i].logIndex < events[j].logIndex
	})

	didStr := did.String()
	builder := NewDocumentBuilder(didStr)
	controller := didStr
	owner := did.Address
	deactivated := false
	attrs := make(map[string]ethrAttribute)
	delegates := make(map[string]ethrDelegate)

	for _, event := range events {
		if deactivated {
			break
		}
		switch e := event.payload.(type) {
		case didOwnerChangedEvent:
			owner = e.owner
			controller = controllerDID(did, owner)
			if owner.IsZero() {
				deactivated = true
			}
		case didAttributeChangedEvent:
			if e.validTo == 0 {
				delete(attrs, e.name)
			} else {
				attrs[e.name] = ethrAttribute{name: e.name, value: e.value}
			}
		case didDelegateChangedEvent:
			key := e.delegateType + "|" + e.delegate.String()
			if e.validTo == 0 {
				delete(delegates, key)
			} else {
				delegates[key] = ethrDelegate{delegateType: e.delegateType, delegate: e.delegate}
			}
		}
	}

	if deactivated {
		return builder.Deactivate().Build()
	}

	builder.AddVerificationMethod(vmTypeSecp256k1Recovery, controller, owner.String())
	if controller != didStr {
		builder.doc.Controller = StringOrVector{controller}
	}

	for _, name := range sortedAttrNames(attrs) {
		applyAttribute(builder, didStr, attrs[name])
	}
	for _, key := range sortedDelegateKeys(delegates) {
		applyDelegate(builder, didStr, delegates[key])
	}

	return builder.Build()
}

func controllerDID(original identifiers.DIDEthr, owner types.Address) string {
	return identifiers.NewDIDEthr(original.Network, owner).String()
}

type ethrAttribute struct {
	name  string
	value []byte
}

type ethrDelegate struct {
	delegateType string
	delegate     types.Address
}

func applyAttribute(builder *DocumentBuilder, did string, attr ethrAttribute) {
	switch {
	case strings.HasPrefix(attr.name, attrPubKeyPrefix):
		builder.AddPublicKeyVerificationMethod(vmTypeVeriKeyDelegate, did, "0x"+hex.EncodeToString(attr.value))
	case strings.HasPrefix(attr.name, attrSvcPrefix):
		builder.AddService(strings.TrimPrefix(attr.name, attrSvcPrefix), string(attr.value))
	}
}

func applyDelegate(builder *DocumentBuilder, did string, delegate ethrDelegate) {
	vmType := vmTypeVeriKeyDelegate
	if delegate.delegateType == delegateTypeSigAuth {
		vmType = vmTypeSigAuthDelegate
	}
	builder.AddVerificationMethod(vmType, did, delegate.delegate.String())
}

func sortedAttrNames(attrs map[string]ethrAttribute) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedDelegateKeys(delegates map[string]ethrDelegate) []string {
	keys := make([]string, 0, len(delegates))
	for key := range delegates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type orderedEvent struct {
	blockNumber uint64
	logIndex    uint64
	payload     interface{}
}

type didOwnerChangedEvent struct {
	identity types.Address
	owner    types.Address
}

type didAttributeChangedEvent struct {
	identity types.Address
	name     string
	value    []byte
	validTo  uint64
}

type didDelegateChangedEvent struct {
	identity     types.Address
	delegateType string
	delegate     types.Address
	validTo      uint64
}

// fetchEthrEvents queries the three ERC-1056-style event kinds for a
// single identity address and decodes each into its typed payload,
// retaining the block number and log index the caller needs for the
// total fold order.
func fetchEthrEvents(ctx context.Context, client transaction.EventQuerier, identity types.Address) ([]orderedEvent, error) {
	kinds := []struct {
		name    string
		convert transaction.EventConverter
	}{
		{eventDIDOwnerChanged, convertDIDOwnerChanged},
		{eventDIDAttributeChanged, convertDIDAttributeChanged},
		{eventDIDDelegateChanged, convertDIDDelegateChanged},
	}

	var events []orderedEvent
	for _, kind := range kinds {
		query, err := transaction.NewEventQueryBuilder().
			Contract(ethrContractName).
			EventSignature(kind.name).
			EventFilter(identity.String()).
			Build(client)
		if err != nil {
			return nil, err
		}
		logs, err := client.QueryEvents(ctx, query)
		if err != nil {
			return nil, err
		}
		parser := transaction.NewEventParser(ethrContractName, kind.name)
		for _, entryLog := range logs {
			value, err := parser.Parse(client, entryLog, kind.convert)
			if err != nil {
				return nil, err
			}
			events = append(events, orderedEvent{
				blockNumber: entryLog.BlockNumber,
				logIndex:    entryLog.LogIndex,
				payload:     value,
			})
		}
	}

	log.Debug("resolved did:ethr event history", logger.String("identity", identity.String()), logger.Int("events", len(events)))
	return events, nil
}

func convertDIDOwnerChanged(fields map[string]interface{}) (interface{}, error) {
	identity, err := addressField(fields, "identity")
	if err != nil {
		return nil, err
	}
	owner, err := addressField(fields, "owner")
	if err != nil {
		return nil, err
	}
	return didOwnerChangedEvent{identity: identity, owner: owner}, nil
}

func convertDIDAttributeChanged(fields map[string]interface{}) (interface{}, error) {
	identity, err := addressField(fields, "identity")
	if err != nil {
		return nil, err
	}
	name, err := bytes32Field(fields, "name")
	if err != nil {
		return nil, err
	}
	value, ok := fields["value"].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "DIDAttributeChanged: missing value")
	}
	validTo, err := uint64Field(fields, "validTo")
	if err != nil {
		return nil, err
	}
	return didAttributeChangedEvent{identity: identity, name: name, value: value, validTo: validTo}, nil
}

func convertDIDDelegateChanged(fields map[string]interface{}) (interface{}, error) {
	identity, err := addressField(fields, "identity")
	if err != nil {
		return nil, err
	}
	delegateType, err := bytes32Field(fields, "delegateType")
	if err != nil {
		return nil, err
	}
	delegate, err := addressField(fields, "delegate")
	if err != nil {
		return nil, err
	}
	validTo, err := uint64Field(fields, "validTo")
	if err != nil {
		return nil, err
	}
	return didDelegateChangedEvent{identity: identity, delegateType: delegateType, delegate: delegate, validTo: validTo}, nil
}
