package transaction

import (
	"context"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// EventQuery describes a `query_events` request (§4.4, §4.6): the
// contract whose logs are wanted, an optional block range, and an
// optional event-name/topic filter.
type EventQuery struct {
	Address        vtypes.Address
	FromBlock      *uint64
	ToBlock        *uint64
	EventSignature string
	EventFilter    string
}

// EventQueryBuilder resolves a registered contract name into its
// address before producing an EventQuery, mirroring TransactionBuilder.
type EventQueryBuilder struct {
	contractName   string
	fromBlock      *uint64
	toBlock        *uint64
	eventSignature string
	eventFilter    string
}

// NewEventQueryBuilder starts a fresh builder.
func NewEventQueryBuilder() *EventQueryBuilder {
	return &EventQueryBuilder{}
}

func (b *EventQueryBuilder) Contract(name string) *EventQueryBuilder {
	b.contractName = name
	return b
}

func (b *EventQueryBuilder) FromBlock(block uint64) *EventQueryBuilder {
	b.fromBlock = &block
	return b
}

func (b *EventQueryBuilder) ToBlock(block uint64) *EventQueryBuilder {
	b.toBlock = &block
	return b
}

func (b *EventQueryBuilder) EventSignature(sig string) *EventQueryBuilder {
	b.eventSignature = sig
	return b
}

func (b *EventQueryBuilder) EventFilter(filter string) *EventQueryBuilder {
	b.eventFilter = filter
	return b
}

// Build resolves the contract address and yields the immutable
// EventQuery.
func (b *EventQueryBuilder) Build(client ContractResolver) (*EventQuery, error) {
	if b.contractName == "" {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "contract name is not set")
	}
	contract, err := client.Contract(b.contractName)
	if err != nil {
		return nil, err
	}
	return &EventQuery{
		Address:        contract.Address(),
		FromBlock:      b.fromBlock,
		ToBlock:        b.toBlock,
		EventSignature: b.eventSignature,
		EventFilter:    b.eventFilter,
	}, nil
}

// EventQuerier is the capability domain modules depend on to execute a
// built EventQuery and receive the matching logs, mirroring
// BuilderClient's role for transactions.
type EventQuerier interface {
	ContractResolver
	QueryEvents(ctx context.Context, query *EventQuery) ([]vtypes.EventLog, error)
}

// EventConverter is the `TryFrom<ContractEvent>` contract each domain
// module provides: given the decoded event fields (indexed and
// non-indexed, keyed by ABI argument name), produce the domain value.
type EventConverter func(fields map[string]interface{}) (interface{}, error)

// EventParser mirrors TransactionParser for event logs: it resolves
// the contract and event descriptor, decodes both the non-indexed
// (data) and indexed (topic) arguments, and hands the result to a
// domain-supplied converter.
type EventParser struct {
	contractName string
	eventName    string
}

// NewEventParser binds a parser to one contract event.
func NewEventParser(contractName, eventName string) *EventParser {
	return &EventParser{contractName: contractName, eventName: eventName}
}

// Parse decodes a single EventLog into a domain value. An empty data
// payload is an error, matching the Rust reference's early rejection
// of logs it cannot meaningfully decode.
func (p *EventParser) Parse(client ContractResolver, log vtypes.EventLog, convert EventConverter) (interface{}, error) {
	if len(log.Data) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "unable to parse event log: empty data")
	}
	contract, err := client.Contract(p.contractName)
	if err != nil {
		return nil, err
	}
	event, err := contract.Event(p.eventName)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if err := event.Inputs.UnpackIntoMap(fields, log.Data); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to decode event data", err)
	}

	var indexed ethabi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(indexed) > 0 {
		topics := make([]common.Hash, 0, len(log.Topics))
		for _, t := range log.Topics {
			topics = append(topics, common.BytesToHash(t))
		}
		// topics[0] is the event signature hash, not an argument.
		if len(topics) > 0 {
			topics = topics[1:]
		}
		if err := ethabi.ParseTopicsIntoMap(fields, indexed, topics); err != nil {
			return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to decode indexed event topics", err)
		}
	}

	if len(fields) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "unable to parse response")
	}

	return convert(fields)
}
