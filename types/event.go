package types

// EventLog is a single decoded-or-raw contract event log entry, as
// returned by `eth_getLogs` and consumed by the event parser. TxHash
// and LogIndex give it a total order alongside BlockNumber, needed by
// the did:ethr document fold (events for the same address must be
// absorbed in the order the chain produced them).
type EventLog struct {
	Address     Address
	Topics      [][]byte
	Data        []byte
	BlockNumber uint64
	TxHash      []byte
	LogIndex    uint64
}
