package types

// PingStatus is the tagged-union result of LedgerClient.Ping: either
// the primary node answered with block info, or it errored.
type PingStatus struct {
	OK              bool
	BlockNumber     uint64
	BlockTimestamp  uint64
	ErrorMessage    string
}

// Ok builds a successful PingStatus.
func Ok(blockNumber, blockTimestamp uint64) PingStatus {
	return PingStatus{OK: true, BlockNumber: blockNumber, BlockTimestamp: blockTimestamp}
}

// Err builds a failed PingStatus.
func Err(message string) PingStatus {
	return PingStatus{OK: false, ErrorMessage: message}
}
