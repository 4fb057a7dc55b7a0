package client

import "time"

// DefaultConfirmations is the number of block confirmations the
// client waits for after `eth_sendRawTransaction` before considering
// a write accepted by the primary. The resolved Open Question (§9)
// keeps this at 1, matching the reference implementation's own
// `NUMBER_TX_CONFIRMATIONS` constant; callers running against a
// byzantine-fault-tolerant network should raise it explicitly, since 1
// confirmation only protects against the primary itself reorging, not
// against a minority of malicious validators.
const DefaultConfirmations = uint64(1)

// Config holds the submission/retry knobs for a LedgerClient.
type Config struct {
	Confirmations  uint64
	RequestRetries int
	RequestTimeout time.Duration
	RetryInterval  time.Duration
}

// DefaultConfig returns the reference defaults: 1 confirmation, 3
// request retries, matching §6's quorum configuration table.
func DefaultConfig() Config {
	return Config{
		Confirmations:  DefaultConfirmations,
		RequestRetries: 3,
		RequestTimeout: 5 * time.Second,
		RetryInterval:  200 * time.Millisecond,
	}
}
