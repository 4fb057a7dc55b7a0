package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	"github.com/hyperledger/indy-besu-vdr-go/client/quorum"
	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/internal/metrics"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// LedgerClient is the single entry point for submitting and reading
// transactions against an EVM-compatible ledger (§4.4). The first
// configured node address is the primary; the remainder form the
// quorum set that cross-checks the primary's answers.
type LedgerClient struct {
	chainID  vtypes.ChainID
	primary  RpcNode
	replicas []RpcNode
	registry *abi.Registry
	config   Config
}

// NewLedgerClient dials the primary and every replica node, builds the
// contract registry, and returns a ready client. A missing or
// unreachable primary is a fatal construction error.
func NewLedgerClient(ctx context.Context, chainID vtypes.ChainID, nodeAddresses []string, contractConfigs []abi.ContractConfig, config Config) (*LedgerClient, error) {
	if len(nodeAddresses) == 0 {
		return nil, vdrerrors.New(vdrerrors.ClientNodeUnreachable, "at least one node address is required")
	}
	primary, err := DialRpcNode(ctx, nodeAddresses[0])
	if err != nil {
		return nil, err
	}

	replicas := make([]RpcNode, 0, len(nodeAddresses)-1)
	for _, addr := range nodeAddresses[1:] {
		node, err := DialRpcNode(ctx, addr)
		if err != nil {
			return nil, err
		}
		replicas = append(replicas, node)
	}

	registry, err := abi.NewRegistry(contractConfigs)
	if err != nil {
		return nil, err
	}

	log.Info("created ledger client",
		logger.Any("chainId", uint64(chainID)),
		logger.String("primary", nodeAddresses[0]),
		logger.Int("replicas", len(replicas)))

	return &LedgerClient{
		chainID:  chainID,
		primary:  primary,
		replicas: replicas,
		registry: registry,
		config:   config,
	}, nil
}

// ChainID returns the client's fixed chain id, satisfying
// transaction.ContractResolver.
func (c *LedgerClient) ChainID() vtypes.ChainID { return c.chainID }

// Contract looks up a registered contract by name, satisfying
// transaction.ContractResolver.
func (c *LedgerClient) Contract(name string) (*abi.Contract, error) {
	return c.registry.Contract(name)
}

// GetTransactionCount fetches the sender's next nonce from the
// primary node, satisfying transaction.NonceSource.
func (c *LedgerClient) GetTransactionCount(ctx context.Context, address vtypes.Address) (vtypes.Nonce, error) {
	return c.primary.GetTransactionCount(ctx, address)
}

// Ping reports the primary node's reachability and current block.
func (c *LedgerClient) Ping(ctx context.Context) vtypes.PingStatus {
	return c.primary.Ping(ctx)
}

// GetReceipt returns the primary's receipt for a transaction hash,
// serialized as a JSON string. Absence is an error; callers should
// poll.
func (c *LedgerClient) GetReceipt(ctx context.Context, hash []byte) (string, error) {
	return c.primary.GetReceipt(ctx, hash)
}

// QueryEvents resolves the query's event signature against the
// contract's ABI (if one is set) to obtain the topic0 hash, fetches
// matching logs from the primary, and cross-checks the replica set by
// byte equality of the serialized result, the same quorum rule reads
// use.
func (c *LedgerClient) QueryEvents(ctx context.Context, query *transaction.EventQuery) ([]vtypes.EventLog, error) {
	filter := LogFilter{
		Address:   query.Address,
		FromBlock: query.FromBlock,
		ToBlock:   query.ToBlock,
	}
	if query.EventSignature != "" {
		topic, err := c.eventTopic(query.EventSignature)
		if err != nil {
			return nil, err
		}
		filter.Topics = [][]byte{topic}
		if query.EventFilter != "" {
			indexedAddr, err := vtypes.ParseAddress(query.EventFilter)
			if err != nil {
				return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidData, "invalid event filter address", err)
			}
			topicWord := make([]byte, 32)
			copy(topicWord[12:], indexedAddr.Bytes())
			filter.Topics = append(filter.Topics, topicWord)
		}
	}

	logs, err := c.primary.QueryLogs(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(c.replicas) > 0 {
		primaryBytes, marshalErr := json.Marshal(logs)
		if marshalErr != nil {
			return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to serialize primary event logs", marshalErr)
		}
		calls := make([]quorum.ReplicaCall, len(c.replicas))
		for i, replica := range c.replicas {
			replica := replica
			calls[i] = func(ctx context.Context) ([]byte, error) {
				replicaLogs, err := replica.QueryLogs(ctx, filter)
				if err != nil {
					return nil, err
				}
				return json.Marshal(replicaLogs)
			}
		}
		if err := quorum.CheckRead(ctx, primaryBytes, calls); err != nil {
			metrics.QuorumChecks.WithLabelValues("read", "failed").Inc()
			return nil, err
		}
		metrics.QuorumChecks.WithLabelValues("read", "ok").Inc()
	}

	return logs, nil
}

// eventTopic looks up an event's topic0 hash by name across every
// registered contract, since EventQuery carries only an address.
func (c *LedgerClient) eventTopic(eventName string) ([]byte, error) {
	for _, name := range c.registry.Names() {
		contract, err := c.registry.Contract(name)
		if err != nil {
			continue
		}
		if event, err := contract.Event(eventName); err == nil {
			id := event.ID
			return id[:], nil
		}
	}
	return nil, vdrerrors.Newf(vdrerrors.ContractInvalidName, "event %q not found on any registered contract", eventName)
}

// SubmitTransaction dispatches a built Transaction according to its
// type: Read executes `eth_call` on the primary and cross-checks the
// quorum set by byte equality; Write submits the signed transaction,
// waits for confirmations, and cross-checks the quorum set by polling
// for the transaction hash's visibility.
func (c *LedgerClient) SubmitTransaction(ctx context.Context, tx *transaction.Transaction) ([]byte, error) {
	switch tx.Type {
	case transaction.Read:
		return c.callRead(ctx, tx)
	case transaction.Write:
		return c.submitWrite(ctx, tx)
	default:
		return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "unknown transaction type")
	}
}

func (c *LedgerClient) callRead(ctx context.Context, tx *transaction.Transaction) ([]byte, error) {
	result, err := c.primary.CallTransaction(ctx, tx.To, tx.Data)
	if err != nil {
		return nil, err
	}

	if len(c.replicas) > 0 {
		calls := make([]quorum.ReplicaCall, len(c.replicas))
		for i, replica := range c.replicas {
			replica := replica
			calls[i] = func(ctx context.Context) ([]byte, error) {
				return replica.CallTransaction(ctx, tx.To, tx.Data)
			}
		}
		if err := quorum.CheckRead(ctx, result, calls); err != nil {
			metrics.QuorumChecks.WithLabelValues("read", "failed").Inc()
			return nil, err
		}
		metrics.QuorumChecks.WithLabelValues("read", "ok").Inc()
	}

	return result, nil
}

func (c *LedgerClient) submitWrite(ctx context.Context, tx *transaction.Transaction) ([]byte, error) {
	raw, err := tx.Encode()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	hash, err := c.primary.SubmitTransaction(ctx, raw)
	metrics.TxSubmitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if err := c.waitForConfirmations(ctx, hash); err != nil {
		return nil, err
	}

	if len(c.replicas) > 0 {
		polls := make([]quorum.PollFunc, len(c.replicas))
		for i, replica := range c.replicas {
			replica := replica
			polls[i] = func(ctx context.Context) (bool, error) {
				info, err := replica.GetTransaction(ctx, hash)
				if err != nil {
					return false, err
				}
				return info != nil, nil
			}
		}
		if err := quorum.CheckWrite(ctx, c.config.RequestRetries, c.config.RetryInterval, polls); err != nil {
			metrics.QuorumChecks.WithLabelValues("write", "failed").Inc()
			return nil, err
		}
		metrics.QuorumChecks.WithLabelValues("write", "ok").Inc()
	}

	return hash, nil
}

// waitForConfirmations polls the primary's head block until the
// submitted transaction's receipt has accrued the configured number
// of confirmations, bounded by the retry/timeout budget.
func (c *LedgerClient) waitForConfirmations(ctx context.Context, hash []byte) error {
	confirmations := c.config.Confirmations
	if confirmations == 0 {
		confirmations = DefaultConfirmations
	}

	retries := c.config.RequestRetries
	if retries <= 0 {
		retries = 1
	}
	interval := c.config.RetryInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	var receiptBlock uint64
	seen := false
	for attempt := 0; attempt < retries*10 && !seen; attempt++ {
		raw, err := c.primary.GetReceipt(ctx, hash)
		if err == nil {
			var receipt struct {
				BlockNumber string `json:"blockNumber"`
			}
			if jsonErr := json.Unmarshal([]byte(raw), &receipt); jsonErr == nil {
				if n, ok := parseHexUint64(receipt.BlockNumber); ok {
					receiptBlock = n
					seen = true
					break
				}
			}
		}
		select {
		case <-ctx.Done():
			return vdrerrors.Wrap(vdrerrors.ClientGetTransactionError, "context cancelled while waiting for transaction receipt", ctx.Err())
		case <-time.After(interval):
		}
	}
	if !seen {
		return vdrerrors.New(vdrerrors.ClientGetTransactionError, "transaction was not confirmed by the primary node")
	}
	if confirmations <= 1 {
		return nil
	}

	for attempt := 0; attempt < retries*10; attempt++ {
		head, err := c.primary.GetBlock(ctx, nil)
		if err == nil && head.Number >= receiptBlock+confirmations-1 {
			return nil
		}
		select {
		case <-ctx.Done():
			return vdrerrors.Wrap(vdrerrors.ClientGetTransactionError, "context cancelled while waiting for confirmations", ctx.Err())
		case <-time.After(interval):
		}
	}
	return vdrerrors.New(vdrerrors.ClientGetTransactionError, "timed out waiting for transaction confirmations")
}

func parseHexUint64(s string) (uint64, bool) {
	if len(s) < 3 || s[:2] != "0x" {
		return 0, false
	}
	var v uint64
	for _, r := range s[2:] {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= uint64(r - '0')
		case r >= 'a' && r <= 'f':
			v |= uint64(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= uint64(r-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
