// Package client implements the LedgerClient and its RpcNode
// capability (§4.4): dialing Ethereum-compatible JSON-RPC nodes,
// submitting and calling transactions, and the quorum protocol that
// cross-checks a primary's answers against a set of replicas.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/internal/metrics"
	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

var log = logger.New("client")

// Block is the minimal subset of `eth_getBlockByNumber` the VDR reads.
type Block struct {
	Number    uint64
	Timestamp uint64
	Hash      []byte
}

// TransactionInfo is the JSON-RPC `eth_getTransactionByHash` result,
// kept as raw fields since the VDR never needs to decode this back
// into a signed Transaction (callers only check for presence/status).
type TransactionInfo struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	BlockHash   string `json:"blockHash"`
}

// LogFilter describes an `eth_getLogs` query.
type LogFilter struct {
	Address   vtypes.Address
	FromBlock *uint64
	ToBlock   *uint64
	Topics    [][]byte
}

// RpcNode is the narrow capability the ledger client and quorum
// protocol depend on (§9's "Contract trait polymorphism" note extended
// to the RPC layer): a single Ethereum-compatible JSON-RPC endpoint.
type RpcNode interface {
	GetTransactionCount(ctx context.Context, address vtypes.Address) (vtypes.Nonce, error)
	SubmitTransaction(ctx context.Context, raw []byte) ([]byte, error)
	CallTransaction(ctx context.Context, to vtypes.Address, data []byte) ([]byte, error)
	GetTransaction(ctx context.Context, hash []byte) (*TransactionInfo, error)
	GetReceipt(ctx context.Context, hash []byte) (string, error)
	Ping(ctx context.Context) vtypes.PingStatus
	GetBlock(ctx context.Context, number *uint64) (*Block, error)
	QueryLogs(ctx context.Context, filter LogFilter) ([]vtypes.EventLog, error)
}

// JSONRpcNode is the go-ethereum-rpc-backed RpcNode implementation: a
// thin adapter over rpc.Client.CallContext, never a hand-rolled
// HTTP/JSON transport.
type JSONRpcNode struct {
	address string
	rpc     *rpc.Client
}

// DialRpcNode dials a single JSON-RPC endpoint. A dial failure is
// reported as ClientNodeUnreachable, matching §4.4's "missing or
// unreachable primary is a fatal construction error".
func DialRpcNode(ctx context.Context, address string) (*JSONRpcNode, error) {
	c, err := rpc.DialContext(ctx, address)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, "unable to reach RPC node "+address, err)
	}
	return &JSONRpcNode{address: address, rpc: c}, nil
}

func (n *JSONRpcNode) GetTransactionCount(ctx context.Context, address vtypes.Address) (vtypes.Nonce, error) {
	var result hexutil.Big
	if err := n.rpc.CallContext(ctx, &result, "eth_getTransactionCount", address.Common(), "latest"); err != nil {
		return vtypes.Nonce{}, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, "eth_getTransactionCount failed", err)
	}
	return vtypes.NonceFromBigInt((*big.Int)(&result)), nil
}

func (n *JSONRpcNode) SubmitTransaction(ctx context.Context, raw []byte) ([]byte, error) {
	var hash common.Hash
	if err := n.rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		metrics.RPCCalls.WithLabelValues("eth_sendRawTransaction", "error").Inc()
		return nil, vdrerrors.Wrap(vdrerrors.ClientTransactionReverted, "eth_sendRawTransaction failed", err)
	}
	metrics.RPCCalls.WithLabelValues("eth_sendRawTransaction", "ok").Inc()
	return hash.Bytes(), nil
}

func (n *JSONRpcNode) CallTransaction(ctx context.Context, to vtypes.Address, data []byte) ([]byte, error) {
	callArgs := map[string]interface{}{
		"to":   to.Common(),
		"data": hexutil.Encode(data),
	}
	var result hexutil.Bytes
	if err := n.rpc.CallContext(ctx, &result, "eth_call", callArgs, "latest"); err != nil {
		metrics.RPCCalls.WithLabelValues("eth_call", "error").Inc()
		return nil, vdrerrors.Wrap(vdrerrors.ClientTransactionReverted, "eth_call failed", err)
	}
	metrics.RPCCalls.WithLabelValues("eth_call", "ok").Inc()
	return result, nil
}

func (n *JSONRpcNode) GetTransaction(ctx context.Context, hash []byte) (*TransactionInfo, error) {
	var result *TransactionInfo
	if err := n.rpc.CallContext(ctx, &result, "eth_getTransactionByHash", common.BytesToHash(hash)); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientGetTransactionError, "eth_getTransactionByHash failed", err)
	}
	return result, nil
}

func (n *JSONRpcNode) GetReceipt(ctx context.Context, hash []byte) (string, error) {
	var result json.RawMessage
	if err := n.rpc.CallContext(ctx, &result, "eth_getTransactionReceipt", common.BytesToHash(hash)); err != nil {
		return "", vdrerrors.Wrap(vdrerrors.ClientInvalidResponse, "eth_getTransactionReceipt failed", err)
	}
	if len(result) == 0 || string(result) == "null" {
		return "", vdrerrors.New(vdrerrors.ClientInvalidResponse, "missing transaction receipt")
	}
	return string(result), nil
}

func (n *JSONRpcNode) Ping(ctx context.Context) vtypes.PingStatus {
	var blockHex hexutil.Uint64
	if err := n.rpc.CallContext(ctx, &blockHex, "eth_blockNumber"); err != nil {
		log.Warn("ping failed", logger.String("node", n.address), logger.Error(err))
		return vtypes.Err("could not get current network block")
	}
	block, err := n.GetBlock(ctx, (*uint64)(&blockHex))
	if err != nil {
		return vtypes.Err("could not get current network block")
	}
	return vtypes.Ok(block.Number, block.Timestamp)
}

func (n *JSONRpcNode) GetBlock(ctx context.Context, number *uint64) (*Block, error) {
	var tag interface{} = "latest"
	if number != nil {
		tag = hexutil.EncodeUint64(*number)
	}
	var raw struct {
		Number    hexutil.Uint64 `json:"number"`
		Timestamp hexutil.Uint64 `json:"timestamp"`
		Hash      common.Hash    `json:"hash"`
	}
	if err := n.rpc.CallContext(ctx, &raw, "eth_getBlockByNumber", tag, false); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, "eth_getBlockByNumber failed", err)
	}
	return &Block{Number: uint64(raw.Number), Timestamp: uint64(raw.Timestamp), Hash: raw.Hash.Bytes()}, nil
}

func (n *JSONRpcNode) QueryLogs(ctx context.Context, filter LogFilter) ([]vtypes.EventLog, error) {
	params := map[string]interface{}{
		"address": filter.Address.Common(),
	}
	if filter.FromBlock != nil {
		params["fromBlock"] = hexutil.EncodeUint64(*filter.FromBlock)
	}
	if filter.ToBlock != nil {
		params["toBlock"] = hexutil.EncodeUint64(*filter.ToBlock)
	}
	if len(filter.Topics) > 0 {
		topics := make([]common.Hash, len(filter.Topics))
		for i, t := range filter.Topics {
			topics[i] = common.BytesToHash(t)
		}
		params["topics"] = topics
	}

	var raw []struct {
		Address     common.Address `json:"address"`
		Topics      []common.Hash  `json:"topics"`
		Data        hexutil.Bytes  `json:"data"`
		BlockNumber hexutil.Uint64 `json:"blockNumber"`
		TxHash      common.Hash    `json:"transactionHash"`
		LogIndex    hexutil.Uint64 `json:"logIndex"`
	}
	if err := n.rpc.CallContext(ctx, &raw, "eth_getLogs", params); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, "eth_getLogs failed", err)
	}

	logs := make([]vtypes.EventLog, 0, len(raw))
	for _, l := range raw {
		topics := make([][]byte, len(l.Topics))
		for i, t := range l.Topics {
			topics[i] = t.Bytes()
		}
		logs = append(logs, vtypes.EventLog{
			Address:     vtypes.AddressFromCommon(l.Address),
			Topics:      topics,
			Data:        l.Data,
			BlockNumber: uint64(l.BlockNumber),
			TxHash:      l.TxHash.Bytes(),
			LogIndex:    uint64(l.LogIndex),
		})
	}
	return logs, nil
}

func (n *JSONRpcNode) String() string {
	return fmt.Sprintf("JSONRpcNode(%s)", n.address)
}
