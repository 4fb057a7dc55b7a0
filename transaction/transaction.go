// Package transaction implements the Transaction value object, its
// builder/parser, transaction endorsing data, and event query/parse
// (§3, §4.2, §4.3, §4.5 of the VDR design): everything needed to turn
// a domain operation into a signed EVM transaction (or a read call),
// and to turn raw return bytes back into typed values.
package transaction

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// GasPrice and GasLimit are core-wide constants referenced by every
// signing preimage and wire encoding. They must never be recomputed
// per transaction: the signing preimage is only fully determined by
// chain id, nonce, recipient and calldata if these stay fixed.
var (
	GasPrice = big.NewInt(0)
	GasLimit = uint64(8_000_000)
)

// Type distinguishes a write (state-changing) transaction from a read
// (`eth_call`) one.
type Type int

const (
	Read Type = iota
	Write
)

func (t Type) String() string {
	if t == Write {
		return "write"
	}
	return "read"
}

// Signature is the EIP-155-embedded (v, r, s) triple installed on a
// Transaction once its signing preimage has been signed.
type Signature struct {
	V uint64
	R []byte
	S []byte
}

// Transaction is the core value object described in §3: type,
// optional sender, recipient, chain id, optional nonce, calldata, and
// an optional one-shot signature slot.
type Transaction struct {
	Type    Type
	From    *vtypes.Address
	To      vtypes.Address
	ChainID vtypes.ChainID
	Data    []byte
	Nonce   *vtypes.Nonce
	Hash    []byte

	mu        sync.RWMutex
	signature *Signature
}

// Equal compares two transactions field-by-field, including their
// current signature, without racing on the signature lock (used by
// tests that reproduce the original Rust `PartialEq` semantics).
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	if t.Type != other.Type || t.ChainID != other.ChainID {
		return false
	}
	if (t.From == nil) != (other.From == nil) {
		return false
	}
	if t.From != nil && !t.From.Equal(*other.From) {
		return false
	}
	if !t.To.Equal(other.To) {
		return false
	}
	if (t.Nonce == nil) != (other.Nonce == nil) {
		return false
	}
	if t.Nonce != nil && *t.Nonce != *other.Nonce {
		return false
	}
	if len(t.Data) != len(other.Data) {
		return false
	}
	for i := range t.Data {
		if t.Data[i] != other.Data[i] {
			return false
		}
	}
	return signaturesEqual(t.signature, other.signature)
}

func signaturesEqual(a, b *Signature) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.V != b.V || len(a.R) != len(b.R) || len(a.S) != len(b.S) {
		return false
	}
	for i := range a.R {
		if a.R[i] != b.R[i] {
			return false
		}
	}
	for i := range a.S {
		if a.S[i] != b.S[i] {
			return false
		}
	}
	return true
}

// legacyTxFields builds the core/types.LegacyTx representing this
// transaction's non-signature fields (nonce, gas price/limit, to,
// value=0, data), the shared basis for both the signing preimage and
// the final wire encoding.
func (t *Transaction) legacyTxFields() (*types.LegacyTx, error) {
	nonce, err := t.requireNonce()
	if err != nil {
		return nil, err
	}
	to := t.To.Common()
	return &types.LegacyTx{
		Nonce:    nonce.BigInt().Uint64(),
		GasPrice: new(big.Int).Set(GasPrice),
		Gas:      GasLimit,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     append([]byte(nil), t.Data...),
	}, nil
}

func (t *Transaction) requireNonce() (vtypes.Nonce, error) {
	if t.Type != Write {
		return vtypes.Nonce{}, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "`nonce` is only meaningful for write transactions")
	}
	if t.Nonce == nil {
		return vtypes.Nonce{}, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "transaction `nonce` is not set")
	}
	return *t.Nonce, nil
}

// SigningBytes computes the Keccak-256 of the RLP encoding of the
// legacy Ethereum transaction envelope this Transaction represents
// (§3, §4.3): the byte-exact preimage an external signer must sign.
func (t *Transaction) SigningBytes() ([]byte, error) {
	inner, err := t.legacyTxFields()
	if err != nil {
		return nil, err
	}
	tx := types.NewTx(inner)
	signer := types.NewEIP155Signer(new(big.Int).SetUint64(uint64(t.ChainID)))
	hash := signer.Hash(tx)
	return hash.Bytes(), nil
}

// SetSignature installs the transaction's signature exactly once,
// converting a recoverable (recovery_id, 64-byte sig) pair into the
// EIP-155-embedded (v, r, s) triple:
//
//	v = recovery_id + 35 + 2*chain_id
func (t *Transaction) SetSignature(sig vtypes.SignatureData) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.signature != nil {
		return vdrerrors.New(vdrerrors.ClientInvalidState, "transaction signature is already set")
	}
	t.signature = &Signature{
		V: sig.EIP155V(t.ChainID),
		R: sig.R(),
		S: sig.S(),
	}
	return nil
}

// GetSignature returns a copy of the installed signature, or nil if none
// has been set yet.
func (t *Transaction) GetSignature() *Signature {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.signature == nil {
		return nil
	}
	cp := *t.signature
	return &cp
}

// Encode produces the final signed wire encoding: legacy
// (pre-EIP-2718) RLP of (nonce, gas_price, gas_limit, to, 0, data, v,
// r, s), with no transaction-type envelope byte.
func (t *Transaction) Encode() ([]byte, error) {
	inner, err := t.legacyTxFields()
	if err != nil {
		return nil, err
	}
	sig := t.GetSignature()
	if sig == nil {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "missing signature")
	}
	inner.V = new(big.Int).SetUint64(sig.V)
	inner.R = new(big.Int).SetBytes(sig.R)
	inner.S = new(big.Int).SetBytes(sig.S)

	encoded, err := rlp.EncodeToBytes(inner)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientUnexpectedError, "failed to RLP-encode signed transaction", err)
	}
	return encoded, nil
}

// Recipient exposes the recipient as a go-ethereum common.Address, for
// RPC calls.
func (t *Transaction) Recipient() common.Address { return t.To.Common() }
