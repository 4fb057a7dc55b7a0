package transaction

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// ContractResolver is the capability the builder and parser need from
// a ledger client: looking up a registered contract and the client's
// fixed chain id.
type ContractResolver interface {
	Contract(name string) (*abi.Contract, error)
	ChainID() vtypes.ChainID
}

// NonceSource supplies the sender's next nonce, queried against the
// primary RPC node at build time for Write transactions.
type NonceSource interface {
	GetTransactionCount(ctx context.Context, address vtypes.Address) (vtypes.Nonce, error)
}

// BuilderClient is what TransactionBuilder.Build needs from a ledger
// client.
type BuilderClient interface {
	ContractResolver
	NonceSource
}

// TransactionBuilder is the fluent constructor described in §4.2: it
// accumulates a contract/method/sender/params/type and, on Build,
// resolves the contract, encodes calldata, and for Writes fetches the
// sender's next nonce.
type TransactionBuilder struct {
	txType       Type
	contractName string
	method       string
	from         *vtypes.Address
	params       []interface{}
}

// NewTransactionBuilder starts a builder for the given transaction
// type (Read or Write).
func NewTransactionBuilder(txType Type) *TransactionBuilder {
	return &TransactionBuilder{txType: txType}
}

// Contract sets the registered contract name to call.
func (b *TransactionBuilder) Contract(name string) *TransactionBuilder {
	b.contractName = name
	return b
}

// Method sets the contract method to invoke.
func (b *TransactionBuilder) Method(method string) *TransactionBuilder {
	b.method = method
	return b
}

// From sets the transaction's sender. Required for Write, ignored for
// Read.
func (b *TransactionBuilder) From(addr vtypes.Address) *TransactionBuilder {
	b.from = &addr
	return b
}

// Params sets the ordered call parameters.
func (b *TransactionBuilder) Params(params ...interface{}) *TransactionBuilder {
	b.params = params
	return b
}

// BuildSignedTransaction builds the Write transaction a sender submits
// on an author's behalf once the author has endorsed the operation
// (§4.5): it invokes the registry's `<method>Signed` method with
// `(identity, v, r, s, ...params)` ahead of the original parameters.
func BuildSignedTransaction(ctx context.Context, client BuilderClient, contractName, baseMethod string, sender, identity vtypes.Address, sig vtypes.SignatureData, params ...interface{}) (*Transaction, error) {
	var r, s [32]byte
	copy(r[:], sig.R())
	copy(s[:], sig.S())
	signedParams := append([]interface{}{identity.Common(), uint8(sig.EndorsingV()), r, s}, params...)
	return NewTransactionBuilder(Write).
		Contract(contractName).
		Method(baseMethod + "Signed").
		Params(signedParams...).
		From(sender).
		Build(ctx, client)
}

// Build resolves the contract, encodes calldata, and (for Write)
// fetches the sender's next nonce, producing an immutable Transaction.
func (b *TransactionBuilder) Build(ctx context.Context, client BuilderClient) (*Transaction, error) {
	if b.contractName == "" {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "contract name is not set")
	}
	contract, err := client.Contract(b.contractName)
	if err != nil {
		return nil, err
	}
	if b.method == "" {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "method name is not set")
	}
	data, err := contract.EncodeInput(b.method, b.params...)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		Type:    b.txType,
		From:    b.from,
		To:      contract.Address(),
		ChainID: client.ChainID(),
		Data:    data,
	}

	if b.txType == Write {
		if b.from == nil {
			return nil, vdrerrors.New(vdrerrors.ClientInvalidTransaction, "write transaction requires a sender")
		}
		nonce, err := client.GetTransactionCount(ctx, *b.from)
		if err != nil {
			return nil, err
		}
		tx.Nonce = &nonce
	}

	return tx, nil
}
