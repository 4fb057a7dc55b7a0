package transaction

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	endorsingPrefix  byte = 0x19
	endorsingVersion byte = 0x00
)

// TransactionEndorsingData is the off-chain signature preimage an
// author signs so a distinct sender can later submit the equivalent
// on-chain write on their behalf (§4.5).
type TransactionEndorsingData struct {
	To              vtypes.Address      `json:"to"`
	From            vtypes.Address      `json:"from"`
	Nonce           *vtypes.Nonce       `json:"nonce,omitempty"`
	Contract        string              `json:"contract"`
	Method          string              `json:"method"`
	EndorsingMethod string              `json:"endorsingMethod"`
	Params          []interface{}       `json:"params"`
	Signature       *vtypes.SignatureData `json:"signature,omitempty"`
}

// SigningBytes computes the Keccak-256 of the packed (non-RLP) byte
// concatenation described in §4.5: prefix, version, recipient,
// optional nonce, author, length-prefixed method name, then each
// parameter in order with unsigned integers widened to 8 bytes.
func (d *TransactionEndorsingData) SigningBytes() ([]byte, error) {
	var buf []byte
	buf = append(buf, endorsingPrefix, endorsingVersion)
	buf = append(buf, d.To.Bytes()...)
	if d.Nonce != nil {
		buf = append(buf, leftPad32(d.Nonce.BigInt().Bytes())...)
	}
	buf = append(buf, d.From.Bytes()...)
	buf = append(buf, packMethodString(d.Method)...)
	for _, param := range d.Params {
		packed, err := packEndorsingParam(param)
		if err != nil {
			return nil, err
		}
		buf = append(buf, packed...)
	}
	return crypto.Keccak256(buf), nil
}

// SetSignature installs the author's signature over this data's
// signing bytes.
func (d *TransactionEndorsingData) SetSignature(sig vtypes.SignatureData) {
	d.Signature = &sig
}

// ToJSON serializes the endorsing data for off-the-wire handoff
// between author and sender.
func (d *TransactionEndorsingData) ToJSON() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidEndorsementData, "unable to serialize endorsement data as JSON", err)
	}
	return data, nil
}

// EndorsingDataFromJSON deserializes endorsement data handed off from
// an author.
func EndorsingDataFromJSON(raw []byte) (*TransactionEndorsingData, error) {
	var d TransactionEndorsingData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidEndorsementData, "unable to deserialize endorsement data from JSON", err)
	}
	return &d, nil
}

// taggedParam carries a single endorsing parameter's concrete Go type
// alongside its value, so a JSON round-trip reconstructs the exact
// type packEndorsingParam needs rather than collapsing everything to
// the untyped numbers/strings encoding/json would otherwise produce
// for a bare []interface{}.
type taggedParam struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func encodeParam(param interface{}) (taggedParam, error) {
	switch v := param.(type) {
	case uint64:
		value, err := json.Marshal(v)
		return taggedParam{Type: "uint64", Value: value}, err
	case uint32:
		value, err := json.Marshal(v)
		return taggedParam{Type: "uint32", Value: value}, err
	case uint8:
		value, err := json.Marshal(v)
		return taggedParam{Type: "uint8", Value: value}, err
	case int:
		value, err := json.Marshal(v)
		return taggedParam{Type: "int", Value: value}, err
	case *big.Int:
		value, err := json.Marshal(v.String())
		return taggedParam{Type: "bigint", Value: value}, err
	case vtypes.Address:
		value, err := json.Marshal(v.String())
		return taggedParam{Type: "address", Value: value}, err
	case []byte:
		value, err := json.Marshal("0x" + hex.EncodeToString(v))
		return taggedParam{Type: "bytes", Value: value}, err
	case string:
		value, err := json.Marshal(v)
		return taggedParam{Type: "string", Value: value}, err
	default:
		return taggedParam{}, vdrerrors.Newf(vdrerrors.ClientInvalidEndorsementData, "unsupported endorsing parameter type %T", param)
	}
}

func decodeParam(tp taggedParam) (interface{}, error) {
	switch tp.Type {
	case "uint64":
		var v uint64
		return v, json.Unmarshal(tp.Value, &v)
	case "uint32":
		var v uint32
		return v, json.Unmarshal(tp.Value, &v)
	case "uint8":
		var v uint8
		return v, json.Unmarshal(tp.Value, &v)
	case "int":
		var v int
		return v, json.Unmarshal(tp.Value, &v)
	case "bigint":
		var s string
		if err := json.Unmarshal(tp.Value, &s); err != nil {
			return nil, err
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, vdrerrors.Newf(vdrerrors.ClientInvalidEndorsementData, "invalid bigint param %q", s)
		}
		return v, nil
	case "address":
		var s string
		if err := json.Unmarshal(tp.Value, &s); err != nil {
			return nil, err
		}
		return vtypes.ParseAddress(s)
	case "bytes":
		var s string
		if err := json.Unmarshal(tp.Value, &s); err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		return raw, err
	case "string":
		var v string
		return v, json.Unmarshal(tp.Value, &v)
	default:
		return nil, vdrerrors.Newf(vdrerrors.ClientInvalidEndorsementData, "unknown endorsing parameter type %q", tp.Type)
	}
}

// endorsingDataAlias breaks the recursion custom (Un)MarshalJSON would
// otherwise cause on TransactionEndorsingData.
type endorsingDataAlias TransactionEndorsingData

// MarshalJSON tags each param with its concrete Go type so
// EndorsingDataFromJSON reconstructs values packEndorsingParam
// recognizes, keeping §6's "stable across round-trips" guarantee.
func (d *TransactionEndorsingData) MarshalJSON() ([]byte, error) {
	params := make([]taggedParam, len(d.Params))
	for i, p := range d.Params {
		tp, err := encodeParam(p)
		if err != nil {
			return nil, err
		}
		params[i] = tp
	}
	return json.Marshal(&struct {
		*endorsingDataAlias
		Params []taggedParam `json:"params"`
	}{endorsingDataAlias: (*endorsingDataAlias)(d), Params: params})
}

// UnmarshalJSON reverses MarshalJSON's type-tagged param encoding.
func (d *TransactionEndorsingData) UnmarshalJSON(data []byte) error {
	aux := &struct {
		*endorsingDataAlias
		Params []taggedParam `json:"params"`
	}{endorsingDataAlias: (*endorsingDataAlias)(d)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	params := make([]interface{}, len(aux.Params))
	for i, tp := range aux.Params {
		v, err := decodeParam(tp)
		if err != nil {
			return err
		}
		params[i] = v
	}
	d.Params = params
	return nil
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return padded
}

// packMethodString packs the base method name as a 4-byte big-endian
// length prefix followed by its raw UTF-8 bytes.
func packMethodString(method string) []byte {
	buf := make([]byte, 4+len(method))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(method)))
	copy(buf[4:], method)
	return buf
}

// methodUintBytes widens an unsigned integer to its 8-byte big-endian
// "method-uint-bytes" representation, the form the endorsing contract
// expects for uint parameters inside the packed preimage.
func methodUintBytes(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// packEndorsingParam packs one ordered parameter per §4.5: unsigned
// integers widen to 8-byte big-endian method-uint-bytes, addresses
// pack as their raw 20 bytes, byte slices pack as-is, and strings pack
// as raw UTF-8 (standard ABI-packed form, unlike the length-prefixed
// method name above).
func packEndorsingParam(param interface{}) ([]byte, error) {
	switch v := param.(type) {
	case uint64:
		return methodUintBytes(v), nil
	case uint32:
		return methodUintBytes(uint64(v)), nil
	case uint8:
		return methodUintBytes(uint64(v)), nil
	case int:
		return methodUintBytes(uint64(v)), nil
	case *big.Int:
		return methodUintBytes(v.Uint64()), nil
	case vtypes.Address:
		return v.Bytes(), nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, vdrerrors.Newf(vdrerrors.ClientInvalidEndorsementData, "unsupported endorsing parameter type %T", param)
	}
}

// TransactionEndorsingDataBuilder is the fluent constructor mirroring
// TransactionBuilder, accumulating the fields of a
// TransactionEndorsingData before resolving the recipient contract
// address at Build time.
type TransactionEndorsingDataBuilder struct {
	contractName    string
	identity        vtypes.Address
	nonce           *vtypes.Nonce
	method          string
	endorsingMethod string
	params          []interface{}
}

// NewTransactionEndorsingDataBuilder starts a fresh builder.
func NewTransactionEndorsingDataBuilder() *TransactionEndorsingDataBuilder {
	return &TransactionEndorsingDataBuilder{}
}

func (b *TransactionEndorsingDataBuilder) Contract(name string) *TransactionEndorsingDataBuilder {
	b.contractName = name
	return b
}

func (b *TransactionEndorsingDataBuilder) Identity(addr vtypes.Address) *TransactionEndorsingDataBuilder {
	b.identity = addr
	return b
}

func (b *TransactionEndorsingDataBuilder) Nonce(nonce vtypes.Nonce) *TransactionEndorsingDataBuilder {
	b.nonce = &nonce
	return b
}

func (b *TransactionEndorsingDataBuilder) Method(method string) *TransactionEndorsingDataBuilder {
	b.method = method
	return b
}

func (b *TransactionEndorsingDataBuilder) EndorsingMethod(method string) *TransactionEndorsingDataBuilder {
	b.endorsingMethod = method
	return b
}

func (b *TransactionEndorsingDataBuilder) Params(params ...interface{}) *TransactionEndorsingDataBuilder {
	b.params = params
	return b
}

// EndorsingContractResolver is the narrow capability the builder needs:
// looking up a registered contract by name.
type EndorsingContractResolver interface {
	Contract(name string) (*abi.Contract, error)
}

// Build resolves the recipient contract and yields the immutable
// TransactionEndorsingData.
func (b *TransactionEndorsingDataBuilder) Build(client EndorsingContractResolver) (*TransactionEndorsingData, error) {
	if b.contractName == "" {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidEndorsementData, "contract name not set")
	}
	contract, err := client.Contract(b.contractName)
	if err != nil {
		return nil, err
	}
	if b.method == "" || b.endorsingMethod == "" {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidEndorsementData, "`method` and `endorsingMethod` must both be set")
	}
	return &TransactionEndorsingData{
		To:              contract.Address(),
		From:            b.identity,
		Nonce:           b.nonce,
		Contract:        b.contractName,
		Method:          b.method,
		EndorsingMethod: b.endorsingMethod,
		Params:          b.params,
	}, nil
}
