package did

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// addressField reads a decoded common.Address-typed event field and
// adapts it into the package's own Address type.
func addressField(fields map[string]interface{}, name string) (types.Address, error) {
	v, ok := fields[name]
	if !ok {
		return types.Address{}, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: missing field %q", name)
	}
	addr, ok := v.(common.Address)
	if !ok {
		return types.Address{}, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: field %q is not an address", name)
	}
	return types.AddressFromCommon(addr), nil
}

// bytes32Field reads a fixed bytes32 event field and trims its
// trailing zero padding, recovering the original attribute name
// string the contract packed into it.
func bytes32Field(fields map[string]interface{}, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: missing field %q", name)
	}
	raw, ok := v.([32]byte)
	if !ok {
		return "", vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: field %q is not bytes32", name)
	}
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	return string(raw[:end]), nil
}

// uint64Field normalizes the integer types go-ethereum's ABI decoder
// produces into a plain uint64.
func uint64Field(fields map[string]interface{}, name string) (uint64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: missing field %q", name)
	}
	switch n := v.(type) {
	case *big.Int:
		return n.Uint64(), nil
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	default:
		return 0, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "event: field %q has unexpected integer type", name)
	}
}
