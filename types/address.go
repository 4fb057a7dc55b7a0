package types

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// Address is a 20-byte EVM account identifier. It always round-trips
// through Parse/String as a lowercase 0x-prefixed hex string, and
// compares equal to any other casing of the same bytes.
type Address struct {
	value common.Address
}

// ParseAddress parses a 0x-prefixed (or bare) 40-hex-digit string into
// an Address. The input casing is not checked against EIP-55.
func ParseAddress(s string) (Address, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed) != 40 {
		return Address{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "invalid address length: %q", s)
	}
	if !common.IsHexAddress(s) {
		return Address{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "invalid address: %q", s)
	}
	return Address{value: common.HexToAddress(s)}, nil
}

// MustParseAddress is ParseAddress but panics on error; intended for
// package-level constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromCommon adapts a go-ethereum common.Address.
func AddressFromCommon(a common.Address) Address {
	return Address{value: a}
}

// Common returns the underlying go-ethereum representation for use
// with the ABI codec and RPC layers.
func (a Address) Common() common.Address { return a.value }

// Bytes returns the 20 raw address bytes.
func (a Address) Bytes() []byte { return a.value.Bytes() }

// String renders the address as a lowercase 0x-prefixed hex string.
func (a Address) String() string { return strings.ToLower(a.value.Hex()) }

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool { return a.value == common.Address{} }

// Equal compares two addresses case-insensitively (they're both
// already normalized, but this reads clearer at call sites).
func (a Address) Equal(other Address) bool { return a.value == other.value }

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
