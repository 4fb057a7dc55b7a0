package abi

import (
	"fmt"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

var log = logger.New("abi")

// Contract is the narrow capability the rest of the VDR depends on for
// encoding calldata and decoding ABI results, per §9's "Contract trait
// polymorphism" design note. The concrete implementation wraps
// go-ethereum's parsed ABI.
type Contract struct {
	name    string
	address types.Address
	spec    ethabi.ABI
}

// NewContract builds a Contract from a deployed address and spec.
func NewContract(address types.Address, spec ContractSpec) *Contract {
	return &Contract{name: spec.Name, address: address, spec: spec.ABI}
}

// Name returns the contract's logical (registry) name.
func (c *Contract) Name() string { return c.name }

// Address returns the contract's deployed address.
func (c *Contract) Address() types.Address { return c.address }

// EncodeInput packs a method call into calldata: 4-byte selector plus
// ABI-encoded arguments. Fails with ContractInvalidInputData when
// arity or types don't match the ABI.
func (c *Contract) EncodeInput(method string, params ...interface{}) ([]byte, error) {
	log.Debug("encoding contract input", logger.String("contract", c.name), logger.String("method", method))
	packed, err := c.spec.Pack(method, params...)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidInputData,
			fmt.Sprintf("failed to encode input for %s.%s", c.name, method), err)
	}
	return packed, nil
}

// DecodeOutput unpacks return data for a method into a slice of typed
// values, in declared output order. Fails with
// ContractInvalidResponseData on length or type mismatch.
func (c *Contract) DecodeOutput(method string, data []byte) ([]interface{}, error) {
	m, ok := c.spec.Methods[method]
	if !ok {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidName, "method %q not found on contract %s", method, c.name)
	}
	values, err := m.Outputs.UnpackValues(data)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData,
			fmt.Sprintf("failed to decode output for %s.%s", c.name, method), err)
	}
	return values, nil
}

// Event returns the ABI descriptor for a named event, used by the
// event-log parser.
func (c *Contract) Event(name string) (ethabi.Event, error) {
	ev, ok := c.spec.Events[name]
	if !ok {
		return ethabi.Event{}, vdrerrors.Newf(vdrerrors.ContractInvalidName, "event %q not found on contract %s", name, c.name)
	}
	return ev, nil
}

// Errors returns all ABI-declared custom errors, used to decode
// revert data returned by a failed `eth_call`/`eth_sendRawTransaction`.
func (c *Contract) Errors() map[string]ethabi.Error {
	return c.spec.Errors
}

// DecodeRevert attempts to match revert data against one of the
// contract's declared custom errors, returning a human message.
func (c *Contract) DecodeRevert(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	selector := data[:4]
	for name, abiErr := range c.spec.Errors {
		if string(abiErr.ID[:4]) == string(selector) {
			args, err := abiErr.Unpack(data)
			if err != nil {
				return name, true
			}
			return fmt.Sprintf("%s(%v)", name, args), true
		}
	}
	return "", false
}
