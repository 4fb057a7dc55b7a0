// Package abi wraps go-ethereum's ABI encoder/decoder behind a small
// Contract capability (§4.1 of the VDR design): given a contract's
// deployed address and parsed ABI, encode method inputs to calldata,
// decode return data and event logs into typed values, and surface
// revert errors.
package abi

import (
	"encoding/json"
	"os"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// ContractSpec pairs a contract's logical name with its parsed ABI.
type ContractSpec struct {
	Name string
	ABI  ethabi.ABI
}

// specSourceJSON is the on-disk/inline shape: {"name": "...", "abi": [...]}.
type specSourceJSON struct {
	Name string          `json:"name"`
	ABI  json.RawMessage `json:"abi"`
}

// NewContractSpecFromJSON parses an inline {name, abi} JSON value.
func NewContractSpecFromJSON(raw []byte) (ContractSpec, error) {
	var src specSourceJSON
	if err := json.Unmarshal(raw, &src); err != nil {
		return ContractSpec{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "invalid contract spec JSON", err)
	}
	if src.Name == "" {
		return ContractSpec{}, vdrerrors.New(vdrerrors.ContractInvalidSpec, "contract spec missing `name`")
	}
	parsed, err := ethabi.JSON(strings.NewReader(string(src.ABI)))
	if err != nil {
		return ContractSpec{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "invalid contract ABI JSON", err)
	}
	return ContractSpec{Name: src.Name, ABI: parsed}, nil
}

// NewContractSpecFromFile loads a {name, abi} JSON document from disk.
// This is the solc/hardhat-artifact shape: a JSON file whose top level
// object carries `contractName` (mapped to Name) and `abi`.
func NewContractSpecFromFile(path string) (ContractSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContractSpec{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "unable to read contract spec file: "+path, err)
	}
	var artifact struct {
		ContractName string          `json:"contractName"`
		Name         string          `json:"name"`
		ABI          json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return ContractSpec{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "invalid contract spec file: "+path, err)
	}
	name := artifact.Name
	if name == "" {
		name = artifact.ContractName
	}
	if name == "" {
		return ContractSpec{}, vdrerrors.New(vdrerrors.ContractInvalidSpec, "contract spec file missing name: "+path)
	}
	parsed, err := ethabi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		return ContractSpec{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "invalid contract ABI in file: "+path, err)
	}
	return ContractSpec{Name: name, ABI: parsed}, nil
}

// ContractConfig describes one entry of the contract registry as
// loaded from client configuration. Exactly one of SpecPath/Spec must
// be set; violating that is a configuration error (ContractInvalidSpec).
type ContractConfig struct {
	Address  string          `yaml:"address" json:"address"`
	SpecPath string          `yaml:"specPath,omitempty" json:"specPath,omitempty"`
	Spec     json.RawMessage `yaml:"spec,omitempty" json:"spec,omitempty"`
}

// resolveSpec applies the exactly-one-of validation and returns the
// parsed ContractSpec.
func (c ContractConfig) resolveSpec() (ContractSpec, error) {
	hasPath := c.SpecPath != ""
	hasInline := len(c.Spec) > 0
	switch {
	case hasPath && hasInline:
		return ContractSpec{}, vdrerrors.New(vdrerrors.ContractInvalidSpec, "either `specPath` or `spec` must be provided, not both")
	case hasPath:
		return NewContractSpecFromFile(c.SpecPath)
	case hasInline:
		return NewContractSpecFromJSON(c.Spec)
	default:
		return ContractSpec{}, vdrerrors.New(vdrerrors.ContractInvalidSpec, "either `specPath` or `spec` must be provided")
	}
}
