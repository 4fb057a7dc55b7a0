package abi

import (
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// Registry is the immutable name-keyed map of deployed contracts the
// client learns about at construction time (§4.1). Lookup by unknown
// name fails with ContractInvalidName.
type Registry struct {
	contracts map[string]*Contract
}

// NewRegistry builds a Registry from a list of ContractConfig entries,
// resolving each one's spec (inline or file) and validating the
// exactly-one-of-spec_path/spec invariant.
func NewRegistry(configs []ContractConfig) (*Registry, error) {
	contracts := make(map[string]*Contract, len(configs))
	for _, cfg := range configs {
		spec, err := cfg.resolveSpec()
		if err != nil {
			return nil, err
		}
		addr, err := types.ParseAddress(cfg.Address)
		if err != nil {
			return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, "invalid contract address for "+spec.Name, err)
		}
		contracts[spec.Name] = NewContract(addr, spec)
	}
	return &Registry{contracts: contracts}, nil
}

// Contract looks up a contract by its registered name.
func (r *Registry) Contract(name string) (*Contract, error) {
	c, ok := r.contracts[name]
	if !ok {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidName, "contract %q is not registered", name)
	}
	return c, nil
}

// Names returns every registered contract name, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.contracts))
	for name := range r.contracts {
		names = append(names, name)
	}
	return names
}
