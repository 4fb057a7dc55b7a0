// Package identifiers implements the typed identifier model of §3/§6:
// ethr-method DIDs, legacy Indy DIDs and verkeys, and the deterministic
// anoncreds identifier derivation shared by schemas, credential
// definitions and revocation registry definitions.
package identifiers

import (
	"strings"

	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const didEthrPrefix = "did:ethr:"

// DIDEthr is a did:ethr identifier: `did:ethr[:<network>]:<0x-address>`.
// It round-trips with a types.Address, carrying the optional network
// segment (e.g. "testnet") separately so formatting doesn't have to
// guess where the address starts.
type DIDEthr struct {
	Network string
	Address types.Address
}

// NewDIDEthr builds a DIDEthr from an address and an optional network
// segment ("" omits the segment entirely).
func NewDIDEthr(network string, address types.Address) DIDEthr {
	return DIDEthr{Network: network, Address: address}
}

// ParseDIDEthr parses `did:ethr[:<network>]:<0x-address>`.
func ParseDIDEthr(did string) (DIDEthr, error) {
	if !strings.HasPrefix(did, didEthrPrefix) {
		return DIDEthr{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "not a did:ethr identifier: %q", did)
	}
	rest := strings.TrimPrefix(did, didEthrPrefix)
	segments := strings.Split(rest, ":")

	var network, addrSegment string
	switch len(segments) {
	case 1:
		addrSegment = segments[0]
	case 2:
		network, addrSegment = segments[0], segments[1]
	default:
		return DIDEthr{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "malformed did:ethr identifier: %q", did)
	}

	address, err := types.ParseAddress(addrSegment)
	if err != nil {
		return DIDEthr{}, vdrerrors.Wrap(vdrerrors.CommonInvalidData, "invalid did:ethr address segment", err)
	}
	return DIDEthr{Network: network, Address: address}, nil
}

// String renders the identifier, omitting the network segment when empty.
func (d DIDEthr) String() string {
	if d.Network == "" {
		return didEthrPrefix + d.Address.String()
	}
	return didEthrPrefix + d.Network + ":" + d.Address.String()
}

// MatchesID reports whether `candidate` identifies the same subject as
// d once parsed, the ethr-method instance of every domain object's
// matches_id check (§4.6, §8).
func (d DIDEthr) MatchesID(candidate string) bool {
	other, err := ParseDIDEthr(candidate)
	if err != nil {
		return false
	}
	return other.Network == d.Network && other.Address.Equal(d.Address)
}
