package identifiers

import (
	"github.com/mr-tron/base58"

	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// LegacyDID wraps a pre-migration Indy DID (e.g. "did:sov:<base58>" or
// a bare base58 nym). The core never decodes it further than the
// string it was published with, the same posture as the Rust
// LegacyDid wrapper it's grounded on.
type LegacyDID struct {
	value string
}

// NewLegacyDID wraps an opaque legacy DID string.
func NewLegacyDID(value string) LegacyDID { return LegacyDID{value: value} }

func (d LegacyDID) String() string { return d.value }

// LegacyVerkey wraps a base58-encoded Indy Ed25519 verification key.
// Unlike LegacyDID it is validated eagerly: the contract needs the
// raw 32 bytes, not the base58 text, so a malformed verkey fails at
// construction rather than at submission time.
type LegacyVerkey struct {
	value string
	raw   []byte
}

// NewLegacyVerkey decodes and wraps a base58 verkey string.
func NewLegacyVerkey(value string) (LegacyVerkey, error) {
	raw, err := base58.Decode(value)
	if err != nil {
		return LegacyVerkey{}, vdrerrors.Wrap(vdrerrors.CommonInvalidData, "unable to decode base58 verkey", err)
	}
	if len(raw) != 32 {
		return LegacyVerkey{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "verkey must decode to 32 bytes, got %d", len(raw))
	}
	return LegacyVerkey{value: value, raw: raw}, nil
}

func (v LegacyVerkey) String() string { return v.value }

// Bytes returns the decoded key bytes, the form the contract call
// expects (packed as Solidity `bytes`, not `string`).
func (v LegacyVerkey) Bytes() []byte { return v.raw }
