package types

import "github.com/hyperledger/indy-besu-vdr-go/vdrerrors"

// Role is an on-chain account role as tracked by the RoleControl
// registry. It round-trips through an 8-bit index.
type Role uint8

const (
	RoleEmpty    Role = 0
	RoleTrustee  Role = 1
	RoleEndorser Role = 2
	RoleSteward  Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleEmpty:
		return "EMPTY"
	case RoleTrustee:
		return "TRUSTEE"
	case RoleEndorser:
		return "ENDORSER"
	case RoleSteward:
		return "STEWARD"
	default:
		return "UNKNOWN"
	}
}

// RoleFromUint8 validates and converts a raw on-chain role index.
func RoleFromUint8(v uint8) (Role, error) {
	switch Role(v) {
	case RoleEmpty, RoleTrustee, RoleEndorser, RoleSteward:
		return Role(v), nil
	default:
		return 0, vdrerrors.Newf(vdrerrors.CommonInvalidData, "unknown role index: %d", v)
	}
}
