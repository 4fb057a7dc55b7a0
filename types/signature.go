package types

import "github.com/hyperledger/indy-besu-vdr-go/vdrerrors"

// SignatureData is a recoverable ECDSA signature: a 0/1 recovery id
// plus the 64-byte (r || s) signature.
type SignatureData struct {
	RecoveryID uint8
	Signature  [64]byte
}

// NewSignatureData validates and builds a SignatureData from a raw
// 64-byte signature and recovery id.
func NewSignatureData(recoveryID uint8, signature []byte) (SignatureData, error) {
	if len(signature) != 64 {
		return SignatureData{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "signature must be 64 bytes, got %d", len(signature))
	}
	if recoveryID > 1 {
		return SignatureData{}, vdrerrors.Newf(vdrerrors.CommonInvalidData, "recovery id must be 0 or 1, got %d", recoveryID)
	}
	var sig SignatureData
	sig.RecoveryID = recoveryID
	copy(sig.Signature[:], signature)
	return sig, nil
}

// R returns the first 32 bytes of the signature.
func (s SignatureData) R() []byte {
	r := make([]byte, 32)
	copy(r, s.Signature[:32])
	return r
}

// S returns the last 32 bytes of the signature.
func (s SignatureData) S() []byte {
	r := make([]byte, 32)
	copy(r, s.Signature[32:])
	return r
}

// EIP155V computes the EIP-155 transaction `v` value for this
// recoverable signature under the given chain id:
// v = recovery_id + 35 + 2*chain_id.
func (s SignatureData) EIP155V(chainID ChainID) uint64 {
	return uint64(s.RecoveryID) + 35 + 2*uint64(chainID)
}

// EndorsingV returns the `v` value used in endorsement signature
// verification on-chain, which follows the legacy Ethereum
// `message signing` convention of recovery_id + 27 rather than EIP-155.
func (s SignatureData) EndorsingV() uint64 {
	return uint64(s.RecoveryID) + 27
}
