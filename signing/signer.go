// Package signing provides the recoverable-ECDSA Signer capability
// the transaction and endorsement layers depend on to turn a signing
// hash into the (recovery_id, r, s) triple installed on transactions
// and endorsement data.
package signing

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// Signer is the narrow capability every caller that must produce a
// recoverable signature implements: given a 32-byte hash, return a
// SignatureData. It is accepted by callers through this interface
// rather than a concrete key type, so tests and alternate key custody
// schemes can supply their own implementation.
type Signer interface {
	Sign(hash []byte) (types.SignatureData, error)
	Address() types.Address
}

// ECDSASigner signs with a secp256k1 private key held in memory.
type ECDSASigner struct {
	privateKey *secp256k1.PrivateKey
	address    types.Address
}

// NewECDSASigner builds a signer from a 32-byte raw private key,
// deriving the account address as Keccak256(pubkey)[12:] the same way
// every EVM account address is derived.
func NewECDSASigner(privateKeyBytes []byte) (*ECDSASigner, error) {
	if len(privateKeyBytes) != 32 {
		return nil, vdrerrors.Newf(vdrerrors.SignerInvalidPrivateKey, "private key must be 32 bytes, got %d", len(privateKeyBytes))
	}
	priv := secp256k1.PrivKeyFromBytes(privateKeyBytes)
	return &ECDSASigner{
		privateKey: priv,
		address:    addressFromPublicKey(priv.PubKey()),
	}, nil
}

// Address returns the signer's account address.
func (s *ECDSASigner) Address() types.Address { return s.address }

// Sign produces a recoverable ECDSA signature over a 32-byte hash.
func (s *ECDSASigner) Sign(hash []byte) (types.SignatureData, error) {
	if len(hash) != 32 {
		return types.SignatureData{}, vdrerrors.Newf(vdrerrors.SignerInvalidMessage, "hash must be 32 bytes, got %d", len(hash))
	}
	compact := ecdsa.SignCompact(s.privateKey, hash, false)
	// compact[0] is 27 + recovery_id (+ 4 if the key was compressed,
	// which it wasn't here); compact[1:33] and compact[33:65] are r, s.
	recoveryID := (compact[0] - 27) & 0x03
	if recoveryID > 1 {
		return types.SignatureData{}, vdrerrors.Newf(vdrerrors.SignerUnexpectedError, "unexpected recovery id %d", recoveryID)
	}
	sig := make([]byte, 64)
	copy(sig, compact[1:65])
	return types.NewSignatureData(recoveryID, sig)
}

func addressFromPublicKey(pub *secp256k1.PublicKey) types.Address {
	uncompressed := pub.SerializeUncompressed()
	hash := crypto.Keccak256(uncompressed[1:])
	return types.AddressFromCommon(common.BytesToAddress(hash[12:]))
}
