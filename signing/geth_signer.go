package signing

import (
	"crypto/ecdsa"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// GethSigner is an alternative Signer for callers who already hold a
// go-ethereum-style *ecdsa.PrivateKey, so they don't need to round-trip
// their key through the decred key type. It exists purely for
// interoperability: ECDSASigner remains the default.
type GethSigner struct {
	privateKey *ecdsa.PrivateKey
	address    types.Address
}

// NewGethSigner wraps an existing go-ethereum private key.
func NewGethSigner(privateKey *ecdsa.PrivateKey) (*GethSigner, error) {
	if privateKey == nil {
		return nil, vdrerrors.New(vdrerrors.SignerMissingKey, "private key is nil")
	}
	return &GethSigner{
		privateKey: privateKey,
		address:    types.AddressFromCommon(gethcrypto.PubkeyToAddress(privateKey.PublicKey)),
	}, nil
}

// Address returns the signer's account address.
func (s *GethSigner) Address() types.Address { return s.address }

// Sign produces a recoverable ECDSA signature over a 32-byte hash
// using go-ethereum/crypto.Sign, which already returns the
// (r, s, recovery_id) triple in the 65-byte layout this type needs.
func (s *GethSigner) Sign(hash []byte) (types.SignatureData, error) {
	if len(hash) != 32 {
		return types.SignatureData{}, vdrerrors.Newf(vdrerrors.SignerInvalidMessage, "hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := gethcrypto.Sign(hash, s.privateKey)
	if err != nil {
		return types.SignatureData{}, vdrerrors.Wrap(vdrerrors.SignerUnexpectedError, "failed to sign hash", err)
	}
	recoveryID := sig[64]
	return types.NewSignatureData(recoveryID, sig[:64])
}
