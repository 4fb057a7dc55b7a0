package signing

import (
	"crypto/ecdsa"
	"crypto/rand"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/types"
)

func randomHash(t *testing.T) []byte {
	t.Helper()
	hash := make([]byte, 32)
	_, err := rand.Read(hash)
	require.NoError(t, err)
	return hash
}

func recoverAddress(t *testing.T, hash []byte, sig types.SignatureData) types.Address {
	t.Helper()
	recoverable := append(append([]byte{}, sig.R()...), sig.S()...)
	recoverable = append(recoverable, sig.RecoveryID)
	pub, err := crypto.SigToPub(hash, recoverable)
	require.NoError(t, err)
	return types.AddressFromCommon(crypto.PubkeyToAddress(*pub))
}

func TestNewECDSASignerRejectsWrongKeyLength(t *testing.T) {
	_, err := NewECDSASigner(make([]byte, 31))
	require.Error(t, err)
}

func TestECDSASignerSignRejectsWrongHashLength(t *testing.T) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.Reader)
	require.NoError(t, err)
	signer, err := NewECDSASigner(crypto.FromECDSA(key))
	require.NoError(t, err)

	_, err = signer.Sign(make([]byte, 31))
	require.Error(t, err)
}

func TestECDSASignerSignIsRecoverable(t *testing.T) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.Reader)
	require.NoError(t, err)
	signer, err := NewECDSASigner(crypto.FromECDSA(key))
	require.NoError(t, err)

	hash := randomHash(t)
	sig, err := signer.Sign(hash)
	require.NoError(t, err)
	require.LessOrEqual(t, sig.RecoveryID, uint8(1))
	require.Equal(t, signer.Address(), recoverAddress(t, hash, sig))
}

func TestGethSignerMatchesECDSASignerAddress(t *testing.T) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.Reader)
	require.NoError(t, err)

	ecdsaSigner, err := NewECDSASigner(crypto.FromECDSA(key))
	require.NoError(t, err)
	gethSigner, err := NewGethSigner(key)
	require.NoError(t, err)

	require.Equal(t, ecdsaSigner.Address(), gethSigner.Address())
}

func TestGethSignerSignIsRecoverable(t *testing.T) {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.Reader)
	require.NoError(t, err)
	signer, err := NewGethSigner(key)
	require.NoError(t, err)

	hash := randomHash(t)
	sig, err := signer.Sign(hash)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), recoverAddress(t, hash, sig))
}

func TestNewGethSignerRejectsNilKey(t *testing.T) {
	_, err := NewGethSigner(nil)
	require.Error(t, err)
}
