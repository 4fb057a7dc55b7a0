package transaction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
)

func newWriteTx(t *testing.T) *Transaction {
	t.Helper()
	to := vtypes.MustParseAddress("0x0000000000000000000000000000000000001234")
	from := vtypes.MustParseAddress("0x0000000000000000000000000000000000005678")
	nonce := vtypes.NonceFromBigInt(big.NewInt(3))
	return &Transaction{
		Type:    Write,
		From:    &from,
		To:      to,
		ChainID: vtypes.ChainID(1337),
		Data:    []byte{0x01, 0x02, 0x03},
		Nonce:   &nonce,
	}
}

// TestSigningBytesStable verifies the signing preimage invariant: the
// same transaction fields always produce the same signing bytes.
func TestSigningBytesStable(t *testing.T) {
	tx := newWriteTx(t)
	first, err := tx.SigningBytes()
	require.NoError(t, err)
	second, err := tx.SigningBytes()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 32)
}

func TestSigningBytesRequiresNonceForWrite(t *testing.T) {
	tx := newWriteTx(t)
	tx.Nonce = nil
	_, err := tx.SigningBytes()
	require.Error(t, err)
}

func TestSigningBytesRejectsReadType(t *testing.T) {
	tx := newWriteTx(t)
	tx.Type = Read
	_, err := tx.SigningBytes()
	require.Error(t, err)
}

// TestSetSignatureEmbedsEIP155V verifies v = recovery_id + 35 + 2*chain_id
// and that (r, s) are the raw 32-byte halves of the signature.
func TestSetSignatureEmbedsEIP155V(t *testing.T) {
	tx := newWriteTx(t)
	raw := make([]byte, 64)
	for i := range raw {
		raw[i] = byte(i)
	}
	sig, err := vtypes.NewSignatureData(1, raw)
	require.NoError(t, err)

	require.NoError(t, tx.SetSignature(sig))
	got := tx.GetSignature()
	require.NotNil(t, got)
	require.Equal(t, uint64(1+35+2*1337), got.V)
	require.Equal(t, raw[:32], got.R)
	require.Equal(t, raw[32:], got.S)
}

func TestSetSignatureRejectsSecondCall(t *testing.T) {
	tx := newWriteTx(t)
	sig, err := vtypes.NewSignatureData(0, make([]byte, 64))
	require.NoError(t, err)

	require.NoError(t, tx.SetSignature(sig))
	require.Error(t, tx.SetSignature(sig))
}

func TestEncodeRequiresSignature(t *testing.T) {
	tx := newWriteTx(t)
	_, err := tx.Encode()
	require.Error(t, err)
}

func TestEncodeProducesStableBytes(t *testing.T) {
	tx := newWriteTx(t)
	sig, err := vtypes.NewSignatureData(0, make([]byte, 64))
	require.NoError(t, err)
	require.NoError(t, tx.SetSignature(sig))

	encoded, err := tx.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
}

func TestTransactionEqual(t *testing.T) {
	a := newWriteTx(t)
	b := newWriteTx(t)
	require.True(t, a.Equal(b))

	sig, err := vtypes.NewSignatureData(0, make([]byte, 64))
	require.NoError(t, err)
	require.NoError(t, a.SetSignature(sig))
	require.False(t, a.Equal(b))

	require.NoError(t, b.SetSignature(sig))
	require.True(t, a.Equal(b))
}
