package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSignatureDataValidates(t *testing.T) {
	_, err := NewSignatureData(0, make([]byte, 63))
	require.Error(t, err)

	_, err = NewSignatureData(2, make([]byte, 64))
	require.Error(t, err)

	sig, err := NewSignatureData(1, make([]byte, 64))
	require.NoError(t, err)
	require.Equal(t, uint8(1), sig.RecoveryID)
}

func TestSignatureDataRSSplit(t *testing.T) {
	raw := make([]byte, 64)
	for i := range raw {
		raw[i] = byte(i)
	}
	sig, err := NewSignatureData(0, raw)
	require.NoError(t, err)
	require.Equal(t, raw[:32], sig.R())
	require.Equal(t, raw[32:], sig.S())
}

// TestEIP155V verifies spec scenario 6: chain id 1337, recovery id 1
// yields v = 1 + 35 + 2*1337 = 2710.
func TestEIP155V(t *testing.T) {
	sig, err := NewSignatureData(1, make([]byte, 64))
	require.NoError(t, err)
	require.Equal(t, uint64(2710), sig.EIP155V(ChainID(1337)))
}

func TestEndorsingV(t *testing.T) {
	sig, err := NewSignatureData(1, make([]byte, 64))
	require.NoError(t, err)
	require.Equal(t, uint64(28), sig.EndorsingV())

	sig0, err := NewSignatureData(0, make([]byte, 64))
	require.NoError(t, err)
	require.Equal(t, uint64(27), sig0.EndorsingV())
}
