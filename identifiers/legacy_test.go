package identifiers

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestLegacyVerkeyDecodesBase58(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	encoded := base58.Encode(raw)

	vk, err := NewLegacyVerkey(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, vk.Bytes())
	require.Equal(t, encoded, vk.String())
}

func TestLegacyVerkeyRejectsInvalidBase58(t *testing.T) {
	_, err := NewLegacyVerkey("not-valid-base58-\x00")
	require.Error(t, err)
}

func TestLegacyDIDIsOpaque(t *testing.T) {
	did := NewLegacyDID("did:sov:2wJPyULfLLnYTEFYzByfUR")
	require.Equal(t, "did:sov:2wJPyULfLLnYTEFYzByfUR", did.String())
}
