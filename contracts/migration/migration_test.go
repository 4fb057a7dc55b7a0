package migration

import (
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/types"
)

func TestSignAndVerifyLegacyVerkeyPossession(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	identity := types.MustParseAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	sig := SignLegacyVerkeyPossession(priv, identity)
	require.True(t, VerifyLegacyVerkeyPossession(pub, identity, sig))

	other := types.MustParseAddress("0x1111111111111111111111111111111111111111")
	require.False(t, VerifyLegacyVerkeyPossession(pub, other, sig))
}

func TestConvertDidMappingResult(t *testing.T) {
	addr := common.HexToAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	result, err := convertDidMappingResult([]interface{}{addr})
	require.NoError(t, err)
	did := result.(interface{ String() string })
	require.Equal(t, "did:ethr:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5", did.String())

	_, err = convertDidMappingResult([]interface{}{common.Address{}})
	require.Error(t, err)
}

func TestConvertClMappingResult(t *testing.T) {
	result, err := convertClMappingResult([]interface{}{"new-identifier"})
	require.NoError(t, err)
	require.Equal(t, Identifier("new-identifier"), result.(Identifier))

	_, err = convertClMappingResult([]interface{}{""})
	require.Error(t, err)
}
