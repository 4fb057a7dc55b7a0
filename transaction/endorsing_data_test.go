package transaction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	vtypes "github.com/hyperledger/indy-besu-vdr-go/types"
)

func TestEndorsingDataJSONRoundTrip(t *testing.T) {
	to := vtypes.MustParseAddress("0x0000000000000000000000000000000000001234")
	from := vtypes.MustParseAddress("0x0000000000000000000000000000000000005678")
	nonce := vtypes.NonceFromBigInt(big.NewInt(7))
	sig, err := vtypes.NewSignatureData(1, make([]byte, 64))
	require.NoError(t, err)

	original := &TransactionEndorsingData{
		To:              to,
		From:            from,
		Nonce:           &nonce,
		Contract:        "did-indy-registry",
		Method:          "createDid",
		EndorsingMethod: "createDid_Signed",
		Params: []interface{}{
			uint64(42),
			uint32(7),
			uint8(1),
			to,
			[]byte{0xde, 0xad, 0xbe, 0xef},
			"did:indy:testnet:abc",
			big.NewInt(1000000),
		},
		Signature: &sig,
	}

	wantHash, err := original.SigningBytes()
	require.NoError(t, err)

	raw, err := original.ToJSON()
	require.NoError(t, err)

	roundTripped, err := EndorsingDataFromJSON(raw)
	require.NoError(t, err)

	gotHash, err := roundTripped.SigningBytes()
	require.NoError(t, err)

	require.Equal(t, wantHash, gotHash)
	require.Equal(t, original.Params, roundTripped.Params)
}

func TestEndorsingDataJSONRoundTripWithoutNonce(t *testing.T) {
	to := vtypes.MustParseAddress("0x0000000000000000000000000000000000001234")
	from := vtypes.MustParseAddress("0x0000000000000000000000000000000000005678")

	original := &TransactionEndorsingData{
		To:              to,
		From:            from,
		Contract:        "did-ethr-registry",
		Method:          "setAttribute",
		EndorsingMethod: "setAttributeSigned",
		Params:          []interface{}{"did/svc/DIDCommMessaging", []byte("https://example.com")},
	}

	raw, err := original.ToJSON()
	require.NoError(t, err)

	roundTripped, err := EndorsingDataFromJSON(raw)
	require.NoError(t, err)
	require.Nil(t, roundTripped.Nonce)
	require.Nil(t, roundTripped.Signature)

	wantHash, err := original.SigningBytes()
	require.NoError(t, err)
	gotHash, err := roundTripped.SigningBytes()
	require.NoError(t, err)
	require.Equal(t, wantHash, gotHash)
}
