package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

const validatorControlABI = `[
	{"type":"function","name":"addValidator","inputs":[{"name":"validatorAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"removeValidator","inputs":[{"name":"validatorAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"getValidators","inputs":[],"outputs":[{"name":"","type":"address[]"}]}
]`

type fakeClient struct {
	contract *abi.Contract
	chainID  types.ChainID
	nonce    types.Nonce
}

func (f *fakeClient) Contract(name string) (*abi.Contract, error) { return f.contract, nil }
func (f *fakeClient) ChainID() types.ChainID                      { return f.chainID }
func (f *fakeClient) GetTransactionCount(ctx context.Context, address types.Address) (types.Nonce, error) {
	return f.nonce, nil
}

func newFakeClient(t *testing.T) *fakeClient {
	spec, err := abi.NewContractSpecFromJSON([]byte(`{"name":"ValidatorControl","abi":` + validatorControlABI + `}`))
	require.NoError(t, err)
	addr := types.MustParseAddress("0x0000000000000000000000000000000000001234")
	return &fakeClient{
		contract: abi.NewContract(addr, spec),
		chainID:  1337,
		nonce:    types.NonceFromUint64(0),
	}
}

func TestBuildAddValidatorTransaction(t *testing.T) {
	client := newFakeClient(t)
	from := types.MustParseAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	validatorAddress := types.MustParseAddress("0x93917cadbace5dfce132b991732c6cda9bcc5b8a")

	tx, err := BuildAddValidatorTransaction(context.Background(), client, from, validatorAddress)
	require.NoError(t, err)

	expected := []byte{
		77, 35, 140, 142, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 147, 145, 124, 173, 186, 206,
		93, 252, 225, 50, 185, 145, 115, 44, 108, 218, 155, 204, 91, 138,
	}
	require.Equal(t, expected, tx.Data)
	require.Equal(t, transaction.Write, tx.Type)
}

func TestBuildGetValidatorsTransaction(t *testing.T) {
	client := newFakeClient(t)
	tx, err := BuildGetValidatorsTransaction(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, []byte{183, 171, 77, 181}, tx.Data)
	require.Nil(t, tx.From)
	require.Nil(t, tx.Nonce)
}

func TestParseGetValidatorsResult(t *testing.T) {
	client := newFakeClient(t)
	raw := []byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 32,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 147, 145, 124, 173,
		186, 206, 93, 252, 225, 50, 185, 145, 115, 44, 108, 218, 155, 204, 91, 138,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 39, 169, 124, 154,
		175, 4, 241, 143, 48, 20, 195, 46, 3, 109, 208, 172, 118, 218, 95, 24,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 206, 65, 47, 152,
		131, 119, 227, 31, 77, 15, 241, 45, 116, 223, 115, 181, 28, 66, 208, 202,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 152, 193, 51, 68,
		150, 97, 74, 237, 73, 210, 232, 21, 38, 208, 137, 247, 38, 79, 237, 156,
	}

	validators, err := ParseGetValidatorsResult(client, raw)
	require.NoError(t, err)
	require.Equal(t, []types.Address{
		types.MustParseAddress("0x93917cadbace5dfce132b991732c6cda9bcc5b8a"),
		types.MustParseAddress("0x27a97c9aaf04f18f3014c32e036dd0ac76da5f18"),
		types.MustParseAddress("0xce412f988377e31f4d0ff12d74df73b51c42d0ca"),
		types.MustParseAddress("0x98c1334496614aed49d2e81526d089f7264fed9c"),
	}, validators)
}
