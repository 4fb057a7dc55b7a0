package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/abi"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

const roleControlABI = `[
	{"type":"function","name":"assignRole","inputs":[{"name":"role","type":"uint8"},{"name":"account","type":"address"}],"outputs":[]},
	{"type":"function","name":"revokeRole","inputs":[{"name":"role","type":"uint8"},{"name":"account","type":"address"}],"outputs":[]},
	{"type":"function","name":"getRole","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"hasRole","inputs":[{"name":"role","type":"uint8"},{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]}
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
	spec, err := abi.NewContractSpecFromJSON([]byte(`{"name":"RoleControl","abi":` + roleControlABI + `}`))
	require.NoError(t, err)
	addr := types.MustParseAddress("0x0000000000000000000000000000000000005678")
	return &fakeClient{contract: abi.NewContract(addr, spec), chainID: 1337}
}

func TestBuildAssignRoleTransaction(t *testing.T) {
	client := newFakeClient(t)
	from := types.MustParseAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	account := types.MustParseAddress("0x93917cadbace5dfce132b991732c6cda9bcc5b8a")

	tx, err := BuildAssignRoleTransaction(context.Background(), client, from, types.RoleTrustee, account)
	require.NoError(t, err)
	require.Equal(t, transaction.Write, tx.Type)
	require.NotNil(t, tx.Nonce)
}

func TestBuildHasRoleTransactionIsRead(t *testing.T) {
	client := newFakeClient(t)
	account := types.MustParseAddress("0x93917cadbace5dfce132b991732c6cda9bcc5b8a")

	tx, err := BuildHasRoleTransaction(context.Background(), client, types.RoleEndorser, account)
	require.NoError(t, err)
	require.Equal(t, transaction.Read, tx.Type)
	require.Nil(t, tx.From)
}
