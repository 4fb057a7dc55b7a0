package endorsing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

func TestBuildEndorsementTransactionRequiresSignature(t *testing.T) {
	sender := types.MustParseAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	data := &transaction.TransactionEndorsingData{
		From:            sender,
		Contract:        "SchemaRegistry",
		EndorsingMethod: "createSchemaSigned",
	}

	_, err := BuildEndorsementTransaction(context.Background(), nil, sender, data)
	require.Error(t, err)
}
