// Package endorsing implements the sender-side half of the
// endorsement protocol (§4.5): given an author's signed
// TransactionEndorsingData, build the Write transaction a distinct
// sender submits on the author's behalf.
package endorsing

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

var log = logger.New("contracts.endorsing")

// BuildEndorsementTransaction builds the Write transaction invoking
// data's endorsing method with the author's packed signature ahead of
// its own params: (identity, v, r, s, ...params), submitted by
// sender rather than the identity owner. data must already carry the
// author's signature (TransactionEndorsingData.SetSignature).
func BuildEndorsementTransaction(ctx context.Context, client transaction.BuilderClient, sender types.Address, data *transaction.TransactionEndorsingData) (*transaction.Transaction, error) {
	if data.Signature == nil {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidEndorsementData, "missing author signature")
	}
	sig := *data.Signature

	var r, s [32]byte
	copy(r[:], sig.R())
	copy(s[:], sig.S())

	log.Debug("endorsement txn build has started",
		logger.String("contract", data.Contract),
		logger.String("method", data.EndorsingMethod),
		logger.String("identity", data.From.String()))

	params := make([]interface{}, 0, 3+len(data.Params))
	params = append(params, data.From.Common(), uint8(sig.EndorsingV()), r, s)
	params = append(params, data.Params...)

	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(data.Contract).
		Method(data.EndorsingMethod).
		Params(params...).
		From(sender).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("endorsement txn build has finished")
	return tx, nil
}
