// Package validator implements the ValidatorControl registry: adding,
// removing and listing the set of consensus validators (§4.6, §8
// scenarios 1-3).
package validator

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	contractName         = "ValidatorControl"
	methodAddValidator    = "addValidator"
	methodRemoveValidator = "removeValidator"
	methodGetValidators   = "getValidators"
)

var log = logger.New("contracts.validator")

// BuildAddValidatorTransaction builds a Write transaction invoking
// ValidatorControl.addValidator(validatorAddress).
func BuildAddValidatorTransaction(ctx context.Context, client transaction.BuilderClient, from, validatorAddress types.Address) (*transaction.Transaction, error) {
	log.Debug("addValidator txn build has started", logger.String("from", from.String()), logger.String("validator", validatorAddress.String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodAddValidator).
		Params(validatorAddress.Common()).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("addValidator txn build has finished")
	return tx, nil
}

// BuildRemoveValidatorTransaction builds a Write transaction invoking
// ValidatorControl.removeValidator(validatorAddress).
func BuildRemoveValidatorTransaction(ctx context.Context, client transaction.BuilderClient, from, validatorAddress types.Address) (*transaction.Transaction, error) {
	log.Debug("removeValidator txn build has started", logger.String("from", from.String()), logger.String("validator", validatorAddress.String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodRemoveValidator).
		Params(validatorAddress.Common()).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("removeValidator txn build has finished")
	return tx, nil
}

// BuildGetValidatorsTransaction builds a Read transaction invoking
// ValidatorControl.getValidators().
func BuildGetValidatorsTransaction(ctx context.Context, client transaction.BuilderClient) (*transaction.Transaction, error) {
	log.Debug("getValidators txn build has started")
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodGetValidators).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("getValidators txn build has finished")
	return tx, nil
}

// ParseGetValidatorsResult decodes the getValidators() reply into the
// ordered validator address list.
func ParseGetValidatorsResult(client transaction.ContractResolver, data []byte) ([]types.Address, error) {
	log.Debug("getValidators result parse has started")
	result, err := transaction.NewTransactionParser(contractName, methodGetValidators).Parse(client, data, convertValidators)
	if err != nil {
		return nil, err
	}
	log.Info("getValidators result parse has finished")
	return result.([]types.Address), nil
}

func convertValidators(values []interface{}) (interface{}, error) {
	if len(values) != 1 {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "getValidators: expected 1 output value, got %d", len(values))
	}
	raw, ok := values[0].([]common.Address)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "getValidators: unexpected output type")
	}
	addresses := make([]types.Address, len(raw))
	for i, a := range raw {
		addresses[i] = types.AddressFromCommon(a)
	}
	return addresses, nil
}
