// Package role implements the RoleControl registry: assigning,
// revoking, and querying on-chain account roles (§4.6).
package role

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	contractName      = "RoleControl"
	methodAssignRole  = "assignRole"
	methodRevokeRole  = "revokeRole"
	methodGetRole     = "getRole"
	methodHasRole     = "hasRole"
)

var log = logger.New("contracts.role")

// BuildAssignRoleTransaction builds a Write transaction invoking
// RoleControl.assignRole(role, account).
func BuildAssignRoleTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, role types.Role, account types.Address) (*transaction.Transaction, error) {
	log.Debug("assignRole txn build has started", logger.String("account", account.String()), logger.Any("role", uint8(role)))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodAssignRole).
		Params(uint8(role), account.Common()).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("assignRole txn build has finished")
	return tx, nil
}

// BuildRevokeRoleTransaction builds a Write transaction invoking
// RoleControl.revokeRole(role, account).
func BuildRevokeRoleTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, role types.Role, account types.Address) (*transaction.Transaction, error) {
	log.Debug("revokeRole txn build has started", logger.String("account", account.String()), logger.Any("role", uint8(role)))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(contractName).
		Method(methodRevokeRole).
		Params(uint8(role), account.Common()).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("revokeRole txn build has finished")
	return tx, nil
}

// BuildGetRoleTransaction builds a Read transaction invoking
// RoleControl.getRole(account).
func BuildGetRoleTransaction(ctx context.Context, client transaction.BuilderClient, account types.Address) (*transaction.Transaction, error) {
	log.Debug("getRole txn build has started", logger.String("account", account.String()))
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodGetRole).
		Params(account.Common()).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("getRole txn build has finished")
	return tx, nil
}

// BuildHasRoleTransaction builds a Read transaction invoking
// RoleControl.hasRole(role, account).
func BuildHasRoleTransaction(ctx context.Context, client transaction.BuilderClient, role types.Role, account types.Address) (*transaction.Transaction, error) {
	log.Debug("hasRole txn build has started", logger.String("account", account.String()), logger.Any("role", uint8(role)))
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(contractName).
		Method(methodHasRole).
		Params(uint8(role), account.Common()).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Info("hasRole txn build has finished")
	return tx, nil
}

// ParseGetRoleResult decodes the getRole() reply into a Role.
func ParseGetRoleResult(client transaction.ContractResolver, data []byte) (types.Role, error) {
	result, err := transaction.NewTransactionParser(contractName, methodGetRole).Parse(client, data, convertRole)
	if err != nil {
		return 0, err
	}
	return result.(types.Role), nil
}

// ParseHasRoleResult decodes the hasRole() reply into a bool.
func ParseHasRoleResult(client transaction.ContractResolver, data []byte) (bool, error) {
	result, err := transaction.NewTransactionParser(contractName, methodHasRole).Parse(client, data, convertHasRole)
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func convertRole(values []interface{}) (interface{}, error) {
	if len(values) != 1 {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "getRole: expected 1 output value, got %d", len(values))
	}
	raw, ok := values[0].(uint8)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "getRole: unexpected output type")
	}
	return types.RoleFromUint8(raw)
}

func convertHasRole(values []interface{}) (interface{}, error) {
	if len(values) != 1 {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "hasRole: expected 1 output value, got %d", len(values))
	}
	raw, ok := values[0].(bool)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "hasRole: unexpected output type")
	}
	return raw, nil
}
