package did

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/transaction"
	"github.com/hyperledger/indy-besu-vdr-go/types"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

const (
	indyContractName    = "IndyDidRegistry"
	methodCreateDid     = "createDid"
	methodUpdateDid     = "updateDid"
	methodDeactivateDid = "deactivateDid"
	methodResolveDid    = "resolveDid"
)

// BuildCreateDidTransaction builds a Write transaction invoking
// IndyDidRegistry.createDid(identity, documentBytes).
func BuildCreateDidTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, did string, doc DidDocument) (*transaction.Transaction, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	log.Debug("createDid txn build has started", logger.String("did", did))
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(indyContractName).
		Method(methodCreateDid).
		Params(from.Common(), payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildCreateDidEndorsingData builds the author-signed preimage for a
// createDid call a distinct sender will later submit.
func BuildCreateDidEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, did string, doc DidDocument) (*transaction.TransactionEndorsingData, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(indyContractName).
		Identity(identity).
		Method(methodCreateDid).
		EndorsingMethod(methodCreateDid + "Signed").
		Params(payload).
		Build(client)
}

// BuildCreateDidSignedTransaction builds the Write transaction a
// sender submits on the author's behalf once endorsed.
func BuildCreateDidSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, did string, doc DidDocument, sig types.SignatureData) (*transaction.Transaction, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	return transaction.BuildSignedTransaction(ctx, client, indyContractName, methodCreateDid, sender, identity, sig, payload)
}

// BuildUpdateDidTransaction builds a Write transaction invoking
// IndyDidRegistry.updateDid(identity, documentBytes).
func BuildUpdateDidTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, did string, doc DidDocument) (*transaction.Transaction, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(indyContractName).
		Method(methodUpdateDid).
		Params(from.Common(), payload).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildUpdateDidEndorsingData builds the author-signed preimage for an
// updateDid call.
func BuildUpdateDidEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, did string, doc DidDocument) (*transaction.TransactionEndorsingData, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(indyContractName).
		Identity(identity).
		Method(methodUpdateDid).
		EndorsingMethod(methodUpdateDid + "Signed").
		Params(payload).
		Build(client)
}

// BuildUpdateDidSignedTransaction builds the sender-submitted,
// author-endorsed updateDid transaction.
func BuildUpdateDidSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, did string, doc DidDocument, sig types.SignatureData) (*transaction.Transaction, error) {
	payload, err := marshalDocument(did, doc)
	if err != nil {
		return nil, err
	}
	return transaction.BuildSignedTransaction(ctx, client, indyContractName, methodUpdateDid, sender, identity, sig, payload)
}

// BuildDeactivateDidTransaction builds a Write transaction invoking
// IndyDidRegistry.deactivateDid(identity).
func BuildDeactivateDidTransaction(ctx context.Context, client transaction.BuilderClient, from types.Address, did string) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Write).
		Contract(indyContractName).
		Method(methodDeactivateDid).
		Params(from.Common()).
		From(from).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildDeactivateDidEndorsingData builds the author-signed preimage
// for a deactivateDid call.
func BuildDeactivateDidEndorsingData(client transaction.EndorsingContractResolver, identity types.Address, did string) (*transaction.TransactionEndorsingData, error) {
	return transaction.NewTransactionEndorsingDataBuilder().
		Contract(indyContractName).
		Identity(identity).
		Method(methodDeactivateDid).
		EndorsingMethod(methodDeactivateDid + "Signed").
		Build(client)
}

// BuildDeactivateDidSignedTransaction builds the sender-submitted,
// author-endorsed deactivateDid transaction.
func BuildDeactivateDidSignedTransaction(ctx context.Context, client transaction.BuilderClient, sender, identity types.Address, sig types.SignatureData) (*transaction.Transaction, error) {
	return transaction.BuildSignedTransaction(ctx, client, indyContractName, methodDeactivateDid, sender, identity, sig)
}

// BuildResolveDidTransaction builds a Read transaction invoking
// IndyDidRegistry.resolveDid(identity).
func BuildResolveDidTransaction(ctx context.Context, client transaction.BuilderClient, identity types.Address) (*transaction.Transaction, error) {
	tx, err := transaction.NewTransactionBuilder(transaction.Read).
		Contract(indyContractName).
		Method(methodResolveDid).
		Params(identity.Common()).
		Build(ctx, client)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseResolveDidResult decodes the document bytes of the resolveDid()
// reply into a DidDocument. The reply is not checked for a deactivation
// status: the stored document is returned as decoded.
func ParseResolveDidResult(client transaction.ContractResolver, data []byte) (DidDocument, error) {
	result, err := transaction.NewTransactionParser(indyContractName, methodResolveDid).Parse(client, data, convertResolveDidResult)
	if err != nil {
		return DidDocument{}, err
	}
	return result.(DidDocument), nil
}

func convertResolveDidResult(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveDid: empty output")
	}
	raw, ok := values[0].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveDid: unexpected bytes type")
	}
	if len(raw) == 0 {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "resolveDid: document not found")
	}
	var doc DidDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, "unable to parse did document from response", err)
	}
	return doc, nil
}

func marshalDocument(did string, doc DidDocument) ([]byte, error) {
	if doc.ID == "" {
		doc.ID = did
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidData, "unable to serialize did document", err)
	}
	return payload, nil
}
