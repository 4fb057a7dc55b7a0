package did

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-besu-vdr-go/identifiers"
	"github.com/hyperledger/indy-besu-vdr-go/types"
)

func testEthrDID(t *testing.T) identifiers.DIDEthr {
	t.Helper()
	addr := types.MustParseAddress("0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	return identifiers.NewDIDEthr("testnet", addr)
}

func TestFoldEthrEventsBaseDocumentHasControllerKey(t *testing.T) {
	did := testEthrDID(t)
	doc := foldEthrEvents(did, nil)

	require.Equal(t, did.String(), doc.ID)
	require.Len(t, doc.VerificationMethod, 1)
	require.Equal(t, did.String()+"#delegate-0", doc.VerificationMethod[0].ID)
	require.Equal(t, vmTypeSecp256k1Recovery, doc.VerificationMethod[0].Type)
	require.Equal(t, did.Address.String(), doc.VerificationMethod[0].BlockchainAccountID)
	require.Contains(t, doc.Authentication, did.String()+"#delegate-0")
}

func TestFoldEthrEventsOwnerChangeUpdatesController(t *testing.T) {
	did := testEthrDID(t)
	newOwner := types.MustParseAddress("0x1111111111111111111111111111111111111111")
	events := []orderedEvent{
		{blockNumber: 1, logIndex: 0, payload: didOwnerChangedEvent{identity: did.Address, owner: newOwner}},
	}
	doc := foldEthrEvents(did, events)

	require.Equal(t, identifiers.NewDIDEthr(did.Network, newOwner).String(), doc.Controller[0])
	require.Equal(t, newOwner.String(), doc.VerificationMethod[0].BlockchainAccountID)
}

func TestFoldEthrEventsZeroOwnerDeactivates(t *testing.T) {
	did := testEthrDID(t)
	events := []orderedEvent{
		{blockNumber: 1, logIndex: 0, payload: didOwnerChangedEvent{identity: did.Address, owner: types.Address{}}},
	}
	doc := foldEthrEvents(did, events)

	require.Equal(t, did.String(), doc.ID)
	require.Empty(t, doc.VerificationMethod)
	require.Empty(t, doc.Service)
}

func TestFoldEthrEventsAttributeAddsServiceAndKey(t *testing.T) {
	did := testEthrDID(t)
	events := []orderedEvent{
		{blockNumber: 1, logIndex: 0, payload: didAttributeChangedEvent{
			identity: did.Address, name: "did/svc/LinkedDomains", value: []byte("https://example.com"), validTo: 9999999999,
		}},
		{blockNumber: 1, logIndex: 1, payload: didAttributeChangedEvent{
			identity: did.Address, name: "did/pub/Secp256k1/veriKey/hex", value: []byte{0xAB, 0xCD}, validTo: 9999999999,
		}},
	}
	doc := foldEthrEvents(did, events)

	require.Len(t, doc.Service, 1)
	require.Equal(t, "LinkedDomains", doc.Service[0].Type)
	require.Equal(t, "https://example.com", doc.Service[0].ServiceEndpoint)

	require.Len(t, doc.VerificationMethod, 2)
	require.Equal(t, "0xabcd", doc.VerificationMethod[1].PublicKeyHex)
}

func TestFoldEthrEventsExpiredAttributeIsRevoked(t *testing.T) {
	did := testEthrDID(t)
	events := []orderedEvent{
		{blockNumber: 1, logIndex: 0, payload: didAttributeChangedEvent{
			identity: did.Address, name: "did/svc/LinkedDomains", value: []byte("https://example.com"), validTo: 9999999999,
		}},
		{blockNumber: 2, logIndex: 0, payload: didAttributeChangedEvent{
			identity: did.Address, name: "did/svc/LinkedDomains", value: []byte("https://example.com"), validTo: 0,
		}},
	}
	doc := foldEthrEvents(did, events)

	require.Empty(t, doc.Service)
}

func TestFoldEthrEventsDelegateAddsVerificationMethod(t *testing.T) {
	did := testEthrDID(t)
	delegate := types.MustParseAddress("0x2222222222222222222222222222222222222222")
	events := []orderedEvent{
		{blockNumber: 1, logIndex: 0, payload: didDelegateChangedEvent{
			identity: did.Address, delegateType: delegateTypeSigAuth, delegate: delegate, validTo: 9999999999,
		}},
	}
	doc := foldEthrEvents(did, events)

	require.Len(t, doc.VerificationMethod, 2)
	require.Equal(t, vmTypeSigAuthDelegate, doc.VerificationMethod[1].Type)
	require.Equal(t, delegate.String(), doc.VerificationMethod[1].BlockchainAccountID)
}
