package did

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalDocumentFillsMissingID(t *testing.T) {
	doc := DidDocument{}
	payload, err := marshalDocument("did:indy:testnet:abc", doc)
	require.NoError(t, err)
	require.Contains(t, string(payload), `"id":"did:indy:testnet:abc"`)
}

func TestMarshalDocumentKeepsExplicitID(t *testing.T) {
	doc := DidDocument{ID: "did:indy:testnet:explicit"}
	payload, err := marshalDocument("did:indy:testnet:abc", doc)
	require.NoError(t, err)
	require.Contains(t, string(payload), `"id":"did:indy:testnet:explicit"`)
}

func TestConvertResolveDidResultParsesDocument(t *testing.T) {
	raw := []byte(`{"@context":"https://www.w3.org/ns/did/v1","id":"did:indy:testnet:abc"}`)
	result, err := convertResolveDidResult([]interface{}{raw})
	require.NoError(t, err)
	doc := result.(DidDocument)
	require.Equal(t, "did:indy:testnet:abc", doc.ID)
}

func TestConvertResolveDidResultEmptyDocumentIsError(t *testing.T) {
	_, err := convertResolveDidResult([]interface{}{[]byte{}})
	require.Error(t, err)
}

func TestConvertResolveDidResultWrongShapeIsError(t *testing.T) {
	_, err := convertResolveDidResult([]interface{}{})
	require.Error(t, err)

	_, err = convertResolveDidResult([]interface{}{"not bytes"})
	require.Error(t, err)
}
