package creddef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredentialDefinitionIdentifierDeterminism(t *testing.T) {
	c := CredentialDefinition{
		IssuerID:    "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5",
		SchemaID:    "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/SCHEMA/F1DClaFEzi3t/1.0.0",
		CredDefType: SignatureTypeCL,
		Tag:         "default",
		Value:       []byte(`{"n":"1"}`),
	}
	expected := "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/CLAIM_DEF/" +
		"did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/SCHEMA/F1DClaFEzi3t/1.0.0/default"
	require.Equal(t, expected, c.ID().String())
	require.NoError(t, c.MatchesID(c.ID().String()))
	require.Error(t, c.MatchesID("some-other-id"))
}

func TestCredentialDefinitionValidate(t *testing.T) {
	require.Error(t, CredentialDefinition{}.Validate())
	require.Error(t, CredentialDefinition{CredDefType: "unsupported", Tag: "default", Value: []byte(`{}`)}.Validate())
	require.Error(t, CredentialDefinition{CredDefType: SignatureTypeCL, Value: []byte(`{}`)}.Validate())
	require.Error(t, CredentialDefinition{CredDefType: SignatureTypeCL, Tag: "default", Value: []byte(`null`)}.Validate())
	require.NoError(t, CredentialDefinition{CredDefType: SignatureTypeCL, Tag: "default", Value: []byte(`{"n":"1"}`)}.Validate())
}
