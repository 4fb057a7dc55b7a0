package identifiers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSchemaID(t *testing.T) {
	id := BuildSchemaID("did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5", "F1DClaFEzi3t", "1.0.0")
	require.Equal(t, "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/SCHEMA/F1DClaFEzi3t/1.0.0", id.String())
}

func TestBuildCredentialDefinitionID(t *testing.T) {
	id := BuildCredentialDefinitionID("did:ethr:testnet:0xabc", "did:ethr:testnet:0xabc/anoncreds/v0/SCHEMA/name/1.0", "tag")
	require.Equal(t, "did:ethr:testnet:0xabc/anoncreds/v0/CLAIM_DEF/did:ethr:testnet:0xabc/anoncreds/v0/SCHEMA/name/1.0/tag", id.String())
}

func TestDIDEthrRoundTrip(t *testing.T) {
	did, err := ParseDIDEthr("did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	require.NoError(t, err)
	require.Equal(t, "testnet", did.Network)
	require.Equal(t, "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5", did.String())
	require.True(t, did.MatchesID("did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5"))
	require.False(t, did.MatchesID("did:ethr:mainnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5"))
}

func TestParseDIDEthrWithoutNetwork(t *testing.T) {
	did, err := ParseDIDEthr("did:ethr:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5")
	require.NoError(t, err)
	require.Empty(t, did.Network)
}

func TestParseDIDEthrRejectsNonEthr(t *testing.T) {
	_, err := ParseDIDEthr("did:indy:sovrin:abc")
	require.Error(t, err)
}
