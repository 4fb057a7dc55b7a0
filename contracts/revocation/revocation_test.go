package revocation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRevocationRegistryDefinitionIdentifierDeterminism(t *testing.T) {
	d := RevocationRegistryDefinition{
		IssuerID:     "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5",
		CredDefID:    "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/CLAIM_DEF/schema-id/default",
		RevocDefType: RegistryTypeCLAccum,
		Tag:          "default",
		Value:        RevocationRegistryDefinitionValue{MaxCredNum: 100, TailsHash: "hash", TailsLocation: "location"},
	}
	expected := "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/REV_REG_DEF/" +
		"did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/CLAIM_DEF/schema-id/default/default"
	require.Equal(t, expected, d.ID().String())
	require.NoError(t, d.MatchesID(d.ID().String()))
}

func TestRevocationRegistryDefinitionValidate(t *testing.T) {
	require.Error(t, RevocationRegistryDefinition{}.Validate())
	require.Error(t, RevocationRegistryDefinition{RevocDefType: "unsupported", Tag: "default"}.Validate())
	require.Error(t, RevocationRegistryDefinition{RevocDefType: RegistryTypeCLAccum}.Validate())
	require.NoError(t, RevocationRegistryDefinition{
		RevocDefType: RegistryTypeCLAccum,
		Tag:          "default",
		Value:        RevocationRegistryDefinitionValue{MaxCredNum: 1},
	}.Validate())
}

func TestRevocationRegistryDeltaValidate(t *testing.T) {
	delta := RevocationRegistryDelta{Issued: []uint32{1, 2, 3}, Revoked: []uint32{4}}
	require.NoError(t, delta.Validate(10))
	require.Error(t, delta.Validate(3))
}

func TestBuildLatestRevocationRegistryEntryFromStatusList(t *testing.T) {
	states := []RevocationState{RevocationStateActive, RevocationStateRevoked, RevocationStateActive}
	entry := BuildLatestRevocationRegistryEntryFromStatusList("rev-reg-def-id", states, "accum", 42)
	require.Equal(t, []uint32{0, 2}, entry.Data.Issued)
	require.Equal(t, []uint32{1}, entry.Data.Revoked)
	require.Equal(t, "accum", entry.Data.CurrentAccumulator)
}

func TestRevocationStateFromUint8(t *testing.T) {
	state, err := RevocationStateFromUint8(1)
	require.NoError(t, err)
	require.Equal(t, RevocationStateRevoked, state)

	_, err = RevocationStateFromUint8(7)
	require.Error(t, err)
}

func TestSortedKeysIsDeterministic(t *testing.T) {
	set := map[uint32]struct{}{3: {}, 1: {}, 2: {}}
	require.Equal(t, []uint32{1, 2, 3}, sortedKeys(set))
}
