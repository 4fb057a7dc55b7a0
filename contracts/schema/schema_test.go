package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaIdentifierDeterminism(t *testing.T) {
	s := Schema{
		IssuerID:  "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5",
		Name:      "F1DClaFEzi3t",
		Version:   "1.0.0",
		AttrNames: []string{"First Name"},
	}
	require.Equal(t, "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5/anoncreds/v0/SCHEMA/F1DClaFEzi3t/1.0.0", s.ID().String())
	require.NoError(t, s.MatchesID(s.ID().String()))
	require.Error(t, s.MatchesID("did:ethr:testnet:0xother/anoncreds/v0/SCHEMA/F1DClaFEzi3t/1.0.0"))
}

func TestSchemaValidate(t *testing.T) {
	require.Error(t, Schema{}.Validate())
	require.Error(t, Schema{Name: "n", Version: "1.0"}.Validate())
	require.NoError(t, Schema{Name: "n", Version: "1.0", AttrNames: []string{"a"}}.Validate())
}

func TestSchemaCanonicalJSONSortsAttributes(t *testing.T) {
	s := Schema{IssuerID: "did:ethr:x", Name: "n", Version: "1.0", AttrNames: []string{"z", "a", "m"}}
	data, err := s.canonicalJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"attrNames":["a","m","z"]`)
}
