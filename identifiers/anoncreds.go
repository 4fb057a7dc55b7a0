package identifiers

import "fmt"

// Anoncreds identifiers are plain deterministic strings built from an
// issuer DID and a few path segments; there is nothing to decode, only
// to build and to compare (matches_id, §8).

const (
	schemaIDPath = "anoncreds/v0/SCHEMA"
	credDefPath  = "anoncreds/v0/CLAIM_DEF"
	revRegPath   = "anoncreds/v0/REV_REG_DEF"
)

// SchemaID is `<issuer_id>/anoncreds/v0/SCHEMA/<name>/<version>`.
type SchemaID string

// BuildSchemaID derives a SchemaID from its constituent parts.
func BuildSchemaID(issuerID, name, version string) SchemaID {
	return SchemaID(fmt.Sprintf("%s/%s/%s/%s", issuerID, schemaIDPath, name, version))
}

func (id SchemaID) String() string { return string(id) }

// CredentialDefinitionID is `<issuer_id>/anoncreds/v0/CLAIM_DEF/<schema_id>/<tag>`.
type CredentialDefinitionID string

// BuildCredentialDefinitionID derives a CredentialDefinitionID.
func BuildCredentialDefinitionID(issuerID, schemaID, tag string) CredentialDefinitionID {
	return CredentialDefinitionID(fmt.Sprintf("%s/%s/%s/%s", issuerID, credDefPath, schemaID, tag))
}

func (id CredentialDefinitionID) String() string { return string(id) }

// RevocationRegistryDefinitionID is
// `<issuer_id>/anoncreds/v0/REV_REG_DEF/<cred_def_id>/<tag>`, the same
// shape as a credential definition id one level down.
type RevocationRegistryDefinitionID string

// BuildRevocationRegistryDefinitionID derives a
// RevocationRegistryDefinitionID.
func BuildRevocationRegistryDefinitionID(issuerID, credDefID, tag string) RevocationRegistryDefinitionID {
	return RevocationRegistryDefinitionID(fmt.Sprintf("%s/%s/%s/%s", issuerID, revRegPath, credDefID, tag))
}

func (id RevocationRegistryDefinitionID) String() string { return string(id) }
