// Package did implements both DID registries (§4.6): did-indy, which
// stores a full document blob with optional endorsement, and did-ethr,
// whose document is projected by folding ownership/attribute/delegate
// events rather than stored directly.
package did

import (
	"encoding/json"
	"strconv"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
)

var log = logger.New("contracts.did")

const baseContext = "https://www.w3.org/ns/did/v1"

// StringOrVector serializes as a bare string when it holds exactly one
// value and as a JSON array otherwise, matching the original's
// StringOrVector wire shape for `@context`/`controller`/`alsoKnownAs`.
type StringOrVector []string

func (s StringOrVector) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

func (s *StringOrVector) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrVector{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// VerificationMethod is a single key material entry in a DID document.
type VerificationMethod struct {
	ID                  string `json:"id"`
	Type                string `json:"type"`
	Controller          string `json:"controller"`
	BlockchainAccountID string `json:"blockchainAccountId,omitempty"`
	PublicKeyMultibase  string `json:"publicKeyMultibase,omitempty"`
	PublicKeyHex        string `json:"publicKeyHex,omitempty"`
	PublicKeyBase58     string `json:"publicKeyBase58,omitempty"`
	PublicKeyBase64     string `json:"publicKeyBase64,omitempty"`
}

// Service is a single service endpoint entry in a DID document.
type Service struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// DidDocument is the resolved W3C DID document shape common to both
// registries.
type DidDocument struct {
	Context              StringOrVector        `json:"@context"`
	ID                   string                `json:"id"`
	Controller           StringOrVector        `json:"controller,omitempty"`
	VerificationMethod   []VerificationMethod  `json:"verificationMethod,omitempty"`
	Authentication       []string              `json:"authentication,omitempty"`
	AssertionMethod      []string              `json:"assertionMethod,omitempty"`
	CapabilityInvocation []string              `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation []string              `json:"capabilityDelegation,omitempty"`
	KeyAgreement         []string              `json:"keyAgreement,omitempty"`
	Service              []Service             `json:"service,omitempty"`
	AlsoKnownAs          []string              `json:"alsoKnownAs,omitempty"`
}

// DocumentBuilder accumulates a document's pieces before Build,
// mirroring the original's DidDocumentBuilder but trimmed to what both
// registries actually exercise: did-indy documents arrive whole, and
// did-ethr documents are assembled by folding events one key/service
// at a time.
type DocumentBuilder struct {
	doc          DidDocument
	deactivated  bool
	keyIndex     uint32
	serviceIndex uint32
}

// NewDocumentBuilder starts a builder with the base JSON-LD context.
func NewDocumentBuilder(id string) *DocumentBuilder {
	return &DocumentBuilder{doc: DidDocument{Context: StringOrVector{baseContext}, ID: id}}
}

// AddContext appends an additional JSON-LD context entry.
func (b *DocumentBuilder) AddContext(context string) *DocumentBuilder {
	b.doc.Context = append(b.doc.Context, context)
	return b
}

// AddVerificationMethod appends a key and references it from
// authentication and assertionMethod, the controller-key shape every
// base document starts from.
func (b *DocumentBuilder) AddVerificationMethod(vmType, controller, blockchainAccountID string) *DocumentBuilder {
	id := vmIDFor(b.doc.ID, b.keyIndex)
	b.doc.VerificationMethod = append(b.doc.VerificationMethod, VerificationMethod{
		ID:                  id,
		Type:                vmType,
		Controller:          controller,
		BlockchainAccountID: blockchainAccountID,
	})
	b.keyIndex++
	b.doc.Authentication = append(b.doc.Authentication, id)
	b.doc.AssertionMethod = append(b.doc.AssertionMethod, id)
	return b
}

// AddPublicKeyVerificationMethod appends a key carried as raw
// publicKeyHex rather than a blockchain account reference, the shape
// `did/pub/...` attribute events project into.
func (b *DocumentBuilder) AddPublicKeyVerificationMethod(vmType, controller, publicKeyHex string) *DocumentBuilder {
	id := vmIDFor(b.doc.ID, b.keyIndex)
	b.doc.VerificationMethod = append(b.doc.VerificationMethod, VerificationMethod{
		ID:           id,
		Type:         vmType,
		Controller:   controller,
		PublicKeyHex: publicKeyHex,
	})
	b.keyIndex++
	b.doc.Authentication = append(b.doc.Authentication, id)
	b.doc.AssertionMethod = append(b.doc.AssertionMethod, id)
	return b
}

// AddService appends a service endpoint entry.
func (b *DocumentBuilder) AddService(svcType, endpoint string) *DocumentBuilder {
	id := svcIDFor(b.doc.ID, b.serviceIndex)
	b.doc.Service = append(b.doc.Service, Service{ID: id, Type: svcType, ServiceEndpoint: endpoint})
	b.serviceIndex++
	return b
}

// Deactivate marks the document as deactivated: Build will then return
// the minimal absorbing-state document (id only, no keys or services).
func (b *DocumentBuilder) Deactivate() *DocumentBuilder {
	b.deactivated = true
	return b
}

// Build yields the finished document.
func (b *DocumentBuilder) Build() DidDocument {
	if b.deactivated {
		return DidDocument{Context: StringOrVector{baseContext}, ID: b.doc.ID}
	}
	return b.doc
}

func vmIDFor(did string, index uint32) string {
	return did + "#delegate-" + strconv.FormatUint(uint64(index), 10)
}

func svcIDFor(did string, index uint32) string {
	return did + "#service-" + strconv.FormatUint(uint64(index), 10)
}
