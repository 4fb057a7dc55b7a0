// Package vdrerrors defines the error taxonomy shared by every layer of
// the VDR client: client/transport, contract/ABI, signer, and common
// validation failures. Layer boundaries preserve the Kind verbatim;
// callers that need to branch on failure type should compare Kind, not
// the formatted message.
package vdrerrors

import "fmt"

// Kind identifies the category of a VDR failure.
type Kind string

const (
	// Client errors.
	ClientNodeUnreachable        Kind = "client_node_unreachable"
	ClientInvalidTransaction     Kind = "client_invalid_transaction"
	ClientInvalidEndorsementData Kind = "client_invalid_endorsement_data"
	ClientInvalidResponse        Kind = "client_invalid_response"
	ClientTransactionReverted    Kind = "client_transaction_reverted"
	ClientUnexpectedError        Kind = "client_unexpected_error"
	ClientInvalidState           Kind = "client_invalid_state"
	ClientQuorumNotReached       Kind = "client_quorum_not_reached"
	ClientGetTransactionError    Kind = "client_get_transaction_error"

	// Contract errors.
	ContractInvalidName         Kind = "contract_invalid_name"
	ContractInvalidSpec         Kind = "contract_invalid_spec"
	ContractInvalidInputData    Kind = "contract_invalid_input_data"
	ContractInvalidResponseData Kind = "contract_invalid_response_data"

	// Signer errors.
	SignerInvalidPrivateKey Kind = "signer_invalid_private_key"
	SignerInvalidMessage    Kind = "signer_invalid_message"
	SignerMissingKey        Kind = "signer_missing_key"
	SignerUnexpectedError   Kind = "signer_unexpected_error"

	// Common errors.
	CommonInvalidData                         Kind = "common_invalid_data"
	CommonInvalidSchema                       Kind = "common_invalid_schema"
	CommonInvalidCredentialDefinition          Kind = "common_invalid_credential_definition"
	CommonInvalidRevocationRegistryStatusList Kind = "common_invalid_revocation_registry_status_list"
	CommonInvalidRevocationRegistryEntry      Kind = "common_invalid_revocation_registry_entry"
)

// Error is the concrete error type returned by every exported VDR
// operation. It never participates in control flow via panic/recover;
// it is always returned as a plain value.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, vdrerrors.New(kind, "")) to match purely on Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error carrying an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, and
// an empty Kind and false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
