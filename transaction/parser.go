package transaction

import "github.com/hyperledger/indy-besu-vdr-go/vdrerrors"

// OutputConverter is the `TryFrom<Output>` contract each domain module
// provides (§4.2): given the ABI-decoded output tuple, produce the
// domain value or fail.
type OutputConverter func(values []interface{}) (interface{}, error)

// TransactionParser mirrors TransactionBuilder for return bytes: it
// resolves the contract, decodes the ABI output tuple, and hands the
// decoded values to a domain-supplied converter.
type TransactionParser struct {
	contractName string
	method       string
}

// NewTransactionParser builds a parser bound to one contract method.
func NewTransactionParser(contractName, method string) *TransactionParser {
	return &TransactionParser{contractName: contractName, method: method}
}

// Parse decodes raw return bytes into a domain value. Empty response
// bytes are an error.
func (p *TransactionParser) Parse(client ContractResolver, data []byte, convert OutputConverter) (interface{}, error) {
	if len(data) == 0 {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidResponse, "empty response bytes")
	}
	contract, err := client.Contract(p.contractName)
	if err != nil {
		return nil, err
	}
	values, err := contract.DecodeOutput(p.method, data)
	if err != nil {
		return nil, err
	}
	return convert(values)
}
