package revocation

import (
	"math/big"
	"reflect"

	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

// uintField normalizes the handful of Go types go-ethereum's ABI
// decoder produces for unsigned integers (*big.Int, uint64, uint8...)
// into a plain uint64.
func uintField(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case *big.Int:
		return n.Uint64(), nil
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	default:
		return 0, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "unexpected integer field type in event")
	}
}

// tupleField reads a named field off the anonymous struct go-ethereum
// generates for ABI tuple types.
func tupleField(tuple interface{}, name string) (interface{}, error) {
	if tuple == nil {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "revRegEntry: missing tuple value")
	}
	value := reflect.ValueOf(tuple)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData, "revRegEntry: expected struct-shaped tuple")
	}
	field := value.FieldByName(name)
	if !field.IsValid() {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "revRegEntry: missing field %q", name)
	}
	return field.Interface(), nil
}

func tupleStringField(tuple interface{}, name string) (string, error) {
	v, err := tupleField(tuple, name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "revRegEntry: field %q is not a string", name)
	}
}

func tupleUint64Field(tuple interface{}, name string) (uint64, error) {
	v, err := tupleField(tuple, name)
	if err != nil {
		return 0, err
	}
	return uintField(v)
}

func tupleUint32SliceField(tuple interface{}, name string) ([]uint32, error) {
	v, err := tupleField(tuple, name)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]uint32)
	if !ok {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "revRegEntry: field %q is not a uint32 slice", name)
	}
	return raw, nil
}
