package value

import (
	"fmt"
	"math/big"

	"avm/types"
)

// Environment is the stateless capability record standing in for the full
// system's per-network parameter set: literal parsing and Plaintext/Record value
// factories are reached through one value, passed by reference where a
// caller needs it, rather than scattered across package-level functions.
// This stands in for the source system's per-network parameter set; the
// module only ever needs one, so DefaultEnvironment is the only instance
// most callers need.
type Environment struct{}

// DefaultEnvironment is the module-wide capability record.
var DefaultEnvironment = Environment{}

// ParseLiteral parses text under the grammar appropriate to kind:
// arbitrary-precision decimal for field/scalar/group/iN/uN, "true"/"false"
// for boolean, and raw text otherwise.
func (Environment) ParseLiteral(kind types.LiteralKind, text string) (Literal, error) {
	switch kind {
	case types.Boolean:
		switch text {
		case "true":
			return NewBooleanLiteral(true), nil
		case "false":
			return NewBooleanLiteral(false), nil
		default:
			return Literal{}, fmt.Errorf("value: %q is not a boolean literal", text)
		}
	case types.Address:
		return NewAddressLiteral(text), nil
	case types.String:
		return NewStringLiteral(text), nil
	case types.Field:
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Literal{}, fmt.Errorf("value: %q is not a valid field literal", text)
		}
		return NewFieldLiteral(v), nil
	case types.Scalar:
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Literal{}, fmt.Errorf("value: %q is not a valid scalar literal", text)
		}
		return NewScalarLiteral(v), nil
	case types.Group:
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Literal{}, fmt.Errorf("value: %q is not a valid group literal", text)
		}
		return NewGroupLiteral(v), nil
	default:
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Literal{}, fmt.Errorf("value: %q is not a valid %s literal", text, kind)
		}
		return NewIntegerLiteral(kind, v)
	}
}

// NewPlaintext builds a struct-shaped plaintext value from its fields, the
// factory form of NewStructPlaintext exposed through the capability record.
func (Environment) NewPlaintext(fields []PlaintextField) PlaintextValue {
	return NewStructPlaintext(fields)
}

// NewRecord builds a record value from its owner, balance and entries.
func (Environment) NewRecord(owner, balance Literal, entries []RecordEntry) RecordValue {
	return NewRecordValue(owner, balance, entries)
}
