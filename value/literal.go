// Package value implements the runtime value model: literals, the
// interface-structured Plaintext tree, Record values, the untagged
// RegisterValue register-file carrier, and the mode-stamped Value output
// form. Literal kinds with a genuine finite-field meaning — field and
// scalar — are normalized through gnark-crypto's BLS12-377 scalar field
// implementation rather than raw big.Int arithmetic.
package value

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"avm/types"
)

// Literal is a single fully-materialized constant of a fixed LiteralKind.
type Literal struct {
	kind      types.LiteralKind
	text      string   // canonical payload for address, boolean and string kinds
	magnitude *big.Int // canonical magnitude for group and iN/uN kinds
	field     *fr.Element
}

// Kind returns the literal's kind.
func (l Literal) Kind() types.LiteralKind { return l.kind }

// NewBooleanLiteral constructs a boolean literal.
func NewBooleanLiteral(b bool) Literal {
	text := "false"
	if b {
		text = "true"
	}
	return Literal{kind: types.Boolean, text: text}
}

// BoolValue returns the boolean payload. Only meaningful when Kind is
// Boolean.
func (l Literal) BoolValue() bool { return l.text == "true" }

// NewAddressLiteral constructs an address literal from its raw textual
// form (the core treats addresses as opaque strings — encoding/decoding
// the bech32-style address format is a cryptographic-primitive concern
// that lives outside this module).
func NewAddressLiteral(raw string) Literal {
	return Literal{kind: types.Address, text: raw}
}

// NewStringLiteral constructs a string literal.
func NewStringLiteral(s string) Literal {
	return Literal{kind: types.String, text: s}
}

// TextValue returns the raw textual payload. Only meaningful for Address
// and String kinds.
func (l Literal) TextValue() string { return l.text }

// NewGroupLiteral constructs a group literal from its big-integer
// encoding. Group elements are twisted-Edwards curve points in the source
// system; absent an unambiguous pack-provided API for that specific curve
// subgroup (see DESIGN.md), the core represents them by their canonical
// integer encoding, same as the fixed-width integer kinds below.
func NewGroupLiteral(v *big.Int) Literal {
	return Literal{kind: types.Group, magnitude: new(big.Int).Set(v)}
}

// NewIntegerLiteral constructs an iN/uN literal, validating that v fits in
// kind's declared bit width and signedness.
func NewIntegerLiteral(kind types.LiteralKind, v *big.Int) (Literal, error) {
	width := kind.BitWidth()
	if width == 0 {
		return Literal{}, fmt.Errorf("value: %s is not an integer literal kind", kind)
	}
	if kind.IsUnsigned() {
		if v.Sign() < 0 {
			return Literal{}, fmt.Errorf("value: %s cannot hold a negative value %s", kind, v)
		}
		bound := new(big.Int).Lsh(big.NewInt(1), uint(width))
		if v.Cmp(bound) >= 0 {
			return Literal{}, fmt.Errorf("value: %s cannot hold %s: out of range", kind, v)
		}
	} else {
		bound := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		negBound := new(big.Int).Neg(bound)
		if v.Cmp(bound) >= 0 || v.Cmp(negBound) < 0 {
			return Literal{}, fmt.Errorf("value: %s cannot hold %s: out of range", kind, v)
		}
	}
	return Literal{kind: kind, magnitude: new(big.Int).Set(v)}, nil
}

// IntValue returns the magnitude of an iN/uN or group literal.
func (l Literal) IntValue() *big.Int {
	if l.magnitude == nil {
		return nil
	}
	return new(big.Int).Set(l.magnitude)
}

// NewFieldLiteral constructs a field literal, normalizing v through the
// BLS12-377 scalar field.
func NewFieldLiteral(v *big.Int) Literal {
	var e fr.Element
	e.SetBigInt(v)
	return Literal{kind: types.Field, field: &e}
}

// NewScalarLiteral constructs a scalar literal, normalizing v through the
// BLS12-377 scalar field. The source system uses a distinct (smaller)
// scalar field for `scalar`-kind literals than for `field`; the core only
// needs a real finite field's equality/canonicalization semantics, so both
// kinds share the same underlying element type.
func NewScalarLiteral(v *big.Int) Literal {
	var e fr.Element
	e.SetBigInt(v)
	return Literal{kind: types.Scalar, field: &e}
}

// FieldValue returns the underlying field element. Only meaningful for
// Field and Scalar kinds.
func (l Literal) FieldValue() *fr.Element { return l.field }

// Equal compares two literals of the same kind for value equality.
// Literals of differing kinds are never equal.
func (l Literal) Equal(o Literal) bool {
	if l.kind != o.kind {
		return false
	}
	switch l.kind {
	case types.Field, types.Scalar:
		if l.field == nil || o.field == nil {
			return l.field == o.field
		}
		return l.field.Equal(o.field)
	case types.Boolean, types.Address, types.String:
		return l.text == o.text
	default:
		if l.magnitude == nil || o.magnitude == nil {
			return l.magnitude == o.magnitude
		}
		return l.magnitude.Cmp(o.magnitude) == 0
	}
}

// String renders the literal the way source text would: "5field",
// "200u64", "true", an address, or a quoted string.
func (l Literal) String() string {
	switch l.kind {
	case types.Field, types.Scalar:
		if l.field == nil {
			return fmt.Sprintf("0%s", l.kind)
		}
		return fmt.Sprintf("%s%s", l.field.String(), l.kind)
	case types.Boolean:
		return l.text
	case types.Address:
		return l.text
	case types.String:
		return fmt.Sprintf("%q", l.text)
	default:
		if l.magnitude == nil {
			return fmt.Sprintf("0%s", l.kind)
		}
		return fmt.Sprintf("%s%s", l.magnitude.String(), l.kind)
	}
}
