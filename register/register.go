// Package register implements register addressing (component C) and the
// per-function static register table (component D). A Register is a
// linear address into a function's register file: either a bare locator or
// a member projection through a locator's product-typed value.
package register

import (
	"fmt"
	"strings"

	"avm/lang"
)

// Locator is a bare, numbered register slot, written at most once.
type Locator uint64

// RegisterKind discriminates the two shapes a Register can take.
type RegisterKind byte

const (
	// KindLocator marks a bare locator register.
	KindLocator RegisterKind = iota
	// KindMember marks a projection into a locator's value.
	KindMember
)

// Register addresses an entry in the register file: a Locator(n), or a
// Member(n, path) projecting into locator n's value along a non-empty
// sequence of field names.
type Register struct {
	kind    RegisterKind
	locator Locator
	path    []lang.Identifier
}

// NewLocator constructs a bare locator register r<n>.
func NewLocator(n uint64) Register {
	return Register{kind: KindLocator, locator: Locator(n)}
}

// NewMember constructs a member-projection register r<n>.path[0].path[1]...
// path must be non-empty; NewMember panics otherwise, since a Register's
// shape is fixed at construction time by the (trusted) builder/parser, not
// by untrusted input.
func NewMember(n uint64, path []lang.Identifier) Register {
	if len(path) == 0 {
		panic("register: member path must be non-empty")
	}
	cp := make([]lang.Identifier, len(path))
	copy(cp, path)
	return Register{kind: KindMember, locator: Locator(n), path: cp}
}

// IsLocator reports whether r is a bare locator.
func (r Register) IsLocator() bool { return r.kind == KindLocator }

// IsMember reports whether r is a member projection.
func (r Register) IsMember() bool { return r.kind == KindMember }

// Loc returns the base locator index, valid for both locator and
// member registers.
func (r Register) Loc() Locator { return r.locator }

// Path returns the field-name path. Only meaningful when IsMember is true.
func (r Register) Path() []lang.Identifier { return r.path }

// String renders "r<n>" or "r<n>.field1.field2...".
func (r Register) String() string {
	if r.kind == KindLocator {
		return fmt.Sprintf("r%d", r.locator)
	}
	parts := make([]string, len(r.path))
	for i, p := range r.path {
		parts[i] = string(p)
	}
	return fmt.Sprintf("r%d.%s", r.locator, strings.Join(parts, "."))
}

// Equal compares two registers structurally.
func (r Register) Equal(o Register) bool {
	if r.kind != o.kind || r.locator != o.locator {
		return false
	}
	if r.kind == KindLocator {
		return true
	}
	if len(r.path) != len(o.path) {
		return false
	}
	for i := range r.path {
		if r.path[i] != o.path[i] {
			return false
		}
	}
	return true
}

// OperandKind discriminates the two shapes an Operand can take.
type OperandKind byte

const (
	// OperandKindLiteral marks an operand that is a fully-materialized
	// constant.
	OperandKindLiteral OperandKind = iota
	// OperandKindRegister marks an operand read from a register.
	OperandKindRegister
)

// Operand is a literal or register read at an instruction input. The
// literal payload type is deliberately left to the caller (package value)
// to avoid a dependency cycle: package register only needs to know "this
// operand is a literal" to route static type lookup, never the literal's
// actual value.
type Operand[L any] struct {
	kind     OperandKind
	literal  L
	register Register
}

// NewLiteralOperand constructs a literal operand.
func NewLiteralOperand[L any](lit L) Operand[L] {
	return Operand[L]{kind: OperandKindLiteral, literal: lit}
}

// NewRegisterOperand constructs a register operand.
func NewRegisterOperand[L any](reg Register) Operand[L] {
	return Operand[L]{kind: OperandKindRegister, register: reg}
}

// IsLiteral reports whether o wraps a literal.
func (o Operand[L]) IsLiteral() bool { return o.kind == OperandKindLiteral }

// IsRegister reports whether o wraps a register.
func (o Operand[L]) IsRegister() bool { return o.kind == OperandKindRegister }

// Literal returns the wrapped literal. Only meaningful when IsLiteral is
// true.
func (o Operand[L]) Literal() L { return o.literal }

// Register returns the wrapped register. Only meaningful when IsRegister
// is true.
func (o Operand[L]) Register() Register { return o.register }
