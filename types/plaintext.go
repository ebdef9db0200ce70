package types

import (
	"fmt"

	"avm/lang"
)

// PlaintextKind discriminates the two shapes a PlaintextType can take.
type PlaintextKind byte

const (
	// PlaintextKindLiteral marks a PlaintextType wrapping a LiteralKind.
	PlaintextKindLiteral PlaintextKind = iota
	// PlaintextKindInterface marks a PlaintextType referencing a declared
	// interface by name.
	PlaintextKindInterface
)

// PlaintextType is either a literal kind or a reference to a declared
// interface. There are no anonymous structural types: every Interface
// reference names a previously declared interface.
type PlaintextType struct {
	kind      PlaintextKind
	literal   LiteralKind
	interface_ lang.Identifier
}

// Literal constructs a PlaintextType wrapping a literal kind.
func Literal(kind LiteralKind) PlaintextType {
	return PlaintextType{kind: PlaintextKindLiteral, literal: kind}
}

// InterfaceRef constructs a PlaintextType referencing a declared interface.
func InterfaceRef(id lang.Identifier) PlaintextType {
	return PlaintextType{kind: PlaintextKindInterface, interface_: id}
}

// IsLiteral reports whether t wraps a literal kind.
func (t PlaintextType) IsLiteral() bool { return t.kind == PlaintextKindLiteral }

// IsInterface reports whether t references an interface.
func (t PlaintextType) IsInterface() bool { return t.kind == PlaintextKindInterface }

// LiteralKind returns the wrapped literal kind. Only meaningful when
// IsLiteral is true.
func (t PlaintextType) LiteralKind() LiteralKind { return t.literal }

// InterfaceID returns the referenced interface name. Only meaningful when
// IsInterface is true.
func (t PlaintextType) InterfaceID() lang.Identifier { return t.interface_ }

// Equal implements structural equality: kind-equal for Literal, identifier
// -equal for Interface.
func (t PlaintextType) Equal(o PlaintextType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case PlaintextKindLiteral:
		return t.literal == o.literal
	case PlaintextKindInterface:
		return t.interface_ == o.interface_
	default:
		return false
	}
}

// String renders the type the way it appears in source: a literal tag or
// an interface name.
func (t PlaintextType) String() string {
	switch t.kind {
	case PlaintextKindLiteral:
		return t.literal.String()
	case PlaintextKindInterface:
		return string(t.interface_)
	default:
		return fmt.Sprintf("?unknown-plaintext-type(%d)?", t.kind)
	}
}
