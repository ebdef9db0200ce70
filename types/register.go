package types

import (
	"fmt"

	"avm/lang"
)

// RegisterKind discriminates the two shapes a RegisterType can take.
type RegisterKind byte

const (
	// RegisterKindPlaintext marks a RegisterType wrapping a PlaintextType.
	RegisterKindPlaintext RegisterKind = iota
	// RegisterKindRecord marks a RegisterType referencing a declared
	// record.
	RegisterKindRecord
)

// RegisterType is the mode-stripped skeleton of a ValueType: Plaintext(pt)
// or Record(id). It is what RegisterTypes stores for every input and
// destination, and what instruction output-type rules compute and compare
// against.
type RegisterType struct {
	kind      RegisterKind
	plaintext PlaintextType
	record    lang.Identifier
}

// PlaintextRegister constructs a RegisterType wrapping a plaintext type.
func PlaintextRegister(t PlaintextType) RegisterType {
	return RegisterType{kind: RegisterKindPlaintext, plaintext: t}
}

// RecordRegister constructs a RegisterType referencing a declared record.
func RecordRegister(id lang.Identifier) RegisterType {
	return RegisterType{kind: RegisterKindRecord, record: id}
}

// IsPlaintext reports whether r wraps a plaintext type.
func (r RegisterType) IsPlaintext() bool { return r.kind == RegisterKindPlaintext }

// IsRecord reports whether r references a record.
func (r RegisterType) IsRecord() bool { return r.kind == RegisterKindRecord }

// Plaintext returns the wrapped plaintext type. Only meaningful when
// IsPlaintext is true.
func (r RegisterType) Plaintext() PlaintextType { return r.plaintext }

// RecordID returns the referenced record name. Only meaningful when
// IsRecord is true.
func (r RegisterType) RecordID() lang.Identifier { return r.record }

// Equal compares two register types structurally.
func (r RegisterType) Equal(o RegisterType) bool {
	if r.kind != o.kind {
		return false
	}
	switch r.kind {
	case RegisterKindPlaintext:
		return r.plaintext.Equal(o.plaintext)
	case RegisterKindRecord:
		return r.record == o.record
	default:
		return false
	}
}

// MatchesValueType reports whether r is exactly the mode-dropped form of
// vt — the check the builder runs for every declared function output.
func (r RegisterType) MatchesValueType(vt ValueType) bool {
	return r.Equal(vt.DropMode())
}

func (r RegisterType) String() string {
	switch r.kind {
	case RegisterKindPlaintext:
		return r.plaintext.String()
	case RegisterKindRecord:
		return fmt.Sprintf("%s.record", r.record)
	default:
		return "?unknown-register-type?"
	}
}
