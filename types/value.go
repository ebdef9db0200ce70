package types

import (
	"fmt"

	"avm/lang"
)

// ValueKind discriminates the two shapes a ValueType can take.
type ValueKind byte

const (
	// ValueKindPlaintext marks a ValueType wrapping a mode-tagged
	// PlaintextType.
	ValueKindPlaintext ValueKind = iota
	// ValueKindRecord marks a ValueType referencing a declared record.
	ValueKindRecord
)

// ValueType is either a mode-tagged plaintext type or a reference to a
// declared record. Function inputs, instruction destinations (by way of
// RegisterType) and outputs are all typed with ValueType or RegisterType.
type ValueType struct {
	kind      ValueKind
	mode      Mode
	plaintext PlaintextType
	record    lang.Identifier
}

// PlaintextValue constructs a ValueType wrapping a mode-tagged plaintext
// type.
func PlaintextValue(mode Mode, t PlaintextType) ValueType {
	return ValueType{kind: ValueKindPlaintext, mode: mode, plaintext: t}
}

// RecordValue constructs a ValueType referencing a declared record.
func RecordValue(id lang.Identifier) ValueType {
	return ValueType{kind: ValueKindRecord, record: id}
}

// IsPlaintext reports whether v wraps a plaintext type.
func (v ValueType) IsPlaintext() bool { return v.kind == ValueKindPlaintext }

// IsRecord reports whether v references a record.
func (v ValueType) IsRecord() bool { return v.kind == ValueKindRecord }

// ModeTag returns the carried privacy mode. Only meaningful when IsPlaintext
// is true — records carry their own per-entry modes, not one at the
// ValueType level.
func (v ValueType) ModeTag() Mode { return v.mode }

// Plaintext returns the wrapped plaintext type. Only meaningful when
// IsPlaintext is true.
func (v ValueType) Plaintext() PlaintextType { return v.plaintext }

// RecordID returns the referenced record name. Only meaningful when
// IsRecord is true.
func (v ValueType) RecordID() lang.Identifier { return v.record }

// Equal requires both mode and inner plaintext/record to match.
func (v ValueType) Equal(o ValueType) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueKindPlaintext:
		return v.mode == o.mode && v.plaintext.Equal(o.plaintext)
	case ValueKindRecord:
		return v.record == o.record
	default:
		return false
	}
}

// DropMode derives the RegisterType skeleton of v by discarding its mode.
// This derivation is the basis for output type-checking.
func (v ValueType) DropMode() RegisterType {
	switch v.kind {
	case ValueKindPlaintext:
		return PlaintextRegister(v.plaintext)
	case ValueKindRecord:
		return RecordRegister(v.record)
	default:
		panic("types: malformed ValueType")
	}
}

// String renders "TYPE.mode" for plaintext values or "RECORD.record" for
// record values, matching the function-signature grammar.
func (v ValueType) String() string {
	switch v.kind {
	case ValueKindPlaintext:
		return fmt.Sprintf("%s.%s", v.plaintext, v.mode)
	case ValueKindRecord:
		return fmt.Sprintf("%s.record", v.record)
	default:
		return "?unknown-value-type?"
	}
}
