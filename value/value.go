package value

import (
	"fmt"
	"strings"

	"avm/lang"
	"avm/types"
)

// PlaintextValue is a runtime plaintext: either a literal leaf or an
// ordered set of named fields projecting an interface's shape: an
// interface-structured tree of literals.
type PlaintextValue struct {
	isLeaf bool
	leaf   Literal
	fields []PlaintextField
}

// PlaintextField is one named field of a struct-shaped PlaintextValue.
type PlaintextField struct {
	Name  lang.Identifier
	Value PlaintextValue
}

// NewLiteralPlaintext wraps a literal as a leaf plaintext value.
func NewLiteralPlaintext(lit Literal) PlaintextValue {
	return PlaintextValue{isLeaf: true, leaf: lit}
}

// NewStructPlaintext builds an interface-shaped plaintext value from its
// ordered fields.
func NewStructPlaintext(fields []PlaintextField) PlaintextValue {
	cp := make([]PlaintextField, len(fields))
	copy(cp, fields)
	return PlaintextValue{fields: cp}
}

// IsLeaf reports whether p is a literal leaf rather than a struct.
func (p PlaintextValue) IsLeaf() bool { return p.isLeaf }

// Literal returns the wrapped literal. Only meaningful when IsLeaf is true.
func (p PlaintextValue) Literal() Literal { return p.leaf }

// Fields returns the struct's ordered fields. Only meaningful when IsLeaf
// is false.
func (p PlaintextValue) Fields() []PlaintextField {
	out := make([]PlaintextField, len(p.fields))
	copy(out, p.fields)
	return out
}

// Field projects a single named field out of a struct-shaped value, the
// runtime counterpart of a Member register's path walk.
func (p PlaintextValue) Field(name lang.Identifier) (PlaintextValue, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return PlaintextValue{}, false
}

// Equal compares two plaintext values structurally.
func (p PlaintextValue) Equal(o PlaintextValue) bool {
	if p.isLeaf != o.isLeaf {
		return false
	}
	if p.isLeaf {
		return p.leaf.Equal(o.leaf)
	}
	if len(p.fields) != len(o.fields) {
		return false
	}
	for i, f := range p.fields {
		g := o.fields[i]
		if f.Name != g.Name || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}

// String renders a leaf as its literal text, or a struct as a brace-joined
// list of "name: value" pairs in declaration order.
func (p PlaintextValue) String() string {
	if p.isLeaf {
		return p.leaf.String()
	}
	parts := make([]string, len(p.fields))
	for i, f := range p.fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RecordEntry is one named, plaintext-valued entry of a RecordValue beyond
// its fixed owner and balance.
type RecordEntry struct {
	Name  lang.Identifier
	Value PlaintextValue
}

// RecordValue is the runtime carrier for a record: a fixed owner address
// and balance plus an ordered list of additional entries.
type RecordValue struct {
	Owner   Literal
	Balance Literal
	Entries []RecordEntry
}

// NewRecordValue constructs a RecordValue.
func NewRecordValue(owner, balance Literal, entries []RecordEntry) RecordValue {
	cp := make([]RecordEntry, len(entries))
	copy(cp, entries)
	return RecordValue{Owner: owner, Balance: balance, Entries: cp}
}

// Entry looks up a named entry.
func (r RecordValue) Entry(name lang.Identifier) (PlaintextValue, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return PlaintextValue{}, false
}

// Equal compares two record values structurally, including owner, balance
// and every entry in order.
func (r RecordValue) Equal(o RecordValue) bool {
	if !r.Owner.Equal(o.Owner) || !r.Balance.Equal(o.Balance) {
		return false
	}
	if len(r.Entries) != len(o.Entries) {
		return false
	}
	for i, e := range r.Entries {
		f := o.Entries[i]
		if e.Name != f.Name || !e.Value.Equal(f.Value) {
			return false
		}
	}
	return true
}

// String renders the record's owner, balance and entries in declaration
// order.
func (r RecordValue) String() string {
	parts := make([]string, 0, 2+len(r.Entries))
	parts = append(parts, fmt.Sprintf("owner: %s", r.Owner))
	parts = append(parts, fmt.Sprintf("balance: %s", r.Balance))
	for _, e := range r.Entries {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Name, e.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RegisterValue is the untagged register-file carrier: whatever a register
// actually holds at runtime, plaintext or record, with no mode stamp.
// Modes are applied only at function input binding and output production.
type RegisterValue struct {
	isRecord  bool
	plaintext PlaintextValue
	record    RecordValue
}

// NewPlaintextRegisterValue wraps a plaintext value for register storage.
func NewPlaintextRegisterValue(p PlaintextValue) RegisterValue {
	return RegisterValue{plaintext: p}
}

// NewRecordRegisterValue wraps a record value for register storage.
func NewRecordRegisterValue(r RecordValue) RegisterValue {
	return RegisterValue{isRecord: true, record: r}
}

// IsRecord reports whether v holds a record.
func (v RegisterValue) IsRecord() bool { return v.isRecord }

// Plaintext returns the wrapped plaintext value. Only meaningful when
// IsRecord is false.
func (v RegisterValue) Plaintext() PlaintextValue { return v.plaintext }

// Record returns the wrapped record value. Only meaningful when IsRecord
// is true.
func (v RegisterValue) Record() RecordValue { return v.record }

// MatchesType reports whether v matches rt at the top level: a record
// value matches any record register type (the record name is not
// compared), a literal leaf matches a literal type of the same kind, and a
// struct value matches any interface type (its fields are not checked).
func (v RegisterValue) MatchesType(rt types.RegisterType) bool {
	if v.isRecord != rt.IsRecord() {
		return false
	}
	if v.isRecord {
		return true
	}
	return matchesPlaintextShape(v.plaintext, rt.Plaintext())
}

func matchesPlaintextShape(pv PlaintextValue, pt types.PlaintextType) bool {
	if pv.IsLeaf() {
		return pt.IsLiteral() && pv.Literal().Kind() == pt.LiteralKind()
	}
	return pt.IsInterface()
}

// String renders the wrapped record or plaintext value.
func (v RegisterValue) String() string {
	if v.isRecord {
		return v.record.String()
	}
	return v.plaintext.String()
}

// Kind discriminates the mode-stamped output forms a function result may
// take.
type Kind byte

const (
	// KindConstant marks a constant-mode plaintext output.
	KindConstant Kind = iota
	// KindPublic marks a public-mode plaintext output.
	KindPublic
	// KindPrivate marks a private-mode plaintext output.
	KindPrivate
	// KindRecord marks a record output.
	KindRecord
)

// Value is the mode-stamped output form produced by evaluating a function:
// a plaintext tagged Constant, Public or Private, or a Record.
type Value struct {
	kind      Kind
	plaintext PlaintextValue
	record    RecordValue
}

// NewConstantValue wraps a plaintext as a constant-mode output.
func NewConstantValue(p PlaintextValue) Value { return Value{kind: KindConstant, plaintext: p} }

// NewPublicValue wraps a plaintext as a public-mode output.
func NewPublicValue(p PlaintextValue) Value { return Value{kind: KindPublic, plaintext: p} }

// NewPrivateValue wraps a plaintext as a private-mode output.
func NewPrivateValue(p PlaintextValue) Value { return Value{kind: KindPrivate, plaintext: p} }

// NewRecordOutputValue wraps a record as an output.
func NewRecordOutputValue(r RecordValue) Value { return Value{kind: KindRecord, record: r} }

// Kind returns v's output kind.
func (v Value) Kind() Kind { return v.kind }

// Plaintext returns the wrapped plaintext. Only meaningful when Kind is not
// KindRecord.
func (v Value) Plaintext() PlaintextValue { return v.plaintext }

// Record returns the wrapped record. Only meaningful when Kind is
// KindRecord.
func (v Value) Record() RecordValue { return v.record }

// String renders "value.mode" for plaintext outputs, or the record's form
// for record outputs.
func (v Value) String() string {
	switch v.kind {
	case KindConstant:
		return fmt.Sprintf("%s.constant", v.plaintext)
	case KindPublic:
		return fmt.Sprintf("%s.public", v.plaintext)
	case KindPrivate:
		return fmt.Sprintf("%s.private", v.plaintext)
	case KindRecord:
		return v.record.String()
	default:
		return "?unknown-value?"
	}
}

// FromRegisterValue stamps a raw register value with mode, matching it
// against a declared output ValueType.
func FromRegisterValue(rv RegisterValue, vt types.ValueType) Value {
	if vt.IsRecord() {
		return NewRecordOutputValue(rv.Record())
	}
	switch vt.ModeTag() {
	case types.Constant:
		return NewConstantValue(rv.Plaintext())
	case types.Public:
		return NewPublicValue(rv.Plaintext())
	default:
		return NewPrivateValue(rv.Plaintext())
	}
}
