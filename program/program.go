// Package program implements the well-formedness checker: Program's
// AddInterface/AddRecord/AddFunction builder methods, the declaration
// types they populate, and the canonical Display form.
// Each builder call either inserts its declaration in full or changes
// nothing — every check runs before any map is mutated, so a rejected
// declaration leaves the prior state untouched.
package program

import (
	"github.com/sirupsen/logrus"

	"avm/errs"
	"avm/lang"
	"avm/register"
	"avm/types"
)

// DeclKind tags what an identifier names in Program.identifiers.
type DeclKind byte

const (
	DeclInterface DeclKind = iota
	DeclRecord
	DeclFunction
)

func (k DeclKind) String() string {
	switch k {
	case DeclInterface:
		return "interface"
	case DeclRecord:
		return "record"
	case DeclFunction:
		return "function"
	default:
		return "?unknown-decl-kind?"
	}
}

// Diagnostic is a non-fatal notice surfaced alongside a successful builder
// call — currently only "output register is also an input".
type Diagnostic struct {
	Register string
	Message  string
}

// Program is the well-formed program under construction: one
// insertion-ordered identifier namespace shared across every declaration
// kind, plus the per-kind declaration tables and per-function static
// register tables.
type Program struct {
	order []lang.Identifier
	kinds map[lang.Identifier]DeclKind
	names *lang.NameTable

	interfaces        map[lang.Identifier]*InterfaceType
	records           map[lang.Identifier]*RecordType
	functions         map[lang.Identifier]*Function
	functionRegisters map[lang.Identifier]*register.RegisterTypes

	log *logrus.Entry
}

// New constructs an empty program.
func New() *Program {
	return &Program{
		kinds:             make(map[lang.Identifier]DeclKind),
		names:             lang.NewNameTable(),
		interfaces:        make(map[lang.Identifier]*InterfaceType),
		records:           make(map[lang.Identifier]*RecordType),
		functions:         make(map[lang.Identifier]*Function),
		functionRegisters: make(map[lang.Identifier]*register.RegisterTypes),
		log:               logrus.WithField("component", "program"),
	}
}

// checkNewName rejects a non-unique or reserved declaration name. Shared by
// all three AddX entry points.
func checkNewName(p *Program, name lang.Identifier) error {
	if lang.IsReservedName(name) {
		return errs.NewNameError(string(name), "reserved keyword")
	}
	if !p.names.IsUniqueName(name) {
		return errs.NewNameError(string(name), "already declared in this program")
	}
	return nil
}

// register inserts name → kind into the shared namespace and insertion
// order. Callers must only invoke this after every well-formedness check
// for the declaration has already passed.
func (p *Program) register(name lang.Identifier, kind DeclKind) {
	p.names.Add(name)
	p.kinds[name] = kind
	p.order = append(p.order, name)
}

// Interface returns the declared interface named id, if any.
func (p *Program) Interface(id lang.Identifier) (*InterfaceType, bool) {
	it, ok := p.interfaces[id]
	return it, ok
}

// Record returns the declared record named id, if any.
func (p *Program) Record(id lang.Identifier) (*RecordType, bool) {
	rt, ok := p.records[id]
	return rt, ok
}

// Function returns the declared function named id, if any.
func (p *Program) Function(id lang.Identifier) (*Function, bool) {
	fn, ok := p.functions[id]
	return fn, ok
}

// RegisterTypes returns the static register table for the declared
// function named id, if any.
func (p *Program) RegisterTypes(id lang.Identifier) (*register.RegisterTypes, bool) {
	rt, ok := p.functionRegisters[id]
	return rt, ok
}

// InterfaceField implements half of register.TypeResolver, letting
// RegisterTypes.GetType walk member paths without program importing
// register's consumer side (dependency inversion — register defines the
// interface, program implements it).
func (p *Program) InterfaceField(id, field lang.Identifier) (types.PlaintextType, bool) {
	it, ok := p.interfaces[id]
	if !ok {
		return types.PlaintextType{}, false
	}
	for _, f := range it.Fields {
		if f.Name == field {
			return f.Type, true
		}
	}
	return types.PlaintextType{}, false
}

// RecordEntry implements the other half of register.TypeResolver: it
// resolves a record's top-level entry to the entry's declared plaintext
// type (mode dropped), the only projection a record locator supports.
func (p *Program) RecordEntry(id, entry lang.Identifier) (types.PlaintextType, bool) {
	rt, ok := p.records[id]
	if !ok {
		return types.PlaintextType{}, false
	}
	for _, e := range rt.Entries {
		if e.Name == entry {
			return e.Type.Type, true
		}
	}
	return types.PlaintextType{}, false
}

// hasInterface reports whether id names a declared interface.
func (p *Program) hasInterface(id lang.Identifier) bool {
	_, ok := p.interfaces[id]
	return ok
}

// hasRecord reports whether id names a declared record.
func (p *Program) hasRecord(id lang.Identifier) bool {
	_, ok := p.records[id]
	return ok
}

// checkPlaintextTypeResolves requires an Interface(id) reference to
// already be declared.
func (p *Program) checkPlaintextTypeResolves(t types.PlaintextType) error {
	if t.IsInterface() && !p.hasInterface(t.InterfaceID()) {
		return errs.NewTypeResolveError(string(t.InterfaceID()), "interface not declared")
	}
	return nil
}

// checkValueTypeResolves requires an Interface or Record reference to
// already be declared. Shared by input and output checking.
func (p *Program) checkValueTypeResolves(vt types.ValueType) error {
	if vt.IsRecord() {
		if !p.hasRecord(vt.RecordID()) {
			return errs.NewTypeResolveError(string(vt.RecordID()), "record not declared")
		}
		return nil
	}
	return p.checkPlaintextTypeResolves(vt.Plaintext())
}
