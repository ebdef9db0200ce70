package register

import (
	"fmt"

	"avm/errs"
	"avm/lang"
	"avm/types"
)

// TypeResolver resolves a single (interface, field) or (record, entry)
// pair to its declared plaintext type. Program implements this; register
// depends only on the interface so that register never imports program
// (program is the one that imports register, not the reverse).
type TypeResolver interface {
	InterfaceField(id lang.Identifier, field lang.Identifier) (types.PlaintextType, bool)
	RecordEntry(id lang.Identifier, entry lang.Identifier) (types.PlaintextType, bool)
}

// slot is one entry in the dense, monotone locator sequence spanning
// inputs then destinations.
type slot struct {
	isInput      bool
	valueType    types.ValueType    // valid when isInput
	registerType types.RegisterType // always valid
}

// OutputDecl is one declared (Register, ValueType) output pair.
type OutputDecl struct {
	Register Register
	Type     types.ValueType
}

// RegisterTypes is the per-function static register table: classification
// of every input/destination locator, and the function's declared outputs
// in order.
type RegisterTypes struct {
	slots     []slot
	numInputs int
	outputs   []OutputDecl
}

// NewRegisterTypes constructs an empty register table.
func NewRegisterTypes() *RegisterTypes {
	return &RegisterTypes{}
}

// AddInput records a function input. reg must be a Locator(k) where
// k == len(inputs) (monotone from 0, not previously seen).
func (rt *RegisterTypes) AddInput(reg Register, vt types.ValueType) error {
	if reg.IsMember() {
		return errs.NewRegisterError(reg.String(), "input register must be a locator, not a member")
	}
	want := uint64(len(rt.slots))
	if uint64(reg.Loc()) != want {
		return errs.NewRegisterError(reg.String(), fmt.Sprintf("non-monotone input locator: expected r%d", want))
	}
	rt.slots = append(rt.slots, slot{isInput: true, valueType: vt, registerType: vt.DropMode()})
	rt.numInputs++
	return nil
}

// AddDestination records an instruction's destination. reg must be a
// Locator(k) where k == len(inputs)+len(destinations) (never a member,
// never previously written).
func (rt *RegisterTypes) AddDestination(reg Register, regType types.RegisterType) error {
	if reg.IsMember() {
		return errs.NewRegisterError(reg.String(), "destination register must be a locator, not a member")
	}
	want := uint64(len(rt.slots))
	if uint64(reg.Loc()) != want {
		return errs.NewRegisterError(reg.String(), fmt.Sprintf("non-monotone destination locator: expected r%d", want))
	}
	rt.slots = append(rt.slots, slot{isInput: false, registerType: regType})
	return nil
}

// AddOutput records a declared function output. There is no monotonicity
// constraint on outputs: they may alias inputs or destinations, and member
// paths are allowed. Returns true if reg is also an input register — a
// non-fatal condition the caller (package program) surfaces as a
// Diagnostic rather than failing the declaration.
func (rt *RegisterTypes) AddOutput(reg Register, vt types.ValueType) (aliasesInput bool, err error) {
	rt.outputs = append(rt.outputs, OutputDecl{Register: reg, Type: vt})
	return rt.IsInput(reg), nil
}

// IsInput reports whether reg names (the locator of) a declared input.
func (rt *RegisterTypes) IsInput(reg Register) bool {
	loc := uint64(reg.Loc())
	return loc < uint64(rt.numInputs)
}

// ToOutputs returns the declared outputs in order.
func (rt *RegisterTypes) ToOutputs() []OutputDecl {
	out := make([]OutputDecl, len(rt.outputs))
	copy(out, rt.outputs)
	return out
}

// NumInputs returns the number of declared inputs.
func (rt *RegisterTypes) NumInputs() int { return rt.numInputs }

// InputTypes returns the declared input value types in order, for Stack
// construction.
func (rt *RegisterTypes) InputTypes() []types.ValueType {
	out := make([]types.ValueType, 0, rt.numInputs)
	for i := 0; i < rt.numInputs; i++ {
		out = append(out, rt.slots[i].valueType)
	}
	return out
}

// GetType resolves the static RegisterType of reg.
//
// For Locator(n) it fetches the stored type for slot n (input or
// destination). For Member(n, path) it fetches locator n's type, then
// walks path left-to-right through resolver. A path rooted at a Record
// locator resolves its first step against the record's declared entries
// (a record's top-level entries are projectable; nothing deeper about the
// record is); every later step must be an Interface(id) that resolves, and
// the final step yields a Plaintext register type.
func (rt *RegisterTypes) GetType(resolver TypeResolver, reg Register) (types.RegisterType, error) {
	loc := uint64(reg.Loc())
	if loc >= uint64(len(rt.slots)) {
		return types.RegisterType{}, errs.NewRegisterError(reg.String(), "locator not defined")
	}
	base := rt.slots[loc].registerType

	if reg.IsLocator() {
		return base, nil
	}

	path := reg.Path()
	var current types.PlaintextType
	if base.IsRecord() {
		entry, ok := resolver.RecordEntry(base.RecordID(), path[0])
		if !ok {
			return types.RegisterType{}, errs.NewRegisterError(reg.String(),
				fmt.Sprintf("record %s has no entry %q", base.RecordID(), path[0]))
		}
		current = entry
		path = path[1:]
	} else {
		current = base.Plaintext()
	}

	for _, field := range path {
		if !current.IsInterface() {
			return types.RegisterType{}, errs.NewRegisterError(reg.String(),
				fmt.Sprintf("cannot project field %q through non-interface type %s", field, current))
		}
		next, ok := resolver.InterfaceField(current.InterfaceID(), field)
		if !ok {
			return types.RegisterType{}, errs.NewRegisterError(reg.String(),
				fmt.Sprintf("interface %s has no field %q", current.InterfaceID(), field))
		}
		current = next
	}
	return types.PlaintextRegister(current), nil
}
