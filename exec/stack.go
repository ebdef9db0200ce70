// Package exec implements the runtime half of the module: the Stack (the
// per-call register file) and the Evaluator.
// A Stack lives only for the duration of one Evaluate call and is never
// shared; concurrent Evaluate calls on the same immutable Program are safe
// because each builds its own Stack.
package exec

import (
	"fmt"

	"avm/errs"
	"avm/lang"
	"avm/program"
	"avm/register"
	"avm/types"
	"avm/value"
)

// Stack is the runtime register file: a reference to the program, the
// function's static register table, and a write-once Locator → value
// mapping.
type Stack struct {
	program   *program.Program
	types     *register.RegisterTypes
	registers map[register.Locator]value.RegisterValue
}

// NewStack builds a register file for one evaluation, populating every
// input locator in order. It requires exactly as many inputs as the
// function declares, and that each input structurally matches its declared
// value type. Mode is validated only structurally: a private declaration
// accepts a plaintext input, since the core carries no ciphertexts.
func NewStack(p *program.Program, rt *register.RegisterTypes, inputs []value.RegisterValue) (*Stack, error) {
	if len(inputs) != rt.NumInputs() {
		return nil, errs.NewArityError("function inputs", rt.NumInputs(), len(inputs))
	}
	s := &Stack{
		program:   p,
		types:     rt,
		registers: make(map[register.Locator]value.RegisterValue, len(inputs)),
	}
	declared := rt.InputTypes()
	for i, in := range inputs {
		if err := s.matchesRegisterValue(in, declared[i]); err != nil {
			return nil, err
		}
		if err := s.Store(register.NewLocator(uint64(i)), in); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load resolves an operand to its runtime value: a literal materializes as
// a plaintext leaf, a locator reads its stored value, and a member
// projects through the stored value's structure.
func (s *Stack) Load(op register.Operand[value.Literal]) (value.RegisterValue, error) {
	if op.IsLiteral() {
		return value.NewPlaintextRegisterValue(value.NewLiteralPlaintext(op.Literal())), nil
	}
	return s.LoadRegister(op.Register())
}

// LoadRegister resolves a register directly, the form the evaluator uses
// when collecting declared outputs.
func (s *Stack) LoadRegister(reg register.Register) (value.RegisterValue, error) {
	stored, ok := s.registers[reg.Loc()]
	if !ok {
		return value.RegisterValue{}, errs.NewRegisterError(reg.String(), "register holds no value")
	}
	if reg.IsLocator() {
		return stored, nil
	}

	path := reg.Path()
	var current value.PlaintextValue
	if stored.IsRecord() {
		entry, err := projectRecordEntry(stored.Record(), path[0])
		if err != nil {
			return value.RegisterValue{}, errs.NewRegisterError(reg.String(), err.Error())
		}
		current = entry
		path = path[1:]
	} else {
		current = stored.Plaintext()
	}

	for _, field := range path {
		if current.IsLeaf() {
			return value.RegisterValue{}, errs.NewRegisterError(reg.String(),
				fmt.Sprintf("cannot project field %q out of a literal", field))
		}
		next, ok := current.Field(field)
		if !ok {
			return value.RegisterValue{}, errs.NewRegisterError(reg.String(),
				fmt.Sprintf("value has no field %q", field))
		}
		current = next
	}
	return value.NewPlaintextRegisterValue(current), nil
}

// projectRecordEntry resolves the one projection a record value supports:
// its fixed owner and balance, or a declared top-level entry.
func projectRecordEntry(r value.RecordValue, name lang.Identifier) (value.PlaintextValue, error) {
	switch name {
	case "owner":
		return value.NewLiteralPlaintext(r.Owner), nil
	case "balance":
		return value.NewLiteralPlaintext(r.Balance), nil
	}
	entry, ok := r.Entry(name)
	if !ok {
		return value.PlaintextValue{}, fmt.Errorf("record has no entry %q", name)
	}
	return entry, nil
}

// Store writes a destination register. Destinations are always bare
// locators and every locator is written at most once.
func (s *Stack) Store(dest register.Register, v value.RegisterValue) error {
	if dest.IsMember() {
		return errs.NewRegisterError(dest.String(), "cannot store to a member projection")
	}
	if _, ok := s.registers[dest.Loc()]; ok {
		return errs.NewRegisterError(dest.String(), "register already holds a value")
	}
	s.registers[dest.Loc()] = v
	return nil
}

// MatchesValue structurally checks a mode-stamped output value against its
// declared value type: the mode-stamp must agree with the declaration and
// the carried plaintext/record must match shape for shape down to literal
// kinds.
func (s *Stack) MatchesValue(v value.Value, vt types.ValueType) error {
	if vt.IsRecord() {
		if v.Kind() != value.KindRecord {
			return errs.NewEvaluationError(
				fmt.Sprintf("expected a %s record value, got %s", vt.RecordID(), v))
		}
		return s.matchesRegisterValue(value.NewRecordRegisterValue(v.Record()), vt)
	}
	expected := map[types.Mode]value.Kind{
		types.Constant: value.KindConstant,
		types.Public:   value.KindPublic,
		types.Private:  value.KindPrivate,
	}[vt.ModeTag()]
	if v.Kind() != expected {
		return errs.NewEvaluationError(
			fmt.Sprintf("value %s does not carry mode %s", v, vt.ModeTag()))
	}
	return s.matchesRegisterValue(value.NewPlaintextRegisterValue(v.Plaintext()), vt)
}

// matchesRegisterValue structurally checks a raw register value against a
// declared value type, resolving interface and record shapes through the
// program. Modes play no part; only shape and literal kinds do.
func (s *Stack) matchesRegisterValue(rv value.RegisterValue, vt types.ValueType) error {
	if vt.IsRecord() {
		if !rv.IsRecord() {
			return errs.NewEvaluationError(
				fmt.Sprintf("expected a %s record value, got %s", vt.RecordID(), rv))
		}
		return s.matchesRecordShape(rv.Record(), vt.RecordID())
	}
	if rv.IsRecord() {
		return errs.NewEvaluationError(
			fmt.Sprintf("expected a %s value, got record %s", vt.Plaintext(), rv))
	}
	return s.matchesPlaintextShape(rv.Plaintext(), vt.Plaintext())
}

func (s *Stack) matchesPlaintextShape(pv value.PlaintextValue, pt types.PlaintextType) error {
	if pt.IsLiteral() {
		if !pv.IsLeaf() {
			return errs.NewEvaluationError(
				fmt.Sprintf("expected a %s literal, got %s", pt.LiteralKind(), pv))
		}
		if pv.Literal().Kind() != pt.LiteralKind() {
			return errs.NewEvaluationError(
				fmt.Sprintf("expected a %s literal, got %s", pt.LiteralKind(), pv.Literal().Kind()))
		}
		return nil
	}

	it, ok := s.program.Interface(pt.InterfaceID())
	if !ok {
		return errs.NewEvaluationError(
			fmt.Sprintf("interface %s is not declared", pt.InterfaceID()))
	}
	if pv.IsLeaf() {
		return errs.NewEvaluationError(
			fmt.Sprintf("expected a %s value, got literal %s", pt.InterfaceID(), pv))
	}
	fields := pv.Fields()
	if len(fields) != len(it.Fields) {
		return errs.NewEvaluationError(
			fmt.Sprintf("interface %s has %d fields, value has %d", pt.InterfaceID(), len(it.Fields), len(fields)))
	}
	for i, decl := range it.Fields {
		if fields[i].Name != decl.Name {
			return errs.NewEvaluationError(
				fmt.Sprintf("interface %s field %d is %q, value has %q", pt.InterfaceID(), i, decl.Name, fields[i].Name))
		}
		if err := s.matchesPlaintextShape(fields[i].Value, decl.Type); err != nil {
			return err
		}
	}
	return nil
}

// matchesRecordShape walks a record declaration's entries in order. The
// declared entries named owner and balance match the record value's fixed
// components; the rest must line up, name for name, with the value's
// entries.
func (s *Stack) matchesRecordShape(rv value.RecordValue, id lang.Identifier) error {
	rt, ok := s.program.Record(id)
	if !ok {
		return errs.NewEvaluationError(fmt.Sprintf("record %s is not declared", id))
	}
	next := 0
	for _, decl := range rt.Entries {
		var pv value.PlaintextValue
		switch decl.Name {
		case "owner":
			pv = value.NewLiteralPlaintext(rv.Owner)
		case "balance":
			pv = value.NewLiteralPlaintext(rv.Balance)
		default:
			if next >= len(rv.Entries) {
				return errs.NewEvaluationError(
					fmt.Sprintf("record %s value is missing entry %q", id, decl.Name))
			}
			entry := rv.Entries[next]
			next++
			if entry.Name != decl.Name {
				return errs.NewEvaluationError(
					fmt.Sprintf("record %s expects entry %q, value has %q", id, decl.Name, entry.Name))
			}
			pv = entry.Value
		}
		if err := s.matchesPlaintextShape(pv, decl.Type.Type); err != nil {
			return err
		}
	}
	if next != len(rv.Entries) {
		return errs.NewEvaluationError(
			fmt.Sprintf("record %s value has %d extra entries", id, len(rv.Entries)-next))
	}
	return nil
}
