// Package ops implements the built-in instruction set. The core
// (package program) composes instructions through a four-operation
// capability interface and never inspects opcode identity; this package is
// where opcode identity lives: an Opcode newtype, a string<->opcode
// lookup table pair, and a per-opcode semantics entry the one generic
// Instruction shell dispatches through.
package ops

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"avm/errs"
	"avm/program"
	"avm/register"
	"avm/types"
	"avm/value"
)

// Opcode identifies one built-in instruction.
type Opcode byte

const (
	Add Opcode = iota
	Sub
	Mul
	Div
	And
	Or
	Xor
	Not
)

// semantics is one row of the opcode table: textual name, operand count,
// the literal kinds the opcode accepts, and the runtime effect. Every
// opcode here is kind-closed: operands share one kind and the result has
// that same kind, so OutputType needs no per-opcode result column.
type semantics struct {
	name    string
	arity   int
	accepts func(types.LiteralKind) bool
	apply   func(types.LiteralKind, []value.Literal) (value.Literal, error)
}

func isArithmeticKind(k types.LiteralKind) bool {
	return k == types.Field || k == types.Scalar || k == types.Group ||
		k.IsSigned() || k.IsUnsigned()
}

// Group addition is curve-point addition in the full system; the core's
// integer-encoded stand-in cannot divide, so div accepts one kind fewer.
func isDivisibleKind(k types.LiteralKind) bool {
	return k == types.Field || k == types.Scalar || k.IsSigned() || k.IsUnsigned()
}

func isBooleanKind(k types.LiteralKind) bool { return k == types.Boolean }

var opcodeTable = map[Opcode]semantics{
	Add: {name: "add", arity: 2, accepts: isArithmeticKind, apply: applyArithmetic(Add)},
	Sub: {name: "sub", arity: 2, accepts: isArithmeticKind, apply: applyArithmetic(Sub)},
	Mul: {name: "mul", arity: 2, accepts: isArithmeticKind, apply: applyArithmetic(Mul)},
	Div: {name: "div", arity: 2, accepts: isDivisibleKind, apply: applyArithmetic(Div)},
	And: {name: "and", arity: 2, accepts: isBooleanKind, apply: applyBoolean(And)},
	Or:  {name: "or", arity: 2, accepts: isBooleanKind, apply: applyBoolean(Or)},
	Xor: {name: "xor", arity: 2, accepts: isBooleanKind, apply: applyBoolean(Xor)},
	Not: {name: "not", arity: 1, accepts: isBooleanKind, apply: applyBoolean(Not)},
}

var nameToOpcode map[string]Opcode

func init() {
	nameToOpcode = make(map[string]Opcode, len(opcodeTable))
	for op, sem := range opcodeTable {
		nameToOpcode[sem.name] = op
	}
}

// String renders the opcode's source spelling.
func (op Opcode) String() string {
	if sem, ok := opcodeTable[op]; ok {
		return sem.name
	}
	return fmt.Sprintf("?unknown-opcode(%d)?", byte(op))
}

// ParseOpcode recovers an Opcode from its source spelling.
func ParseOpcode(s string) (Opcode, bool) {
	op, ok := nameToOpcode[s]
	return op, ok
}

// Instruction is the one generic shell every built-in opcode shares. It
// satisfies program.Instruction.
type Instruction struct {
	opcode   Opcode
	operands []register.Operand[value.Literal]
	dest     register.Register
}

// New constructs an instruction, checking the opcode's declared arity.
func New(opcode Opcode, operands []register.Operand[value.Literal], dest register.Register) (*Instruction, error) {
	sem, ok := opcodeTable[opcode]
	if !ok {
		return nil, errs.NewEvaluationError(fmt.Sprintf("unknown opcode %d", byte(opcode)))
	}
	if len(operands) != sem.arity {
		return nil, errs.NewArityError(fmt.Sprintf("%s operands", sem.name), sem.arity, len(operands))
	}
	cp := make([]register.Operand[value.Literal], len(operands))
	copy(cp, operands)
	return &Instruction{opcode: opcode, operands: cp, dest: dest}, nil
}

// Opcode returns the instruction's opcode.
func (in *Instruction) Opcode() Opcode { return in.opcode }

// Operands returns the instruction's ordered operand list.
func (in *Instruction) Operands() []register.Operand[value.Literal] {
	out := make([]register.Operand[value.Literal], len(in.operands))
	copy(out, in.operands)
	return out
}

// Destination returns the register the instruction writes.
func (in *Instruction) Destination() register.Register { return in.dest }

// OutputType implements the static output-type rule shared by every
// built-in opcode: all operands must carry the same literal plaintext
// type, the opcode must accept that kind, and the destination has the
// same type.
func (in *Instruction) OutputType(operandTypes []types.RegisterType) (types.RegisterType, error) {
	sem := opcodeTable[in.opcode]
	if len(operandTypes) != sem.arity {
		return types.RegisterType{}, errs.NewArityError(fmt.Sprintf("%s operands", sem.name), sem.arity, len(operandTypes))
	}
	first := operandTypes[0]
	if !first.IsPlaintext() || !first.Plaintext().IsLiteral() {
		return types.RegisterType{}, errs.NewTypeMismatch(
			fmt.Sprintf("%s operand", sem.name), "a literal type", first.String())
	}
	kind := first.Plaintext().LiteralKind()
	if !sem.accepts(kind) {
		return types.RegisterType{}, errs.NewTypeMismatch(
			fmt.Sprintf("%s operand", sem.name), "a supported literal kind", kind.String())
	}
	for _, ot := range operandTypes[1:] {
		if !ot.Equal(first) {
			return types.RegisterType{}, errs.NewTypeMismatch(
				fmt.Sprintf("%s operand", sem.name), first.String(), ot.String())
		}
	}
	return first, nil
}

// Execute loads every operand, applies the opcode's semantics, and stores
// the result at the destination.
func (in *Instruction) Execute(rf program.RegisterFile) error {
	sem := opcodeTable[in.opcode]
	lits := make([]value.Literal, len(in.operands))
	for i, op := range in.operands {
		rv, err := rf.Load(op)
		if err != nil {
			return err
		}
		if rv.IsRecord() || !rv.Plaintext().IsLeaf() {
			return errs.NewEvaluationError(
				fmt.Sprintf("%s operand %d is not a literal value", sem.name, i))
		}
		lits[i] = rv.Plaintext().Literal()
	}
	kind := lits[0].Kind()
	for i, lit := range lits[1:] {
		if lit.Kind() != kind {
			return errs.NewEvaluationError(
				fmt.Sprintf("%s operand %d has kind %s, want %s", sem.name, i+1, lit.Kind(), kind))
		}
	}
	result, err := sem.apply(kind, lits)
	if err != nil {
		return err
	}
	return rf.Store(in.dest, value.NewPlaintextRegisterValue(value.NewLiteralPlaintext(result)))
}

// String renders the instruction the way it appears in source:
// "add r0 r1 into r2".
func (in *Instruction) String() string {
	parts := make([]string, 0, len(in.operands)+1)
	parts = append(parts, in.opcode.String())
	for _, op := range in.operands {
		if op.IsLiteral() {
			parts = append(parts, op.Literal().String())
		} else {
			parts = append(parts, op.Register().String())
		}
	}
	return fmt.Sprintf("%s into %s", strings.Join(parts, " "), in.dest)
}

func applyArithmetic(op Opcode) func(types.LiteralKind, []value.Literal) (value.Literal, error) {
	return func(kind types.LiteralKind, lits []value.Literal) (value.Literal, error) {
		switch kind {
		case types.Field, types.Scalar:
			return applyFieldArithmetic(op, kind, lits[0], lits[1])
		default:
			return applyIntegerArithmetic(op, kind, lits[0], lits[1])
		}
	}
}

func applyFieldArithmetic(op Opcode, kind types.LiteralKind, a, b value.Literal) (value.Literal, error) {
	var out fr.Element
	av, bv := a.FieldValue(), b.FieldValue()
	switch op {
	case Add:
		out.Add(av, bv)
	case Sub:
		out.Sub(av, bv)
	case Mul:
		out.Mul(av, bv)
	case Div:
		if bv.IsZero() {
			return value.Literal{}, errs.NewEvaluationError("division by zero")
		}
		out.Div(av, bv)
	}
	result := new(big.Int)
	out.BigInt(result)
	if kind == types.Scalar {
		return value.NewScalarLiteral(result), nil
	}
	return value.NewFieldLiteral(result), nil
}

func applyIntegerArithmetic(op Opcode, kind types.LiteralKind, a, b value.Literal) (value.Literal, error) {
	av, bv := a.IntValue(), b.IntValue()
	out := new(big.Int)
	switch op {
	case Add:
		out.Add(av, bv)
	case Sub:
		out.Sub(av, bv)
	case Mul:
		out.Mul(av, bv)
	case Div:
		if bv.Sign() == 0 {
			return value.Literal{}, errs.NewEvaluationError("division by zero")
		}
		out.Quo(av, bv)
	}
	if kind == types.Group {
		return value.NewGroupLiteral(out), nil
	}
	lit, err := value.NewIntegerLiteral(kind, out)
	if err != nil {
		return value.Literal{}, errs.NewEvaluationError(
			fmt.Sprintf("%s overflows %s", out, kind))
	}
	return lit, nil
}

func applyBoolean(op Opcode) func(types.LiteralKind, []value.Literal) (value.Literal, error) {
	return func(_ types.LiteralKind, lits []value.Literal) (value.Literal, error) {
		if op == Not {
			return value.NewBooleanLiteral(!lits[0].BoolValue()), nil
		}
		a, b := lits[0].BoolValue(), lits[1].BoolValue()
		switch op {
		case And:
			return value.NewBooleanLiteral(a && b), nil
		case Or:
			return value.NewBooleanLiteral(a || b), nil
		default:
			return value.NewBooleanLiteral(a != b), nil
		}
	}
}
