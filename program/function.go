package program

import (
	"fmt"
	"strings"

	"avm/errs"
	"avm/lang"
	"avm/register"
	"avm/types"
)

// InputDecl is one ordered (register, declared value type) function input.
type InputDecl struct {
	Register register.Register
	Type     types.ValueType
}

// OutputDecl is one ordered (register, declared value type) function
// output.
type OutputDecl struct {
	Register register.Register
	Type     types.ValueType
}

// Function is a named straight-line routine over typed registers:
// ordered inputs, an ordered instruction list, and ordered outputs.
type Function struct {
	Name         lang.Identifier
	Inputs       []InputDecl
	Instructions []Instruction
	Outputs      []OutputDecl
}

func (fn *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "function %s:\n", fn.Name)
	for _, in := range fn.Inputs {
		fmt.Fprintf(&b, "    input %s as %s;\n", in.Register, in.Type)
	}
	for _, instr := range fn.Instructions {
		fmt.Fprintf(&b, "    %s;\n", instructionText(instr))
	}
	for _, out := range fn.Outputs {
		fmt.Fprintf(&b, "    output %s as %s;\n", out.Register, out.Type)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// instructionText renders an instruction generically when it does not
// implement fmt.Stringer of its own — the core treats instructions as
// opaque, so this is the fallback form used by Display.
func instructionText(instr Instruction) string {
	if s, ok := instr.(fmt.Stringer); ok {
		return s.String()
	}
	operands := instr.Operands()
	parts := make([]string, len(operands))
	for i, op := range operands {
		if op.IsLiteral() {
			parts[i] = op.Literal().String()
		} else {
			parts[i] = op.Register().String()
		}
	}
	return fmt.Sprintf("%s into %s", strings.Join(parts, " "), instr.Destination())
}

// Evaluate runs every instruction, in source order, against rf.
func (fn *Function) Evaluate(rf RegisterFile) error {
	for _, instr := range fn.Instructions {
		if err := instr.Execute(rf); err != nil {
			return err
		}
	}
	return nil
}

// AddFunction runs the central well-formedness check: inputs, then
// instructions, then outputs. Any failure leaves Program unchanged —
// nothing is inserted until all three steps succeed. The returned
// diagnostics are non-fatal notices, currently only "output register is
// also an input".
func (p *Program) AddFunction(name lang.Identifier, inputs []InputDecl, instructions []Instruction, outputs []OutputDecl) ([]Diagnostic, error) {
	if err := checkNewName(p, name); err != nil {
		return nil, err
	}

	registers := register.NewRegisterTypes()

	// Step 1 — inputs.
	for _, in := range inputs {
		if err := p.checkValueTypeResolves(in.Type); err != nil {
			return nil, err
		}
		if err := registers.AddInput(in.Register, in.Type); err != nil {
			return nil, err
		}
	}

	// Step 2 — instructions.
	for _, instr := range instructions {
		operands := instr.Operands()
		operandTypes := make([]types.RegisterType, len(operands))
		for i, op := range operands {
			if op.IsLiteral() {
				operandTypes[i] = types.PlaintextRegister(types.Literal(op.Literal().Kind()))
				continue
			}
			rt, err := registers.GetType(p, op.Register())
			if err != nil {
				return nil, err
			}
			operandTypes[i] = rt
		}

		destType, err := instr.OutputType(operandTypes)
		if err != nil {
			return nil, errs.NewTypeMismatch("instruction output", "a resolvable register type", err.Error())
		}

		dest := instr.Destination()
		if dest.IsMember() {
			return nil, errs.NewRegisterError(dest.String(), "instruction destination must be a locator, not a member")
		}
		if err := registers.AddDestination(dest, destType); err != nil {
			return nil, err
		}
	}

	// Step 3 — outputs.
	var diagnostics []Diagnostic
	for _, out := range outputs {
		if err := p.checkValueTypeResolves(out.Type); err != nil {
			return nil, err
		}

		computed, err := registers.GetType(p, out.Register)
		if err != nil {
			return nil, err
		}
		if !computed.Equal(out.Type.DropMode()) {
			return nil, errs.NewTypeMismatch(
				fmt.Sprintf("output %s", out.Register),
				out.Type.DropMode().String(),
				computed.String(),
			)
		}

		aliasesInput, err := registers.AddOutput(out.Register, out.Type)
		if err != nil {
			return nil, err
		}
		if aliasesInput {
			d := Diagnostic{
				Register: out.Register.String(),
				Message:  "output register is also an input register",
			}
			diagnostics = append(diagnostics, d)
			p.log.WithField("register", d.Register).Warn(d.Message)
		}
	}

	fn := &Function{Name: name, Inputs: append([]InputDecl(nil), inputs...),
		Instructions: append([]Instruction(nil), instructions...),
		Outputs:      append([]OutputDecl(nil), outputs...)}
	p.functions[name] = fn
	p.functionRegisters[name] = registers
	p.register(name, DeclFunction)
	p.log.WithField("function", string(name)).Debug("added function")
	return diagnostics, nil
}
