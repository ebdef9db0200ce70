// Package parser is the reference textual front end: it recognizes the
// declaration grammar (interface/record/function blocks) and the textual
// value forms, and drives package program's builder. Parsing is
// line-oriented: a compiled comment regexp, TrimSpace/Split tokenizing,
// and per-line dispatch. All well-formedness logic stays in the builder —
// the parser only shapes text into builder calls.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"avm/lang"
	"avm/ops"
	"avm/program"
	"avm/register"
	"avm/types"
	"avm/value"
)

var (
	comments   = regexp.MustCompile(`//.*$`)
	header     = regexp.MustCompile(`^(interface|record|function)\s+([A-Za-z_][A-Za-z0-9_]*):$`)
	registerRe = regexp.MustCompile(`^r([0-9]+)((?:\.[A-Za-z_][A-Za-z0-9_]*)+)?$`)
	literalRe  = regexp.MustCompile(`^(-?[0-9]+)([a-z][a-z0-9]*)$`)
)

// Parse reads a whole program from source text. Diagnostics are the
// non-fatal builder notices accumulated across every function declaration.
func Parse(source string) (*program.Program, []program.Diagnostic, error) {
	p := program.New()
	var diagnostics []program.Diagnostic

	type block struct {
		kind string
		name lang.Identifier
		body []string
		line int
	}
	var blocks []block

	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(comments.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}
		if m := header.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{kind: m[1], name: lang.Identifier(m[2]), line: i + 1})
			continue
		}
		if len(blocks) == 0 {
			return nil, nil, fmt.Errorf("parser: line %d: %q outside any declaration", i+1, line)
		}
		if !strings.HasSuffix(line, ";") {
			return nil, nil, fmt.Errorf("parser: line %d: missing terminating ';' in %q", i+1, line)
		}
		last := &blocks[len(blocks)-1]
		last.body = append(last.body, strings.TrimSuffix(line, ";"))
	}

	for _, b := range blocks {
		switch b.kind {
		case "interface":
			fields, err := parseInterfaceBody(b.body)
			if err != nil {
				return nil, nil, fmt.Errorf("parser: interface %s (line %d): %w", b.name, b.line, err)
			}
			if err := p.AddInterface(b.name, fields); err != nil {
				return nil, nil, err
			}
		case "record":
			entries, err := parseRecordBody(b.body)
			if err != nil {
				return nil, nil, fmt.Errorf("parser: record %s (line %d): %w", b.name, b.line, err)
			}
			if err := p.AddRecord(b.name, entries); err != nil {
				return nil, nil, err
			}
		case "function":
			inputs, instructions, outputs, err := parseFunctionBody(b.body)
			if err != nil {
				return nil, nil, fmt.Errorf("parser: function %s (line %d): %w", b.name, b.line, err)
			}
			diags, err := p.AddFunction(b.name, inputs, instructions, outputs)
			if err != nil {
				return nil, nil, err
			}
			diagnostics = append(diagnostics, diags...)
		}
	}
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("parser: source contains no declarations")
	}
	return p, diagnostics, nil
}

func parseInterfaceBody(body []string) ([]program.InterfaceField, error) {
	fields := make([]program.InterfaceField, 0, len(body))
	for _, line := range body {
		name, typeText, err := splitAs(line)
		if err != nil {
			return nil, err
		}
		fields = append(fields, program.InterfaceField{
			Name: lang.Identifier(name),
			Type: parsePlaintextType(typeText),
		})
	}
	return fields, nil
}

func parseRecordBody(body []string) ([]program.RecordEntry, error) {
	entries := make([]program.RecordEntry, 0, len(body))
	for _, line := range body {
		name, typeText, err := splitAs(line)
		if err != nil {
			return nil, err
		}
		base, mode, err := splitModeSuffix(typeText)
		if err != nil {
			return nil, err
		}
		entries = append(entries, program.RecordEntry{
			Name: lang.Identifier(name),
			Type: types.NewEntryType(mode, parsePlaintextType(base)),
		})
	}
	return entries, nil
}

// parseFunctionBody enforces the declaration order inside a function
// block: inputs first, then instructions, then outputs.
func parseFunctionBody(body []string) ([]program.InputDecl, []program.Instruction, []program.OutputDecl, error) {
	var (
		inputs       []program.InputDecl
		instructions []program.Instruction
		outputs      []program.OutputDecl
	)
	const (
		sectionInputs = iota
		sectionInstructions
		sectionOutputs
	)
	section := sectionInputs

	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "input "):
			if section != sectionInputs {
				return nil, nil, nil, fmt.Errorf("input declaration %q after first instruction", line)
			}
			reg, vt, err := parseTypedRegister(strings.TrimPrefix(line, "input "))
			if err != nil {
				return nil, nil, nil, err
			}
			inputs = append(inputs, program.InputDecl{Register: reg, Type: vt})
		case strings.HasPrefix(line, "output "):
			section = sectionOutputs
			reg, vt, err := parseTypedRegister(strings.TrimPrefix(line, "output "))
			if err != nil {
				return nil, nil, nil, err
			}
			outputs = append(outputs, program.OutputDecl{Register: reg, Type: vt})
		default:
			if section == sectionOutputs {
				return nil, nil, nil, fmt.Errorf("instruction %q after first output", line)
			}
			section = sectionInstructions
			instr, err := parseInstruction(line)
			if err != nil {
				return nil, nil, nil, err
			}
			instructions = append(instructions, instr)
		}
	}
	return inputs, instructions, outputs, nil
}

// splitAs splits "NAME as TYPE" into its two halves.
func splitAs(line string) (string, string, error) {
	parts := strings.SplitN(line, " as ", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected \"NAME as TYPE\", got %q", line)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func parseTypedRegister(decl string) (register.Register, types.ValueType, error) {
	regText, typeText, err := splitAs(decl)
	if err != nil {
		return register.Register{}, types.ValueType{}, err
	}
	reg, err := ParseRegister(regText)
	if err != nil {
		return register.Register{}, types.ValueType{}, err
	}
	vt, err := parseValueType(typeText)
	if err != nil {
		return register.Register{}, types.ValueType{}, err
	}
	return reg, vt, nil
}

// ParseRegister recognizes "rN" and "rN.field1.field2..." register syntax.
func ParseRegister(s string) (register.Register, error) {
	m := registerRe.FindStringSubmatch(s)
	if m == nil {
		return register.Register{}, fmt.Errorf("invalid register %q", s)
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return register.Register{}, fmt.Errorf("invalid register index in %q", s)
	}
	if m[2] == "" {
		return register.NewLocator(n), nil
	}
	segments := strings.Split(strings.TrimPrefix(m[2], "."), ".")
	path := make([]lang.Identifier, len(segments))
	for i, seg := range segments {
		path[i] = lang.Identifier(seg)
	}
	return register.NewMember(n, path), nil
}

func parsePlaintextType(s string) types.PlaintextType {
	if kind, ok := types.ParseLiteralKind(s); ok {
		return types.Literal(kind)
	}
	return types.InterfaceRef(lang.Identifier(s))
}

// parseValueType recognizes "TYPE.MODE" and "RECORD.record".
func parseValueType(s string) (types.ValueType, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return types.ValueType{}, fmt.Errorf("expected \"TYPE.MODE\" or \"RECORD.record\", got %q", s)
	}
	if parts[1] == "record" {
		return types.RecordValue(lang.Identifier(parts[0])), nil
	}
	_, mode, err := splitModeSuffix(s)
	if err != nil {
		return types.ValueType{}, err
	}
	return types.PlaintextValue(mode, parsePlaintextType(parts[0])), nil
}

func splitModeSuffix(s string) (string, types.Mode, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected \"TYPE.MODE\", got %q", s)
	}
	switch parts[1] {
	case "constant":
		return parts[0], types.Constant, nil
	case "public":
		return parts[0], types.Public, nil
	case "private":
		return parts[0], types.Private, nil
	default:
		return "", 0, fmt.Errorf("unknown mode %q in %q", parts[1], s)
	}
}

// parseInstruction recognizes "OPCODE OPERAND* into REG".
func parseInstruction(line string) (program.Instruction, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 || tokens[len(tokens)-2] != "into" {
		return nil, fmt.Errorf("expected \"OPCODE OPERAND* into REG\", got %q", line)
	}
	opcode, ok := ops.ParseOpcode(tokens[0])
	if !ok {
		return nil, fmt.Errorf("unknown opcode %q", tokens[0])
	}
	dest, err := ParseRegister(tokens[len(tokens)-1])
	if err != nil {
		return nil, err
	}
	operands := make([]register.Operand[value.Literal], 0, len(tokens)-3)
	for _, tok := range tokens[1 : len(tokens)-2] {
		op, err := parseOperand(tok)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	}
	return ops.New(opcode, operands, dest)
}

func parseOperand(s string) (register.Operand[value.Literal], error) {
	if registerRe.MatchString(s) {
		reg, err := ParseRegister(s)
		if err != nil {
			return register.Operand[value.Literal]{}, err
		}
		return register.NewRegisterOperand[value.Literal](reg), nil
	}
	lit, err := ParseLiteralText(s)
	if err != nil {
		return register.Operand[value.Literal]{}, err
	}
	return register.NewLiteralOperand(lit), nil
}

// ParseLiteralText recognizes the textual literal forms: "true"/"false",
// quoted strings, addresses, and kind-suffixed numbers like "5field" or
// "200u64".
func ParseLiteralText(s string) (value.Literal, error) {
	env := value.DefaultEnvironment
	switch {
	case s == "true" || s == "false":
		return env.ParseLiteral(types.Boolean, s)
	case strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2:
		return env.ParseLiteral(types.String, s[1:len(s)-1])
	case strings.HasPrefix(s, "aleo1"):
		return env.ParseLiteral(types.Address, s)
	}
	m := literalRe.FindStringSubmatch(s)
	if m == nil {
		return value.Literal{}, fmt.Errorf("invalid literal %q", s)
	}
	kind, ok := types.ParseLiteralKind(m[2])
	if !ok {
		return value.Literal{}, fmt.Errorf("unknown literal kind %q in %q", m[2], s)
	}
	return env.ParseLiteral(kind, m[1])
}
