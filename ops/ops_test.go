package ops

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avm/program"
	"avm/register"
	"avm/types"
	"avm/value"
)

// scratchFile is a minimal program.RegisterFile for exercising Execute
// without building a whole program.
type scratchFile struct {
	slots map[uint64]value.RegisterValue
}

func newScratchFile() *scratchFile {
	return &scratchFile{slots: make(map[uint64]value.RegisterValue)}
}

func (f *scratchFile) Load(op register.Operand[value.Literal]) (value.RegisterValue, error) {
	if op.IsLiteral() {
		return value.NewPlaintextRegisterValue(value.NewLiteralPlaintext(op.Literal())), nil
	}
	return f.slots[uint64(op.Register().Loc())], nil
}

func (f *scratchFile) Store(dest register.Register, v value.RegisterValue) error {
	f.slots[uint64(dest.Loc())] = v
	return nil
}

var _ program.RegisterFile = (*scratchFile)(nil)

func litOp(lit value.Literal) register.Operand[value.Literal] {
	return register.NewLiteralOperand(lit)
}

func u64(t *testing.T, n int64) value.Literal {
	lit, err := value.NewIntegerLiteral(types.U64, big.NewInt(n))
	require.NoError(t, err)
	return lit
}

func execute(t *testing.T, opcode Opcode, operands ...value.Literal) value.Literal {
	ops := make([]register.Operand[value.Literal], len(operands))
	for i, lit := range operands {
		ops[i] = litOp(lit)
	}
	instr, err := New(opcode, ops, register.NewLocator(0))
	require.NoError(t, err)

	rf := newScratchFile()
	require.NoError(t, instr.Execute(rf))
	return rf.slots[0].Plaintext().Literal()
}

func TestFieldArithmetic(t *testing.T) {
	two := value.NewFieldLiteral(big.NewInt(2))
	three := value.NewFieldLiteral(big.NewInt(3))

	assert.True(t, execute(t, Add, two, three).Equal(value.NewFieldLiteral(big.NewInt(5))))
	assert.True(t, execute(t, Sub, three, two).Equal(value.NewFieldLiteral(big.NewInt(1))))
	assert.True(t, execute(t, Mul, two, three).Equal(value.NewFieldLiteral(big.NewInt(6))))
}

func TestFieldSubWrapsThroughModulus(t *testing.T) {
	// 2 - 3 in the scalar field is the modulus minus one, not -1.
	two := value.NewFieldLiteral(big.NewInt(2))
	three := value.NewFieldLiteral(big.NewInt(3))
	minusOne := value.NewFieldLiteral(big.NewInt(-1))

	assert.True(t, execute(t, Sub, two, three).Equal(minusOne))
}

func TestIntegerArithmeticAndOverflow(t *testing.T) {
	assert.True(t, execute(t, Add, u64(t, 100), u64(t, 100)).Equal(u64(t, 200)))
	assert.True(t, execute(t, Div, u64(t, 7), u64(t, 2)).Equal(u64(t, 3)))

	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	maxLit, err := value.NewIntegerLiteral(types.U64, max)
	require.NoError(t, err)

	instr, err := New(Add, []register.Operand[value.Literal]{litOp(maxLit), litOp(u64(t, 1))}, register.NewLocator(0))
	require.NoError(t, err)
	assert.Error(t, instr.Execute(newScratchFile()), "u64 overflow must fail at runtime")
}

func TestDivisionByZero(t *testing.T) {
	instr, err := New(Div, []register.Operand[value.Literal]{litOp(u64(t, 1)), litOp(u64(t, 0))}, register.NewLocator(0))
	require.NoError(t, err)
	assert.Error(t, instr.Execute(newScratchFile()))
}

func TestBooleanOpcodes(t *testing.T) {
	tr := value.NewBooleanLiteral(true)
	fa := value.NewBooleanLiteral(false)

	assert.True(t, execute(t, And, tr, fa).Equal(fa))
	assert.True(t, execute(t, Or, tr, fa).Equal(tr))
	assert.True(t, execute(t, Xor, tr, tr).Equal(fa))
	assert.True(t, execute(t, Not, fa).Equal(tr))
}

func TestOutputTypeRequiresMatchingKinds(t *testing.T) {
	instr, err := New(Add, []register.Operand[value.Literal]{
		litOp(value.NewFieldLiteral(big.NewInt(1))),
		litOp(value.NewFieldLiteral(big.NewInt(2))),
	}, register.NewLocator(0))
	require.NoError(t, err)

	fieldType := types.PlaintextRegister(types.Literal(types.Field))
	u64Type := types.PlaintextRegister(types.Literal(types.U64))

	out, err := instr.OutputType([]types.RegisterType{fieldType, fieldType})
	require.NoError(t, err)
	assert.True(t, out.Equal(fieldType))

	_, err = instr.OutputType([]types.RegisterType{fieldType, u64Type})
	assert.Error(t, err)

	boolType := types.PlaintextRegister(types.Literal(types.Boolean))
	_, err = instr.OutputType([]types.RegisterType{boolType, boolType})
	assert.Error(t, err, "add does not accept booleans")
}

func TestNewChecksArity(t *testing.T) {
	_, err := New(Add, []register.Operand[value.Literal]{litOp(u64(t, 1))}, register.NewLocator(0))
	assert.Error(t, err)
}

func TestInstructionString(t *testing.T) {
	instr, err := New(Add, []register.Operand[value.Literal]{
		register.NewRegisterOperand[value.Literal](register.NewLocator(0)),
		register.NewRegisterOperand[value.Literal](register.NewLocator(1)),
	}, register.NewLocator(2))
	require.NoError(t, err)
	assert.Equal(t, "add r0 r1 into r2", instr.String())
}
