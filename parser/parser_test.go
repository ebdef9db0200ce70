package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avm/errs"
	"avm/exec"
	"avm/value"
)

const messageSource = `
interface message:
    first as field;
    second as field;

function compute:
    input r0 as message.private;
    add r0.first r0.second into r1;
    output r1 as field.private;
`

const tokenSource = `
record token:
    owner as address.private;
    balance as u64.private;
    token_amount as u64.private;

function compute:
    input r0 as token.record;
    add r0.token_amount r0.token_amount into r1;
    output r1 as u64.private;
`

func TestParseAndEvaluateFields(t *testing.T) {
	source := `
function foo:
    input r0 as field.public;
    input r1 as field.private;
    add r0 r1 into r2;
    output r2 as field.private;
`
	p, diags, err := Parse(source)
	require.NoError(t, err)
	assert.Empty(t, diags)

	two, err := ParseValueText("2field")
	require.NoError(t, err)
	three, err := ParseValueText("3field")
	require.NoError(t, err)

	outputs, err := exec.NewEvaluator(p).Evaluate("foo", []value.RegisterValue{two, three})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "5field.private", outputs[0].String())
}

func TestParseAndEvaluateInterfaceProjection(t *testing.T) {
	p, _, err := Parse(messageSource)
	require.NoError(t, err)

	input, err := ParseValueText("{ first: 2field, second: 3field }")
	require.NoError(t, err)

	outputs, err := exec.NewEvaluator(p).Evaluate("compute", []value.RegisterValue{input})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "5field.private", outputs[0].String())
}

func TestParseAndEvaluateRecordProjection(t *testing.T) {
	p, _, err := Parse(tokenSource)
	require.NoError(t, err)

	input, err := ParseValueText(
		"{ owner: aleo1d5hg2z3ma00382pngntdp68e74zv54jdxy249qhaujhks9c72yrs33ddah, balance: 5u64, token_amount: 100u64 }")
	require.NoError(t, err)
	require.True(t, input.IsRecord())

	outputs, err := exec.NewEvaluator(p).Evaluate("compute", []value.RegisterValue{input})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "200u64.private", outputs[0].String())
}

func TestRoundTrip(t *testing.T) {
	first, _, err := Parse(messageSource)
	require.NoError(t, err)

	printed := first.String()
	second, _, err := Parse(printed)
	require.NoError(t, err)

	assert.Equal(t, printed, second.String())
	assert.Equal(t, first.Identifiers(), second.Identifiers())
}

func TestParseForwardReferenceFails(t *testing.T) {
	source := `
interface message:
    second as unknown;
`
	_, _, err := Parse(source)
	var resolveErr *errs.TypeResolveError
	require.Error(t, err)
	assert.True(t, errors.As(err, &resolveErr))
}

func TestParseReservedNameFails(t *testing.T) {
	source := `
interface record:
    first as field;
`
	_, _, err := Parse(source)
	var nameErr *errs.NameError
	require.Error(t, err)
	assert.True(t, errors.As(err, &nameErr))
}

func TestParseOutputAliasDiagnostic(t *testing.T) {
	source := `
function echo:
    input r0 as field.public;
    output r0 as field.public;
`
	_, diags, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "r0", diags[0].Register)
}

func TestParseRejectsUnknownOpcode(t *testing.T) {
	source := `
function foo:
    input r0 as field.public;
    frobnicate r0 r0 into r1;
    output r1 as field.public;
`
	_, _, err := Parse(source)
	assert.Error(t, err)
}

func TestParseRejectsInputAfterInstruction(t *testing.T) {
	source := `
function foo:
    input r0 as field.public;
    add r0 r0 into r1;
    input r2 as field.public;
    output r1 as field.public;
`
	_, _, err := Parse(source)
	assert.Error(t, err)
}

func TestParseRegisterForms(t *testing.T) {
	reg, err := ParseRegister("r12")
	require.NoError(t, err)
	assert.Equal(t, "r12", reg.String())

	reg, err = ParseRegister("r0.first.second")
	require.NoError(t, err)
	assert.Equal(t, "r0.first.second", reg.String())

	_, err = ParseRegister("rx")
	assert.Error(t, err)
}

func TestParseValueTextNestedStruct(t *testing.T) {
	rv, err := ParseValueText("{ outer: { inner: 1u8 }, flag: true }")
	require.NoError(t, err)
	require.False(t, rv.IsRecord())

	outer, ok := rv.Plaintext().Field("outer")
	require.True(t, ok)
	inner, ok := outer.Field("inner")
	require.True(t, ok)
	assert.Equal(t, "1u8", inner.Literal().String())
}
