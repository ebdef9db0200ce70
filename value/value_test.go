package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avm/lang"
	"avm/types"
)

func TestPlaintextStructProjection(t *testing.T) {
	p := NewStructPlaintext([]PlaintextField{
		{Name: "first", Value: NewLiteralPlaintext(NewFieldLiteral(big.NewInt(1)))},
		{Name: "second", Value: NewLiteralPlaintext(NewFieldLiteral(big.NewInt(2)))},
	})

	first, ok := p.Field("first")
	require.True(t, ok)
	assert.True(t, first.Equal(NewLiteralPlaintext(NewFieldLiteral(big.NewInt(1)))))

	_, ok = p.Field("missing")
	assert.False(t, ok)
}

func TestPlaintextEquality(t *testing.T) {
	a := NewStructPlaintext([]PlaintextField{
		{Name: "x", Value: NewLiteralPlaintext(NewBooleanLiteral(true))},
	})
	b := NewStructPlaintext([]PlaintextField{
		{Name: "x", Value: NewLiteralPlaintext(NewBooleanLiteral(true))},
	})
	c := NewStructPlaintext([]PlaintextField{
		{Name: "x", Value: NewLiteralPlaintext(NewBooleanLiteral(false))},
	})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestRecordValueEntryLookupAndEquality(t *testing.T) {
	owner := NewAddressLiteral("aleo1exampleaddress")
	balance, err := NewIntegerLiteral(types.U64, big.NewInt(100))
	require.NoError(t, err)
	amount, err := NewIntegerLiteral(types.U64, big.NewInt(9))
	require.NoError(t, err)

	r := NewRecordValue(owner, balance, []RecordEntry{
		{Name: "token_amount", Value: NewLiteralPlaintext(amount)},
	})

	entry, ok := r.Entry("token_amount")
	require.True(t, ok)
	assert.True(t, entry.Equal(NewLiteralPlaintext(amount)))

	r2 := NewRecordValue(owner, balance, []RecordEntry{
		{Name: "token_amount", Value: NewLiteralPlaintext(amount)},
	})
	assert.True(t, r.Equal(r2))
}

func TestRegisterValueMatchesType(t *testing.T) {
	lit, err := NewIntegerLiteral(types.U64, big.NewInt(1))
	require.NoError(t, err)
	rv := NewPlaintextRegisterValue(NewLiteralPlaintext(lit))

	assert.True(t, rv.MatchesType(types.PlaintextRegister(types.Literal(types.U64))))
	assert.False(t, rv.MatchesType(types.PlaintextRegister(types.Literal(types.Field))))
	assert.False(t, rv.MatchesType(types.RecordRegister(lang.Identifier("token"))))

	recv := NewRecordRegisterValue(NewRecordValue(
		NewAddressLiteral("aleo1x"), lit, nil,
	))
	assert.True(t, recv.MatchesType(types.RecordRegister(lang.Identifier("token"))))
}

func TestFromRegisterValueStampsMode(t *testing.T) {
	lit, err := NewIntegerLiteral(types.U64, big.NewInt(7))
	require.NoError(t, err)
	rv := NewPlaintextRegisterValue(NewLiteralPlaintext(lit))

	vt := types.PlaintextValue(types.Public, types.Literal(types.U64))
	out := FromRegisterValue(rv, vt)
	assert.Equal(t, KindPublic, out.Kind())
	assert.Equal(t, "7u64.public", out.String())
}
