package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avm/types"
)

func TestIntegerLiteralRangeChecking(t *testing.T) {
	_, err := NewIntegerLiteral(types.U8, big.NewInt(255))
	require.NoError(t, err)

	_, err = NewIntegerLiteral(types.U8, big.NewInt(256))
	assert.Error(t, err)

	_, err = NewIntegerLiteral(types.I8, big.NewInt(-128))
	assert.NoError(t, err)

	_, err = NewIntegerLiteral(types.I8, big.NewInt(-129))
	assert.Error(t, err)

	_, err = NewIntegerLiteral(types.U64, big.NewInt(-1))
	assert.Error(t, err, "unsigned kinds reject negative magnitudes")
}

func TestFieldLiteralEquality(t *testing.T) {
	a := NewFieldLiteral(big.NewInt(5))
	b := NewFieldLiteral(big.NewInt(5))
	c := NewFieldLiteral(big.NewInt(6))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewScalarLiteral(big.NewInt(5))), "field and scalar literals of equal magnitude are different kinds")
}

func TestLiteralStringForm(t *testing.T) {
	lit, err := NewIntegerLiteral(types.U64, big.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, "200u64", lit.String())

	assert.Equal(t, "true", NewBooleanLiteral(true).String())
	assert.Equal(t, `"hello"`, NewStringLiteral("hello").String())
	assert.Equal(t, "5field", NewFieldLiteral(big.NewInt(5)).String())
}

func TestLiteralEqualAcrossKinds(t *testing.T) {
	u, err := NewIntegerLiteral(types.U64, big.NewInt(5))
	require.NoError(t, err)
	i, err := NewIntegerLiteral(types.I64, big.NewInt(5))
	require.NoError(t, err)
	assert.False(t, u.Equal(i), "same magnitude, different literal kinds never compare equal")
}
