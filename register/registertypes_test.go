package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avm/lang"
	"avm/types"
)

// fakeResolver implements TypeResolver over a pair of fixed tables, for
// tests that only need to exercise member-path walking.
type fakeResolver struct {
	interfaces map[lang.Identifier]map[lang.Identifier]types.PlaintextType
	records    map[lang.Identifier]map[lang.Identifier]types.PlaintextType
}

func (f fakeResolver) InterfaceField(id, field lang.Identifier) (types.PlaintextType, bool) {
	fields, ok := f.interfaces[id]
	if !ok {
		return types.PlaintextType{}, false
	}
	pt, ok := fields[field]
	return pt, ok
}

func (f fakeResolver) RecordEntry(id, entry lang.Identifier) (types.PlaintextType, bool) {
	entries, ok := f.records[id]
	if !ok {
		return types.PlaintextType{}, false
	}
	pt, ok := entries[entry]
	return pt, ok
}

func TestAddInputMonotone(t *testing.T) {
	rt := NewRegisterTypes()
	require.NoError(t, rt.AddInput(NewLocator(0), types.PlaintextValue(types.Public, types.Literal(types.Field))))
	require.NoError(t, rt.AddInput(NewLocator(1), types.PlaintextValue(types.Private, types.Literal(types.Field))))

	err := rt.AddInput(NewLocator(3), types.PlaintextValue(types.Public, types.Literal(types.Field)))
	assert.Error(t, err)
}

func TestAddDestinationRejectsMemberAndDoubleWrite(t *testing.T) {
	rt := NewRegisterTypes()
	require.NoError(t, rt.AddInput(NewLocator(0), types.PlaintextValue(types.Public, types.Literal(types.Field))))

	err := rt.AddDestination(NewMember(1, []lang.Identifier{"x"}), types.PlaintextRegister(types.Literal(types.Field)))
	assert.Error(t, err, "member cannot be a destination")

	require.NoError(t, rt.AddDestination(NewLocator(1), types.PlaintextRegister(types.Literal(types.Field))))
	err = rt.AddDestination(NewLocator(1), types.PlaintextRegister(types.Literal(types.Field)))
	assert.Error(t, err, "double write must fail")
}

func TestGetTypeMemberProjection(t *testing.T) {
	resolver := fakeResolver{
		interfaces: map[lang.Identifier]map[lang.Identifier]types.PlaintextType{
			"message": {
				"first":  types.Literal(types.Field),
				"second": types.Literal(types.Field),
			},
		},
	}

	rt := NewRegisterTypes()
	require.NoError(t, rt.AddInput(NewLocator(0), types.PlaintextValue(types.Private, types.InterfaceRef("message"))))

	rtype, err := rt.GetType(resolver, NewMember(0, []lang.Identifier{"first"}))
	require.NoError(t, err)
	assert.True(t, rtype.Equal(types.PlaintextRegister(types.Literal(types.Field))))

	_, err = rt.GetType(resolver, NewMember(0, []lang.Identifier{"unknown"}))
	assert.Error(t, err)
}

func TestGetTypeMemberIntoRecordEntry(t *testing.T) {
	resolver := fakeResolver{
		records: map[lang.Identifier]map[lang.Identifier]types.PlaintextType{
			"token": {
				"owner":        types.Literal(types.Address),
				"balance":      types.Literal(types.U64),
				"token_amount": types.Literal(types.U64),
			},
		},
	}

	rt := NewRegisterTypes()
	require.NoError(t, rt.AddInput(NewLocator(0), types.RecordValue("token")))

	rtype, err := rt.GetType(resolver, NewMember(0, []lang.Identifier{"token_amount"}))
	require.NoError(t, err)
	assert.True(t, rtype.Equal(types.PlaintextRegister(types.Literal(types.U64))))

	// Only a record's declared top-level entries are projectable.
	_, err = rt.GetType(resolver, NewMember(0, []lang.Identifier{"minted_by"}))
	assert.Error(t, err)

	_, err = rt.GetType(resolver, NewMember(0, []lang.Identifier{"token_amount", "nested"}))
	assert.Error(t, err)
}

func TestAddOutputReportsInputAlias(t *testing.T) {
	rt := NewRegisterTypes()
	require.NoError(t, rt.AddInput(NewLocator(0), types.PlaintextValue(types.Public, types.Literal(types.Field))))

	aliasesInput, err := rt.AddOutput(NewLocator(0), types.PlaintextValue(types.Public, types.Literal(types.Field)))
	require.NoError(t, err)
	assert.True(t, aliasesInput)

	require.NoError(t, rt.AddDestination(NewLocator(1), types.PlaintextRegister(types.Literal(types.Field))))
	aliasesInput, err = rt.AddOutput(NewLocator(1), types.PlaintextValue(types.Public, types.Literal(types.Field)))
	require.NoError(t, err)
	assert.False(t, aliasesInput)
}
