package action_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

func TestActionSeqOverwrites(t *testing.T) {
	a := action.New(field.Modification{Field: field.Vlan, Value: field.IntVal(7)})
	b := action.New(field.Modification{Field: field.Vlan, Value: field.IntVal(9)})
	composed := a.Seq(b)
	v, ok := composed.Get(field.Vlan)
	require.True(t, ok)
	require.True(t, v.Equal(field.IntVal(9)), "b's assignment must win")
}

func TestActionSeqMergesDisjointFields(t *testing.T) {
	a := action.New(field.Modification{Field: field.Vlan, Value: field.IntVal(7)})
	b := action.New(field.Modification{Field: field.EthDst, Value: field.IntVal(1)})
	composed := a.Seq(b)
	_, ok1 := composed.Get(field.Vlan)
	_, ok2 := composed.Get(field.EthDst)
	require.True(t, ok1)
	require.True(t, ok2)
}

func TestIdentityIsNeutralForSeq(t *testing.T) {
	a := action.New(field.Modification{Field: field.Vlan, Value: field.IntVal(7)})
	require.True(t, a.Seq(action.Identity()).Equal(a))
	require.True(t, action.Identity().Seq(a).Equal(a))
}

func TestActionRestrictDropsFields(t *testing.T) {
	a := action.New(
		field.Modification{Field: field.Vlan, Value: field.IntVal(7)},
		field.Modification{Field: field.EthDst, Value: field.IntVal(1)},
	)
	r := a.Restrict(field.Vlan)
	_, ok := r.Get(field.Vlan)
	require.False(t, ok)
	v, ok := r.Get(field.EthDst)
	require.True(t, ok)
	require.True(t, v.Equal(field.IntVal(1)))
}

func TestActionKeyIsFieldOrderIndependent(t *testing.T) {
	a := action.New(
		field.Modification{Field: field.EthDst, Value: field.IntVal(1)},
		field.Modification{Field: field.Vlan, Value: field.IntVal(7)},
	)
	b := action.New(
		field.Modification{Field: field.Vlan, Value: field.IntVal(7)},
		field.Modification{Field: field.EthDst, Value: field.IntVal(1)},
	)
	require.Equal(t, a.Key(), b.Key())
}
