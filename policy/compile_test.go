package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/policy"
)

func newForest(t *testing.T) *fdd.Forest {
	t.Helper()
	return fdd.NewForest(field.DefaultOrder(), nil)
}

func TestCompileFilterMatch(t *testing.T) {
	f := newForest(t)
	h, err := policy.CompileLocal(f, policy.Filter{P: policy.Match{Field: field.Vlan, Value: field.IntVal(7)}})
	require.NoError(t, err)
	require.Equal(t, f.Id(), f.Restrict(h, field.Test{Field: field.Vlan, Value: field.IntVal(7)}))
	require.Equal(t, f.Drop(), f.Restrict(h, field.Test{Field: field.Vlan, Value: field.IntVal(8)}))
}

func TestCompileModProducesAssignment(t *testing.T) {
	f := newForest(t)
	h, err := policy.CompileLocal(f, policy.Mod{Field: field.Vlan, Value: field.IntVal(3)})
	require.NoError(t, err)
	require.True(t, f.IsLeaf(h))
	v, ok := f.LeafValue(h).Actions()[0].Get(field.Vlan)
	require.True(t, ok)
	require.True(t, v.Equal(field.IntVal(3)))
}

func TestCompileUnionOfMods(t *testing.T) {
	f := newForest(t)
	h, err := policy.CompileLocal(f, policy.PUnion{Ps: []policy.Policy{
		policy.Mod{Field: field.Vlan, Value: field.IntVal(1)},
		policy.Mod{Field: field.Vlan, Value: field.IntVal(2)},
	}})
	require.NoError(t, err)
	require.True(t, f.IsLeaf(h))
	require.Equal(t, 2, f.LeafValue(h).Size())
}

func TestCompileSeqOverwritesVlan(t *testing.T) {
	f := newForest(t)
	h, err := policy.CompileLocal(f, policy.PSeq{Ps: []policy.Policy{
		policy.Mod{Field: field.Vlan, Value: field.IntVal(1)},
		policy.Mod{Field: field.Vlan, Value: field.IntVal(2)},
	}})
	require.NoError(t, err)
	require.True(t, f.IsLeaf(h))
	v, _ := f.LeafValue(h).Actions()[0].Get(field.Vlan)
	require.True(t, v.Equal(field.IntVal(2)), "the later Mod in a Seq must win")
}

func TestCompileLocalRejectsLink(t *testing.T) {
	f := newForest(t)
	_, err := policy.CompileLocal(f, policy.Link{
		Switch1: field.IntVal(1), Port1: field.PhysicalVal(1),
		Switch2: field.IntVal(2), Port2: field.PhysicalVal(1),
	})
	require.ErrorIs(t, err, policy.ErrNonLocal)
}

func TestSpecializeFoldsSwitchMatch(t *testing.T) {
	p := policy.Filter{P: policy.And{Ps: []policy.Pred{
		policy.Match{Field: field.Switch, Value: field.IntVal(1)},
		policy.Match{Field: field.Vlan, Value: field.IntVal(7)},
	}}}
	same := policy.Specialize(field.IntVal(1), p)
	f := newForest(t)
	h, err := policy.CompileLocal(f, same)
	require.NoError(t, err)
	require.Equal(t, f.Id(), f.Restrict(h, field.Test{Field: field.Vlan, Value: field.IntVal(7)}))

	other := policy.Specialize(field.IntVal(2), p)
	require.Equal(t, policy.Filter{P: policy.PFalse{}}, other)
}

// TestCompileFilterAndSpansFieldsInDescendingOrder guards against Seq
// splicing a lower-ranked operand underneath a higher-ranked one: And
// lowers to Seq of its operands' predicate FDDs (compile.go's
// CompilePred), and here the first operand (EthType, rank 8) outranks
// the second (EthSrc, rank 4) — the order a naive x-only Seq walk
// cannot handle without panicking.
func TestCompileFilterAndSpansFieldsInDescendingOrder(t *testing.T) {
	f := newForest(t)
	p := policy.Filter{P: policy.And{Ps: []policy.Pred{
		policy.Match{Field: field.EthType, Value: field.IntVal(0x800)},
		policy.Match{Field: field.EthSrc, Value: field.IntVal(1)},
	}}}
	h, err := policy.CompileLocal(f, p)
	require.NoError(t, err)

	both := f.Restrict(f.Restrict(h, field.Test{Field: field.EthType, Value: field.IntVal(0x800)}),
		field.Test{Field: field.EthSrc, Value: field.IntVal(1)})
	require.Equal(t, f.Id(), both)

	onlyEthType := f.Restrict(f.Restrict(h, field.Test{Field: field.EthType, Value: field.IntVal(0x800)}),
		field.Test{Field: field.EthSrc, Value: field.IntVal(2)})
	require.Equal(t, f.Drop(), onlyEthType)
}

func TestCompileGlobalForwardsAcrossLink(t *testing.T) {
	f := newForest(t)
	sw1, sw2 := field.IntVal(1), field.IntVal(2)
	port1, port2 := field.PhysicalVal(1), field.PhysicalVal(2)

	perSwitch := map[field.Value]policy.Policy{
		sw1: policy.Filter{P: policy.Match{Field: field.Location, Value: port1}},
		sw2: policy.Filter{P: policy.PTrue{}},
	}
	links := []policy.Link{{Switch1: sw1, Port1: port1, Switch2: sw2, Port2: port2}}

	h, err := policy.CompileGlobal(f, perSwitch, links)
	require.NoError(t, err)
	require.False(t, f.IsLeaf(h))
}

// TestCompileGlobalHandlesLocalPolicyTestingFieldsPastLocation guards
// against the same Seq defect TestCompileFilterAndSpansFieldsInDescendingOrder
// covers, reached here through CompileGlobal: CompileGlobal builds
// Seq(local, topo), and topo (compileTopology) only ever tests Switch and
// Location (ranks 0-1), while any realistic per-switch policy tests
// fields after Location — IPProto (rank 9) and EthSrc (rank 4) here, in
// descending order relative to each other too. A local-only Seq walk
// would try to splice topo's Switch/Location test underneath this
// policy's higher-ranked root test and panic.
func TestCompileGlobalHandlesLocalPolicyTestingFieldsPastLocation(t *testing.T) {
	f := newForest(t)
	sw1, sw2 := field.IntVal(1), field.IntVal(2)
	port1, port2 := field.PhysicalVal(1), field.PhysicalVal(2)

	perSwitch := map[field.Value]policy.Policy{
		sw1: policy.Filter{P: policy.And{Ps: []policy.Pred{
			policy.Match{Field: field.IPProto, Value: field.IntVal(6)},
			policy.Match{Field: field.EthSrc, Value: field.IntVal(1)},
		}}},
		sw2: policy.Filter{P: policy.PTrue{}},
	}
	links := []policy.Link{{Switch1: sw1, Port1: port1, Switch2: sw2, Port2: port2}}

	h, err := policy.CompileGlobal(f, perSwitch, links)
	require.NoError(t, err)
	require.False(t, f.IsLeaf(h))
}
