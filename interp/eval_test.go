package interp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/interp"
)

func newForest(t *testing.T) *fdd.Forest {
	t.Helper()
	return fdd.NewForest(field.DefaultOrder(), nil)
}

func forwardLeaf(f *fdd.Forest, port uint32) fdd.Handle {
	return f.Leaf(action.Of(action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(port)})))
}

func TestEvalFollowsMatchingBranch(t *testing.T) {
	f := newForest(t)
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, forwardLeaf(f, 2), f.Drop())
	require.NoError(t, err)

	matching := interp.NewPacket(field.Modification{Field: field.Vlan, Value: field.IntVal(1)})
	out, err := interp.Eval(f, h, matching)
	require.NoError(t, err)
	require.Len(t, out, 1)
	loc, ok := out[0].Get(field.Location)
	require.True(t, ok)
	require.Equal(t, field.Physical, loc.Location())
	require.Equal(t, uint64(2), loc.Int())

	other := interp.NewPacket(field.Modification{Field: field.Vlan, Value: field.IntVal(9)})
	out, err = interp.Eval(f, h, other)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEvalMissingFieldTakesFalseBranch(t *testing.T) {
	f := newForest(t)
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, forwardLeaf(f, 2), f.Drop())
	require.NoError(t, err)

	out, err := interp.Eval(f, h, interp.NewPacket())
	require.NoError(t, err)
	require.Empty(t, out, "a packet with Vlan unset cannot match a Vlan test, so it takes the false (drop) edge")
}

func TestEvalAppliesEveryActionInALeafSet(t *testing.T) {
	f := newForest(t)
	acts := action.Of(
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(1)}),
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(2)}),
	)
	h := f.Leaf(acts)

	out, err := interp.Eval(f, h, interp.NewPacket())
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestEvalPropagatesOnVisitError(t *testing.T) {
	f := newForest(t)
	h := f.Leaf(action.Id())
	boom := errors.New("boom")

	_, err := interp.Eval(f, h, interp.NewPacket(), interp.WithOnVisit(func(int, fdd.Handle) error {
		return boom
	}))
	require.ErrorIs(t, err, interp.ErrOnVisit)
	require.ErrorContains(t, err, "boom")
}

func TestEvalPipesPartitionsByLocationTag(t *testing.T) {
	f := newForest(t)
	acts := action.Of(
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(1)}),
		action.New(field.Modification{Field: field.Location, Value: field.PipeVal("ctrl")}),
		action.New(field.Modification{Field: field.Location, Value: field.QueryVal("cnt")}),
	)
	h := f.Leaf(acts)

	out, err := interp.EvalPipes(f, h, interp.NewPacket())
	require.NoError(t, err)
	require.Len(t, out.Physical, 1)
	require.Len(t, out.Pipes["ctrl"], 1)
	require.Len(t, out.Queries["cnt"], 1)
}
