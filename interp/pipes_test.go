package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/interp"
)

func TestPipesReturnsSortedPipeNames(t *testing.T) {
	f := newForest(t)
	left := f.Leaf(action.Of(action.New(field.Modification{Field: field.Location, Value: field.PipeVal("zeta")})))
	right := f.Leaf(action.Of(action.New(field.Modification{Field: field.Location, Value: field.PipeVal("alpha")})))
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, left, right)
	require.NoError(t, err)

	require.Equal(t, []string{"alpha", "zeta"}, interp.Pipes(f, h))
}

func TestPipesIgnoresQueryAndPhysicalLocations(t *testing.T) {
	f := newForest(t)
	h := f.Leaf(action.Of(
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(1)}),
		action.New(field.Modification{Field: field.Location, Value: field.QueryVal("cnt")}),
	))
	require.Empty(t, interp.Pipes(f, h))
}
