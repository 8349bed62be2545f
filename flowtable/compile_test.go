package flowtable_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/flowtable"
	"github.com/netkatgo/netkat/options"
)

func newForest(t *testing.T) *fdd.Forest {
	t.Helper()
	return fdd.NewForest(field.DefaultOrder(), nil)
}

func forwardLeaf(f *fdd.Forest, port uint32) fdd.Handle {
	return f.Leaf(action.Of(action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(port)})))
}

func TestToTableEmitsOneRulePerPath(t *testing.T) {
	f := newForest(t)
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, forwardLeaf(f, 2), f.Drop())
	require.NoError(t, err)

	tbl, err := flowtable.ToTable(f, h, options.Default())
	require.NoError(t, err)
	require.Len(t, tbl.Rules, 2)

	require.Equal(t, field.IntVal(1), tbl.Rules[0].Pattern[field.Vlan], "the Vlan-constrained path must outrank the wildcard drop path")
	require.True(t, tbl.Rules[0].Priority > tbl.Rules[1].Priority)
	require.True(t, tbl.Rules[1].Actions.IsDrop())
}

func TestToTableRemoveTailDropsElidesTrailingDrop(t *testing.T) {
	f := newForest(t)
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, forwardLeaf(f, 2), f.Drop())
	require.NoError(t, err)

	tbl, err := flowtable.ToTable(f, h, options.Apply(options.WithRemoveTailDrops()))
	require.NoError(t, err)
	require.Len(t, tbl.Rules, 1)
	require.Equal(t, field.IntVal(1), tbl.Rules[0].Pattern[field.Vlan])
}

func TestToTableRejectsIndeterminatePort(t *testing.T) {
	f := newForest(t)
	_, err := flowtable.ToTable(f, f.Id(), options.Default())
	require.ErrorIs(t, err, flowtable.ErrIndeterminatePort)
}

func TestToTableRejectsSwitchAssignment(t *testing.T) {
	f := newForest(t)
	h := f.Leaf(action.Of(action.New(
		field.Modification{Field: field.Switch, Value: field.IntVal(2)},
		field.Modification{Field: field.Location, Value: field.PhysicalVal(1)},
	)))
	_, err := flowtable.ToTable(f, h, options.Default())
	require.ErrorIs(t, err, flowtable.ErrUnsupportedAction)
}

func TestToTableDedupFlowsKeepsDistinctRules(t *testing.T) {
	f := newForest(t)
	leaf := forwardLeaf(f, 3)
	// Two disjoint Vlan values both forwarding identically, plus a drop
	// fallthrough: three rules with distinct patterns. The dedup pass only
	// removes exact (pattern, action) duplicates, so none of the three is
	// removed.
	mid, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(2)}, leaf, f.Drop())
	require.NoError(t, err)
	h, err := f.Branch(field.Test{Field: field.Vlan, Value: field.IntVal(1)}, leaf, mid)
	require.NoError(t, err)

	tbl, err := flowtable.ToTable(f, h, options.Apply(options.WithDedupFlows()))
	require.NoError(t, err)
	require.Len(t, tbl.Rules, 3)
}

func TestShadowsDetectsIPPrefixContainment(t *testing.T) {
	narrow := flowtable.Pattern{field.IP4Src: field.PrefixVal(netip.MustParsePrefix("10.0.0.0/32"))}
	broad := flowtable.Pattern{field.IP4Src: field.PrefixVal(netip.MustParsePrefix("10.0.0.0/24"))}

	require.True(t, flowtable.Shadows(narrow, broad))
	require.False(t, flowtable.Shadows(broad, narrow))
}

func TestShadowsRequiresSupersetOfConstrainedFields(t *testing.T) {
	a := flowtable.Pattern{field.Vlan: field.IntVal(1)}
	b := flowtable.Pattern{field.Vlan: field.IntVal(1), field.IPProto: field.IntVal(6)}

	require.False(t, flowtable.Shadows(a, b), "a leaves IPProto wild, so it matches packets b excludes")
	require.True(t, flowtable.Shadows(b, a))
}

func TestToTableHoistsMulticastActionsToAGroup(t *testing.T) {
	f := newForest(t)
	multicast := f.Leaf(action.Of(
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(1)}),
		action.New(field.Modification{Field: field.Location, Value: field.PhysicalVal(2)}),
	))

	tbl, err := flowtable.ToTable(f, multicast, options.Apply(options.WithRemoveTailDrops()))
	require.NoError(t, err)
	require.Len(t, tbl.Rules, 1)
	require.NotZero(t, tbl.Rules[0].Group)
	require.Len(t, tbl.Groups.Groups, 1)
	require.Len(t, tbl.Groups.Groups[0].Buckets, 2)
}

func TestToTableOrdersIPPrefixesMostSpecificFirst(t *testing.T) {
	f := newForest(t)
	narrowPfx := field.PrefixVal(netip.MustParsePrefix("10.0.0.0/32"))
	broadPfx := field.PrefixVal(netip.MustParsePrefix("10.0.0.0/24"))

	// Canonical chain order along the false edge is ascending by Value
	// (bits, then address), so the broader /24 sits closer to the root.
	inner, err := f.Branch(field.Test{Field: field.IP4Src, Value: narrowPfx}, forwardLeaf(f, 5), f.Drop())
	require.NoError(t, err)
	h, err := f.Branch(field.Test{Field: field.IP4Src, Value: broadPfx}, forwardLeaf(f, 1), inner)
	require.NoError(t, err)

	tbl, err := flowtable.ToTable(f, h, options.Default())
	require.NoError(t, err)
	require.Len(t, tbl.Rules, 3)

	require.Equal(t, narrowPfx, tbl.Rules[0].Pattern[field.IP4Src], "the /32 must outrank the /24 it shadows")
}
