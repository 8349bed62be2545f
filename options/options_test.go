package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/options"
)

func TestDefaultOptions(t *testing.T) {
	o := options.Default()
	require.Equal(t, options.CacheKeep, o.CachePrepare)
	require.Equal(t, options.Strict, o.OpenflowAdherence)
	require.False(t, o.RemoveTailDrops)
	require.False(t, o.DedupFlows)
	require.False(t, o.Optimize)
}

func TestApplyComposesOptionsOverDefault(t *testing.T) {
	o := options.Apply(
		options.WithRemoveTailDrops(),
		options.WithDedupFlows(),
		options.WithOpenflowAdherence(options.Sloppy),
	)
	require.True(t, o.RemoveTailDrops)
	require.True(t, o.DedupFlows)
	require.Equal(t, options.Sloppy, o.OpenflowAdherence)
}

func TestWithCachePrepareRejectsUnknownMode(t *testing.T) {
	require.Panics(t, func() {
		options.WithCachePrepare(options.CacheMode(99))
	})
}

func TestJSONRoundTrip(t *testing.T) {
	perm := append([]field.Field{field.Vlan}, field.AllFields()...)
	seen := map[field.Field]bool{}
	dedup := make([]field.Field, 0, field.NumFields())
	for _, f := range perm {
		if !seen[f] {
			seen[f] = true
			dedup = append(dedup, f)
		}
	}

	o := options.Apply(
		options.WithStaticFieldOrder(dedup),
		options.WithOptimize(),
		options.WithCachePrepare(options.CacheEmpty),
	)

	data, err := o.ToJSON()
	require.NoError(t, err)

	back, err := options.FromJSON(data, true)
	require.NoError(t, err)
	require.Equal(t, o.Optimize, back.Optimize)
	require.Equal(t, o.CachePrepare, back.CachePrepare)
	require.Equal(t, o.FieldOrder, back.FieldOrder)
}

func TestFromJSONStrictRejectsUnknownKey(t *testing.T) {
	data := []byte(`{"field_order":[],"cache_prepare":"keep","remove_tail_drops":false,"dedup_flows":false,"optimize":false,"openflow_adherence":"strict","bogus":1}`)
	_, err := options.FromJSON(data, true)
	require.Error(t, err)
}
