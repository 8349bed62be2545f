package field_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netkatgo/netkat/field"
)

func TestFieldString(t *testing.T) {
	require.Equal(t, "EthSrc", field.EthSrc.String())
	require.Equal(t, "IP4Dst", field.IP4Dst.String())
	require.True(t, field.EthSrc.Valid())
}

func TestIsIPField(t *testing.T) {
	require.True(t, field.IP4Src.IsIPField())
	require.True(t, field.IP4Dst.IsIPField())
	require.False(t, field.EthSrc.IsIPField())
}

func TestAllFieldsIsFullPermutationSource(t *testing.T) {
	all := field.AllFields()
	require.Len(t, all, field.NumFields())
	seen := make(map[field.Field]bool, len(all))
	for _, f := range all {
		require.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true
	}
}
