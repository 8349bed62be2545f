package flowtable

import (
	"net/netip"

	"github.com/gaissmai/bart"

	"github.com/netkatgo/netkat/field"
)

// ipShadowIndex answers, in bulk, "which already-inserted rules does this
// prefix nest inside" — one bart.Table per IP field, so orderRules can
// find every rule a new prefix shadows with a single Supernets walk
// instead of a pairwise prefix comparison against every other rule
// (field.Value.Contains remains the pairwise form, used by Shadows
// itself; this is the bulk form for the many-rules case).
type ipShadowIndex struct {
	tables map[field.Field]*bart.Table[int]
}

func newIPShadowIndex() *ipShadowIndex {
	return &ipShadowIndex{tables: map[field.Field]*bart.Table[int]{}}
}

func (idx *ipShadowIndex) insert(fld field.Field, pfx netip.Prefix, ruleIdx int) {
	t := idx.tables[fld]
	if t == nil {
		t = new(bart.Table[int])
		idx.tables[fld] = t
	}
	t.Insert(pfx, ruleIdx)
}

// supernetsOf returns the indices of every rule already inserted under
// fld whose prefix properly covers pfx.
func (idx *ipShadowIndex) supernetsOf(fld field.Field, pfx netip.Prefix) []int {
	t := idx.tables[fld]
	if t == nil {
		return nil
	}
	var out []int
	for _, ruleIdx := range t.Supernets(pfx) {
		out = append(out, ruleIdx)
	}
	return out
}

// hasSharedIPField reports whether a and b both constrain the same IP
// field. orderRules' pairwise pass skips such pairs and leaves them to
// its bulk bart-backed pass, which only records an edge from a rule to
// an earlier-indexed rule whose prefix covers it; a shared-IP pair that
// pass does not relate is ordered by comparePatterns alone.
func hasSharedIPField(a, b Pattern) bool {
	for fld := range a {
		if !fld.IsIPField() {
			continue
		}
		if _, ok := b[fld]; ok {
			return true
		}
	}
	return false
}

// Shadows reports whether every packet matching pattern a also matches
// pattern b, and a != b: a's matched space is a (non-strict-equal)
// subset of b's. A rule whose pattern Shadows another must be placed at
// strictly higher priority than it, or the broader rule b would steal
// traffic the narrower rule a was meant to claim.
//
// Containment is checked per field: for an IP field, a's value must be a
// sub-prefix of b's (field.Value.Contains); for every other field, the
// values must be equal. A field b constrains that a leaves wild always
// breaks containment, since a then matches packets outside b's range.
func Shadows(a, b Pattern) bool {
	if a.key() == b.key() {
		return false
	}
	for fld, bv := range b {
		av, ok := a[fld]
		if !ok {
			return false
		}
		if fld.IsIPField() {
			if !bv.Contains(av) {
				return false
			}
			continue
		}
		if !bv.Equal(av) {
			return false
		}
	}
	return true
}
