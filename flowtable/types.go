package flowtable

import (
	"sort"
	"strings"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

// Pattern is a wildcard match: fields absent from the map match any
// value. Only fields reached via a positive (true) branch on some
// root-to-leaf FDD path appear here — see doc.go for why false branches
// do not contribute an explicit constraint.
type Pattern map[field.Field]field.Value

// constrainedFields returns p's fields in a deterministic order (by
// numeric Field value), used for canonical key construction and
// shadow-relation comparisons.
func (p Pattern) constrainedFields() []field.Field {
	out := make([]field.Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// key returns a canonical string encoding of p, used by Shadows to
// detect two identical patterns and by dedupRules as part of its
// duplicate-detection key. The rule-ordering tie-break does not use it;
// that is comparePatterns.
func (p Pattern) key() string {
	var b strings.Builder
	for i, f := range p.constrainedFields() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.String())
		b.WriteByte('=')
		b.WriteString(p[f].String())
	}
	return b.String()
}

// Rule is one emitted flow-table entry. Group is the zero GroupID unless
// Actions contains more than one action (a multicast fan-out or
// fast-failover set), in which case the switch applies Group's buckets
// from the accompanying Table.Groups instead of Actions directly —
// Actions is still populated in that case, for inspection and for
// dedupRules' duplicate-detection key.
type Rule struct {
	Pattern  Pattern
	Priority int
	Actions  action.Set
	Group    GroupID
}

// Table is an ordered flow table: Rules[0] has the highest priority.
type Table struct {
	Rules  []Rule
	Groups GroupTable
}
