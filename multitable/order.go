package multitable

import (
	"sort"

	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/flowtable"
)

// orderStage sorts one table's rules so that, within a shared Metadata
// value, a rule whose Pattern flowtable.Shadows another is placed first
// (the same specificity-then-lexicographic resolution flowtable.ToTable
// uses for its single table). Rules under different Metadata values
// never match the same packet simultaneously — Metadata itself is part
// of the implicit match — so their relative order does not affect
// correctness and is fixed only for determinism.
func orderStage(order field.Order, rules []TableRule) []TableRule {
	n := len(rules)
	if n == 0 {
		return rules
	}
	shadowEdge := make(map[[2]int]bool)
	for i := range rules {
		for j := range rules {
			if i == j || rules[i].Metadata != rules[j].Metadata {
				continue
			}
			if flowtable.Shadows(rules[i].Pattern, rules[j].Pattern) {
				shadowEdge[[2]int{i, j}] = true
			}
		}
	}

	indeg := make([]int, n)
	adj := make([][]int, n)
	for pair := range shadowEdge {
		i, j := pair[0], pair[1]
		adj[i] = append(adj[i], j)
		indeg[j]++
	}

	remaining := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		remaining[i] = true
	}

	out := make([]TableRule, 0, n)
	for len(remaining) > 0 {
		best := -1
		for i := range remaining {
			if indeg[i] != 0 {
				continue
			}
			if best == -1 || lessRule(order, rules[i], rules[best]) {
				best = i
			}
		}
		if best == -1 {
			for i := range remaining {
				if best == -1 || lessRule(order, rules[i], rules[best]) {
					best = i
				}
			}
		}
		out = append(out, rules[best])
		delete(remaining, best)
		for _, j := range adj[best] {
			indeg[j]--
		}
	}
	for i := range out {
		out[i].Priority = len(out) - i
	}
	return out
}

// lessRule breaks ties among rules with no shadow relation: first by
// Metadata (groups stay contiguous), then lexicographically over the
// pattern's constrained fields.
func lessRule(order field.Order, a, b TableRule) bool {
	if a.Metadata != b.Metadata {
		return a.Metadata < b.Metadata
	}
	return comparePatterns(order, a.Pattern, b.Pattern) < 0
}

func comparePatterns(order field.Order, a, b flowtable.Pattern) int {
	af, bf := fieldsOf(a), fieldsOf(b)
	sort.Slice(af, func(i, j int) bool { return order.Less(af[i], af[j]) })
	sort.Slice(bf, func(i, j int) bool { return order.Less(bf[i], bf[j]) })

	for i := 0; i < len(af) && i < len(bf); i++ {
		if af[i] != bf[i] {
			if order.Less(af[i], bf[i]) {
				return -1
			}
			return 1
		}
		ta := field.Test{Field: af[i], Value: a[af[i]]}
		tb := field.Test{Field: bf[i], Value: b[bf[i]]}
		if c := ta.Compare(tb, order); c != 0 {
			return c
		}
	}
	switch {
	case len(af) < len(bf):
		return -1
	case len(af) > len(bf):
		return 1
	default:
		return 0
	}
}

func fieldsOf(p flowtable.Pattern) []field.Field {
	out := make([]field.Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	return out
}
