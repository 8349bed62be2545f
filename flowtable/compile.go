package flowtable

import (
	"sort"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/options"
)

// ToTable emits a single-table flow program equivalent to h (spec.md
// section 4.5, "to_table"). Every root-to-leaf path of h becomes one
// Rule, ordered so that a switch evaluating highest-priority-first
// reproduces h's semantics.
func ToTable(f *fdd.Forest, h fdd.Handle, opts options.CompileOptions) (Table, error) {
	rules, err := collectRules(f, h)
	if err != nil {
		f.Log().Debugw("flowtable: to_table failed", "error", err)
		return Table{}, err
	}
	if opts.DedupFlows {
		rules = dedupRules(rules)
	}
	var groups GroupTable
	hoistGroups(rules, &groups)
	ordered := orderRules(f.Order(), rules)
	if opts.RemoveTailDrops {
		ordered = stripTrailingDrops(ordered)
	}
	for i := range ordered {
		ordered[i].Priority = len(ordered) - i
	}
	f.Log().Debugw("flowtable: to_table done", "rules", len(ordered), "groups", len(groups.Groups))
	return Table{Rules: ordered, Groups: groups}, nil
}

// collectRules walks every root-to-leaf path of h, accumulating a
// Pattern from the positive (true-branch) tests encountered — a
// false branch contributes no explicit constraint, per doc.go — and
// emits one Rule per leaf reached.
func collectRules(f *fdd.Forest, h fdd.Handle) ([]Rule, error) {
	var rules []Rule
	var walk func(h fdd.Handle, pat Pattern) error
	walk = func(h fdd.Handle, pat Pattern) error {
		if f.IsLeaf(h) {
			acts := f.LeafValue(h)
			if !acts.IsDrop() {
				for _, a := range acts.Actions() {
					if err := ValidateAction(a); err != nil {
						return err
					}
				}
			}
			rules = append(rules, Rule{Pattern: pat, Actions: acts})
			return nil
		}
		test, tChild, fChild, _ := f.BranchTest(h)
		truePat := make(Pattern, len(pat)+1)
		for k, v := range pat {
			truePat[k] = v
		}
		truePat[test.Field] = test.Value
		if err := walk(tChild, truePat); err != nil {
			return err
		}
		return walk(fChild, pat)
	}
	if err := walk(h, Pattern{}); err != nil {
		return nil, err
	}
	return rules, nil
}

// ValidateAction checks that a names an explicit output port and
// touches no field a single flow table cannot express. It is only
// meaningful for actions belonging to a non-drop leaf; the empty
// ActionSet (Drop) needs no output port at all. Exported so the
// multitable package can apply the same rule to a path's final stage.
func ValidateAction(a action.Action) error {
	if a.IsIdentity() {
		return ErrIndeterminatePort
	}
	if _, ok := a.Get(field.Switch); ok {
		return ErrUnsupportedAction
	}
	if _, ok := a.Get(field.VSwitch); ok {
		return ErrUnsupportedAction
	}
	if _, ok := a.Get(field.VPort); ok {
		return ErrUnsupportedAction
	}
	if _, ok := a.Get(field.Location); !ok {
		return ErrIndeterminatePort
	}
	return nil
}

// dedupRules drops exact duplicate (Pattern, Actions) rules, keeping the
// first occurrence — used under options.CompileOptions.DedupFlows.
func dedupRules(rules []Rule) []Rule {
	seen := make(map[string]bool, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		k := r.Pattern.key() + "=>" + r.Actions.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// stripTrailingDrops removes pure-drop rules from the low-priority end
// of an already-ordered rule list. A switch drops unmatched packets by
// default, so trailing drop rules are redundant; a drop rule anywhere
// else in the list is load-bearing (a lower-priority forwarding rule
// would otherwise wrongly claim that traffic) and must stay.
func stripTrailingDrops(rules []Rule) []Rule {
	end := len(rules)
	for end > 0 && rules[end-1].Actions.IsDrop() {
		end--
	}
	return rules[:end]
}

// orderRules sorts rules so that whenever one rule's pattern Shadows
// another, the shadowing (narrower) rule is placed first. Pairs with no
// shadow relation keep a deterministic lexicographic order instead
// (spec.md section 9's resolution of the symmetric-shadow Open
// Question), so the overall order is a total one even though Shadows
// alone is only a partial order.
func orderRules(order field.Order, rules []Rule) []Rule {
	n := len(rules)
	shadowEdge := make(map[[2]int]bool)

	idx := newIPShadowIndex()
	for i, r := range rules {
		for fld, v := range r.Pattern {
			if !fld.IsIPField() {
				continue
			}
			for _, j := range idx.supernetsOf(fld, v.Prefix()) {
				if i != j && Shadows(r.Pattern, rules[j].Pattern) {
					shadowEdge[[2]int{i, j}] = true
				}
			}
			idx.insert(fld, v.Prefix(), i)
		}
	}
	for i := range rules {
		for j := range rules {
			if i == j || shadowEdge[[2]int{i, j}] {
				continue
			}
			if hasSharedIPField(rules[i].Pattern, rules[j].Pattern) {
				continue
			}
			if Shadows(rules[i].Pattern, rules[j].Pattern) {
				shadowEdge[[2]int{i, j}] = true
			}
		}
	}

	return topoSortByShadow(order, rules, shadowEdge, n)
}

// betterCandidate reports whether rule i should replace rule best as the
// next emitted rule: comparePatterns decides when it can, and the lower
// index wins when comparePatterns is 0, so the pick never depends on
// map-iteration order even for two rules whose patterns compare equal.
func betterCandidate(order field.Order, rules []Rule, i, best int) bool {
	switch comparePatterns(order, rules[i].Pattern, rules[best].Pattern) {
	case -1:
		return true
	case 1:
		return false
	default:
		return i < best
	}
}

// topoSortByShadow performs a Kahn's-algorithm topological sort over the
// shadowEdge relation (edge i->j means i must precede j), breaking ties
// among simultaneously-ready rules with comparePatterns for a
// deterministic result independent of rules' input order.
func topoSortByShadow(order field.Order, rules []Rule, shadowEdge map[[2]int]bool, n int) []Rule {
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

	out := make([]Rule, 0, n)
	for len(remaining) > 0 {
		best := -1
		for i := range remaining {
			if indeg[i] != 0 {
				continue
			}
			if best == -1 || betterCandidate(order, rules, i, best) {
				best = i
			}
		}
		if best == -1 {
			// Shadows is a strict partial order (antisymmetric, transitive
			// by construction), so the graph should be acyclic; fall back to
			// a plain lexicographic pick over whatever remains rather than
			// looping forever if that assumption is ever violated.
			for i := range remaining {
				if best == -1 || betterCandidate(order, rules, i, best) {
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
	return out
}

// comparePatterns gives a deterministic total order over Patterns:
// lexicographic over constrained fields in order-rank sequence, each
// field compared via field.Test.Compare, then by number of constrained
// fields.
func comparePatterns(order field.Order, a, b Pattern) int {
	af, bf := a.constrainedFields(), b.constrainedFields()
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
