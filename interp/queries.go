package interp

import (
	"sort"

	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/policy"
)

// QueryPredicate pairs a query name with the predicate that reaches it:
// the disjunction, over every root-to-leaf path whose leaf contains that
// query, of that path's predicate (the conjunction of its branch tests,
// negated on a false edge).
type QueryPredicate struct {
	Name      string
	Predicate policy.Pred
}

// Queries returns one QueryPredicate per distinct query name appearing
// in any leaf action reachable from h (spec.md section 4.7,
// "queries(FDD) -> list of (query_name, predicate) pairs"), sorted by
// name for a deterministic result.
//
// Every root-to-leaf path is enumerated explicitly, including paths that
// pass back through a handle shared by an earlier path — the predicate
// a query is reachable under depends on the path taken to it, not on
// node identity, so this cannot be memoized by handle the way Pipes is.
func Queries(f *fdd.Forest, h fdd.Handle) []QueryPredicate {
	byName := map[string][]policy.Pred{}
	var order []string

	var walk func(h fdd.Handle, path []policy.Pred)
	walk = func(h fdd.Handle, path []policy.Pred) {
		if f.IsLeaf(h) {
			for _, a := range f.LeafValue(h).Actions() {
				v, ok := a.Get(field.Location)
				if !ok || v.Kind() != field.LocationKind || v.Location() != field.Query {
					continue
				}
				name := v.Name()
				if _, seen := byName[name]; !seen {
					order = append(order, name)
				}
				byName[name] = append(byName[name], conjunctPath(path))
			}
			return
		}
		test, tChild, fChild, _ := f.BranchTest(h)
		walk(tChild, appendPred(path, policy.Match{Field: test.Field, Value: test.Value}))
		walk(fChild, appendPred(path, policy.Not{P: policy.Match{Field: test.Field, Value: test.Value}}))
	}
	walk(h, nil)

	sort.Strings(order)
	out := make([]QueryPredicate, 0, len(order))
	for _, name := range order {
		out = append(out, QueryPredicate{Name: name, Predicate: policy.Or{Ps: byName[name]}})
	}
	return out
}

// appendPred returns a new slice with p appended, never sharing a
// backing array with path — two sibling branches of the same walk step
// must never be able to observe each other's appends.
func appendPred(path []policy.Pred, p policy.Pred) []policy.Pred {
	out := make([]policy.Pred, len(path)+1)
	copy(out, path)
	out[len(path)] = p
	return out
}

func conjunctPath(path []policy.Pred) policy.Pred {
	cp := make([]policy.Pred, len(path))
	copy(cp, path)
	return policy.And{Ps: cp}
}
