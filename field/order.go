package field

import "sort"

// Order fixes a total order over the Field enumeration for the lifetime
// of a compilation session. All FDDs composed together (union, seq, star,
// ...) must share the same Order; the FDD engine treats this as a caller
// invariant rather than something it can check cheaply per operation.
type Order struct {
	rank [numFields]int
}

// DefaultOrder returns the order used when the caller supplies no
// preference: declaration order of the Field enumeration, which already
// groups physical/topology fields (Switch, Location, ...) ahead of header
// fields (EthSrc, ..., TCPDstPort) the way a packet is actually parsed.
func DefaultOrder() Order {
	var o Order
	for i := range o.rank {
		o.rank[i] = i
	}
	return o
}

// StaticOrder builds an Order from an explicit permutation of every
// declared Field. perm must contain each field in AllFields() exactly
// once; ErrIncompleteOrder/ErrDuplicateField are returned otherwise.
func StaticOrder(perm []Field) (Order, error) {
	var o Order
	for i := range o.rank {
		o.rank[i] = -1
	}
	if len(perm) != int(numFields) {
		return Order{}, ErrIncompleteOrder
	}
	for i, f := range perm {
		if !f.Valid() {
			return Order{}, ErrUnknownField
		}
		if o.rank[f] != -1 {
			return Order{}, ErrDuplicateField
		}
		o.rank[f] = i
	}
	return o, nil
}

// HeuristicOrder estimates a good order from observed per-field branching
// factors (the number of distinct values that field takes across a sample
// of tests a caller is about to compile, e.g. drawn from the AST before
// calling of_policy). Fields with fewer distinct values are placed first,
// since they tend to produce shallower, more shared diagrams; ties break
// by declaration order for determinism.
//
// counts need not mention every field; absent fields are treated as count
// 0 and sort first under fewest-distinct-values-first, then fall back to
// declaration order among themselves.
func HeuristicOrder(counts map[Field]int) Order {
	perm := AllFields()
	sort.SliceStable(perm, func(i, j int) bool {
		ci, cj := counts[perm[i]], counts[perm[j]]
		if ci != cj {
			return ci < cj
		}
		return perm[i] < perm[j]
	})
	o, err := StaticOrder(perm)
	if err != nil {
		// perm is always a permutation of AllFields() by construction.
		panic("field: HeuristicOrder produced an invalid permutation: " + err.Error())
	}
	return o
}

// Less reports whether a is strictly ordered before b under o. This is the
// relation the FDD engine's node-ordering invariant is defined against:
// along any root-to-leaf path, each branch's field must be Less than its
// children's.
func (o Order) Less(a, b Field) bool {
	return o.rank[a] < o.rank[b]
}

// Compare returns -1, 0, or 1 as a is ordered before, equal to, or after b.
func (o Order) Compare(a, b Field) int {
	switch {
	case o.rank[a] < o.rank[b]:
		return -1
	case o.rank[a] > o.rank[b]:
		return 1
	default:
		return 0
	}
}

// Rank returns f's position in the order, for callers building a
// deterministic sort key (e.g. the flow-table pattern tie-break).
func (o Order) Rank(f Field) int {
	return o.rank[f]
}
