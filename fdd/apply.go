package fdd

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

// leafCombine merges two leaf ActionSets, the pointwise operation a
// binary Apply lifts to full diagrams.
type leafCombine func(x, y action.Set) action.Set

// leafMap transforms a single leaf ActionSet, the pointwise operation a
// MapLeaves traversal lifts to a full diagram.
type leafMap func(x action.Set) action.Set

// frontier returns the root test of h and true, or the zero Test and
// false if h is a leaf. Leaves sort after every real test: a leaf never
// constrains which field Apply recurses on next.
func (f *Forest) frontier(h Handle) (field.Test, bool) {
	n := f.get(h)
	if n.isLeaf {
		return field.Test{}, false
	}
	return n.test, true
}

// chooseTest picks the Test Apply recurses on given the current frontier
// of both arguments: the lesser of the two by field order, tie-broken by
// Value order when both arguments currently test the same field (this is
// the only place two distinct Values of one field ever need comparing
// against each other directly).
func (f *Forest) chooseTest(x, y Handle) field.Test {
	xt, xok := f.frontier(x)
	yt, yok := f.frontier(y)
	switch {
	case !xok:
		return yt
	case !yok:
		return xt
	}
	switch f.order.Compare(xt.Field, yt.Field) {
	case -1:
		return xt
	case 1:
		return yt
	default:
		if xt.Value.Compare(yt.Value) <= 0 {
			return xt
		}
		return yt
	}
}

// cofactor splits h into its restriction under test (true side) and
// under its negation (false side).
//
//   - h is a leaf, or branches on a field strictly after test.Field: h
//     does not depend on test at all, both sides are h unchanged.
//   - h branches on test.Field at exactly test.Value: the textbook case,
//     (h.tChild, h.fChild).
//   - h branches on test.Field at some other Value: assuming test true
//     forces h's own test false, so the true side is h.fChild; assuming
//     test false leaves h's own (different-valued) test undecided, so the
//     false side is h itself, unresolved — Apply's recursion keeps
//     walking h's chain against whatever the other argument contributes
//     until one side resolves past this field.
func (f *Forest) cofactor(h Handle, test field.Test) (trueSide, falseSide Handle) {
	n := f.get(h)
	if n.isLeaf || n.test.Field != test.Field {
		return h, h
	}
	if n.test.Value.Equal(test.Value) {
		return n.tChild, n.fChild
	}
	return n.fChild, h
}

// Apply is the generic memoized binary engine every symmetric two-FDD
// algebraic operator (Union, and internally the Seq leaf cross-product)
// is built from. op names the operator for memoization purposes only —
// combine must be a pure function of its two arguments.
func (f *Forest) Apply(op string, combine leafCombine, x, y Handle) Handle {
	key := applyKey{op: op, x: x, y: y}
	if h, ok := f.applyMemo.Get(key); ok {
		return h
	}

	xn, yn := f.get(x), f.get(y)
	var result Handle
	if xn.isLeaf && yn.isLeaf {
		result = f.Leaf(combine(xn.leaf, yn.leaf))
	} else {
		test := f.chooseTest(x, y)
		xt, xf := f.cofactor(x, test)
		yt, yf := f.cofactor(y, test)
		rt := f.Apply(op, combine, xt, yt)
		rf := f.Apply(op, combine, xf, yf)
		result = f.mustBranch(test, rt, rf)
	}

	f.applyMemo.Add(key, result)
	return result
}

// MapLeaves rewrites every leaf of h through transform, preserving
// structure otherwise. Used by Negate and by Seq's per-action leaf
// rewrite (seqLeaf).
func (f *Forest) MapLeaves(op string, transform leafMap, h Handle) Handle {
	key := unaryKey{op: op, x: h}
	if r, ok := f.unaryMemo.Get(key); ok {
		return r
	}

	n := f.get(h)
	var result Handle
	if n.isLeaf {
		result = f.Leaf(transform(n.leaf))
	} else {
		rt := f.MapLeaves(op, transform, n.tChild)
		rf := f.MapLeaves(op, transform, n.fChild)
		result = f.mustBranch(n.test, rt, rf)
	}

	f.unaryMemo.Add(key, result)
	return result
}

// Union is n-ary parallel composition: "do all of these, independently."
// Par(Union) is commutative, associative and idempotent with identity
// Drop — see the Union tests and properties in the fdd package tests
// (TestUnionIsCommutativeProperty, TestUnionIsAssociativeProperty,
// TestUnionIsIdempotentProperty, TestUnionWithDropIsIdentity).
func (f *Forest) Union(xs ...Handle) Handle {
	switch len(xs) {
	case 0:
		return f.Drop()
	case 1:
		return xs[0]
	}
	result := xs[0]
	for _, x := range xs[1:] {
		result = f.Apply("union", action.Par, result, x)
	}
	return result
}
