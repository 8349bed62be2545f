package fdd

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

func fieldTest(fl field.Field, v field.Value) field.Test {
	return field.Test{Field: fl, Value: v}
}

// Seq computes sequential composition x;y: do x, then do y to whatever x
// produced (spec.md section 4.3, "Seq"). It is built on the same
// cofactor-on-the-globally-earliest-pending-field skeleton apply.go's
// Apply uses, rather than a walk over x's structure alone: y can root on
// a field ranked earlier than whatever x is currently testing (two
// predicate branches built in the opposite field order, then sequenced,
// is enough to trigger this), and splicing such a y wholesale underneath
// x's current test would violate the field-order invariant Branch
// enforces. Branching on whichever of x or y tests the earlier field
// first, with the other argument left unresolved until its own fields
// come up, keeps every intermediate node in global order. Only once x
// resolves to a leaf does the (by then possibly partially resolved) y
// get spliced in, one leaf action at a time, by seqLeaf.
func (f *Forest) Seq(x, y Handle) Handle {
	return f.seqWalk(x, y)
}

func (f *Forest) seqWalk(x, y Handle) Handle {
	key := applyKey{op: "seq", x: x, y: y}
	if h, ok := f.applyMemo.Get(key); ok {
		return h
	}

	xn := f.get(x)
	var result Handle
	if xn.isLeaf {
		result = f.seqLeaf(xn.leaf, y)
	} else {
		test := f.chooseTest(x, y)
		xt, xf := f.cofactor(x, test)
		yt, yf := f.cofactor(y, test)
		rt := f.seqWalk(xt, yt)
		rf := f.seqWalk(xf, yf)
		result = f.mustBranch(test, rt, rf)
	}

	f.applyMemo.Add(key, result)
	return result
}

// seqLeaf computes ⋃_{a in s} (restrict(y, a) with a sequenced in front
// of every one of its leaves).
func (f *Forest) seqLeaf(s action.Set, y Handle) Handle {
	if s.IsDrop() {
		return f.Drop()
	}
	var acc Handle
	first := true
	for _, a := range s.Actions() {
		restricted := y
		for _, fl := range a.Fields() {
			v, _ := a.Get(fl)
			restricted = f.Restrict(restricted, fieldTest(fl, v))
		}
		contribution := f.MapLeaves("seq-prefix:"+a.Key(), func(t action.Set) action.Set {
			return action.SeqOne(a, t)
		}, restricted)
		if first {
			acc = contribution
			first = false
		} else {
			acc = f.Apply("union", action.Par, acc, contribution)
		}
	}
	return acc
}
