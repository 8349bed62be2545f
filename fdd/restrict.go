package fdd

import "github.com/netkatgo/netkat/field"

// testMatches reports whether restrictVal satisfies nodeVal the way
// Restrict needs to decide which branch of a same-field node survives:
// exact equality for scalar fields, prefix containment for IP fields
// (a node testing IP4Src=10.0.0.0/24 is "matched" by a restriction to the
// more specific 10.0.0.5/32).
func testMatches(fld field.Field, nodeVal, restrictVal field.Value) bool {
	if fld.IsIPField() {
		return nodeVal.Contains(restrictVal)
	}
	return nodeVal.Equal(restrictVal)
}

// Restrict performs partial evaluation of h under the assumption
// test.Field == test.Value: every branch on test.Field collapses to
// whichever child testMatches selects, and the field never appears in
// the result. Branches on other fields are rebuilt unchanged (spec.md
// section 4.3, "Restrict").
func (f *Forest) Restrict(h Handle, test field.Test) Handle {
	key := unaryKey{op: "restrict", x: h, extra: test.Field.String() + "=" + test.Value.String()}
	if r, ok := f.unaryMemo.Get(key); ok {
		return r
	}

	result := f.restrictWalk(h, test)
	f.unaryMemo.Add(key, result)
	return result
}

func (f *Forest) restrictWalk(h Handle, test field.Test) Handle {
	n := f.get(h)
	if n.isLeaf {
		return h
	}
	if n.test.Field != test.Field {
		rt := f.restrictWalk(n.tChild, test)
		rf := f.restrictWalk(n.fChild, test)
		return f.mustBranch(n.test, rt, rf)
	}
	if testMatches(n.test.Field, n.test.Value, test.Value) {
		return f.restrictWalk(n.tChild, test)
	}
	return f.restrictWalk(n.fChild, test)
}
