package fdd

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

// Dedup canonicalizes every leaf's ActionSet by dropping assignments that
// are redundant given the path that reaches them: if the path already
// established field == value (via a positive branch), a leaf action on
// that same path that re-assigns field = value is a no-op and is
// stripped before the leaf is interned. This does not change h's
// semantics, only its representation — it exists to collapse diagrams
// that are semantically but not syntactically equal (spec.md section
// 4.3, "Dedup").
func (f *Forest) Dedup(h Handle) Handle {
	return f.dedupWalk(h, map[field.Field]field.Value{})
}

func (f *Forest) dedupWalk(h Handle, known map[field.Field]field.Value) Handle {
	n := f.get(h)
	if n.isLeaf {
		return f.Leaf(dedupLeaf(n.leaf, known))
	}

	knownTrue := make(map[field.Field]field.Value, len(known)+1)
	for fl, v := range known {
		knownTrue[fl] = v
	}
	knownTrue[n.test.Field] = n.test.Value

	rt := f.dedupWalk(n.tChild, knownTrue)
	rf := f.dedupWalk(n.fChild, known)
	return f.mustBranch(n.test, rt, rf)
}

// dedupLeaf strips, from every action in s, any field assignment that
// merely restates a value already guaranteed by the path (known).
func dedupLeaf(s action.Set, known map[field.Field]field.Value) action.Set {
	if len(known) == 0 || s.Size() == 0 {
		return s
	}
	reduced := make([]action.Action, 0, s.Size())
	for _, a := range s.Actions() {
		redundant := make([]field.Field, 0, len(known))
		for _, fl := range a.Fields() {
			if kv, ok := known[fl]; ok {
				if v, _ := a.Get(fl); v.Equal(kv) {
					redundant = append(redundant, fl)
				}
			}
		}
		reduced = append(reduced, a.Restrict(redundant...))
	}
	return action.Of(reduced...)
}
