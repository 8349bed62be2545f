package interp

import (
	"sort"

	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
)

// Pipes returns every pipe name appearing in any leaf action reachable
// from h (spec.md section 4.7, "pipes(FDD) -> set of pipe-name strings
// appearing in leaf actions"), sorted for a deterministic result.
//
// Unlike Eval, this visits the whole diagram rather than one packet's
// path, so repeated handles (the FDD's hash-consed sharing) are tracked
// to avoid revisiting a shared subgraph once per incoming edge.
func Pipes(f *fdd.Forest, h fdd.Handle) []string {
	seen := map[fdd.Handle]bool{}
	names := map[string]bool{}
	var walk func(h fdd.Handle)
	walk = func(h fdd.Handle) {
		if seen[h] {
			return
		}
		seen[h] = true
		if f.IsLeaf(h) {
			for _, a := range f.LeafValue(h).Actions() {
				if v, ok := a.Get(field.Location); ok && v.Kind() == field.LocationKind && v.Location() == field.Pipe {
					names[v.Name()] = true
				}
			}
			return
		}
		_, tChild, fChild, _ := f.BranchTest(h)
		walk(tChild)
		walk(fChild)
	}
	walk(h)

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
