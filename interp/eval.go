package interp

import (
	"fmt"

	"github.com/netkatgo/netkat/fdd"
)

// Eval walks h following the edge that matches pkt's current field value
// at every branch, and applies the reached leaf's ActionSet to pkt —
// spec.md section 4.7's eval(packet, FDD) -> set of packets.
func Eval(f *fdd.Forest, h fdd.Handle, pkt Packet, opts ...Option) ([]Packet, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return evalWalk(f, h, pkt, 0, o)
}

func evalWalk(f *fdd.Forest, h fdd.Handle, pkt Packet, depth int, o Options) ([]Packet, error) {
	if err := o.OnVisit(depth, h); err != nil {
		return nil, fmt.Errorf("%w: depth %d: %v", ErrOnVisit, depth, err)
	}
	if f.IsLeaf(h) {
		return ApplySet(pkt, f.LeafValue(h)), nil
	}
	test, tChild, fChild, _ := f.BranchTest(h)
	next := fChild
	if v, ok := pkt.Get(test.Field); ok && test.Matches(v) {
		next = tChild
	}
	return evalWalk(f, next, pkt, depth+1, o)
}
