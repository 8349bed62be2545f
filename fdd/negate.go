package fdd

import (
	"fmt"

	"github.com/netkatgo/netkat/action"
)

// Negate computes the predicate complement of h: every id leaf becomes
// drop and every drop leaf becomes id. It returns ErrNonPredicateNegation
// if h has any leaf that is neither — negation is undefined over general
// (multicast, modifying) policies, only over predicates (spec.md section
// 4.3, "Negate").
func (f *Forest) Negate(h Handle) (Handle, error) {
	if err := f.checkPredicateOnly(h, make(map[Handle]struct{})); err != nil {
		return invalidHandle, err
	}
	return f.MapLeaves("negate", negateLeaf, h), nil
}

func negateLeaf(s action.Set) action.Set {
	if s.IsDrop() {
		return action.Id()
	}
	return action.Drop()
}

func (f *Forest) checkPredicateOnly(h Handle, seen map[Handle]struct{}) error {
	if _, ok := seen[h]; ok {
		return nil
	}
	seen[h] = struct{}{}

	n := f.get(h)
	if n.isLeaf {
		if n.leaf.IsDrop() || n.leaf.IsId() {
			return nil
		}
		return fmt.Errorf("%w: leaf %s", ErrNonPredicateNegation, n.leaf.String())
	}
	if err := f.checkPredicateOnly(n.tChild, seen); err != nil {
		return err
	}
	return f.checkPredicateOnly(n.fChild, seen)
}
