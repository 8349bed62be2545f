package action

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an unordered set of Actions — "emit one copy of the packet per
// member action." Par composition is set union; Drop is the empty Set;
// Id is the singleton Set containing only the Identity action.
//
// Set is immutable by convention: every method returns a new Set rather
// than mutating the receiver, matching the FDD engine's leaves (which are
// interned by value and must never change after construction).
type Set struct {
	keys mapset.Set[string]
	by   map[string]Action
}

func newEmpty() Set {
	return Set{keys: mapset.NewThreadUnsafeSet[string](), by: map[string]Action{}}
}

// Of builds a Set containing exactly the given actions, deduplicated.
func Of(actions ...Action) Set {
	s := newEmpty()
	for _, a := range actions {
		k := a.Key()
		if !s.keys.Contains(k) {
			s.keys.Add(k)
			s.by[k] = a
		}
	}
	return s
}

// Drop is the empty ActionSet: the policy that emits nothing.
func Drop() Set { return newEmpty() }

// Id is the singleton ActionSet containing only the identity action: the
// policy that forwards the packet unchanged.
func Id() Set { return Of(Identity()) }

// IsDrop reports whether s is the empty set.
func (s Set) IsDrop() bool { return s.keys.Cardinality() == 0 }

// IsId reports whether s is exactly {identity}.
func (s Set) IsId() bool {
	return s.keys.Cardinality() == 1 && s.keys.Contains(Identity().Key())
}

// Actions returns the member actions, sorted by canonical key for a
// deterministic iteration order.
func (s Set) Actions() []Action {
	keys := s.keys.ToSlice()
	sort.Strings(keys)
	out := make([]Action, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.by[k])
	}
	return out
}

// Size returns the number of member actions.
func (s Set) Size() int { return s.keys.Cardinality() }

// Par is parallel composition: set union. Par is the identity-carrying,
// commutative, associative, idempotent monoid operation over ActionSets
// (identity element Drop()).
func Par(sets ...Set) Set {
	out := newEmpty()
	for _, s := range sets {
		for k, a := range s.by {
			if !out.keys.Contains(k) {
				out.keys.Add(k)
				out.by[k] = a
			}
		}
	}
	return out
}

// SeqOne computes { a.Seq(t) | t in s }, i.e. sequencing a single action
// in front of every action in s.
func SeqOne(a Action, s Set) Set {
	out := newEmpty()
	for _, t := range s.Actions() {
		composed := a.Seq(t)
		k := composed.Key()
		if !out.keys.Contains(k) {
			out.keys.Add(k)
			out.by[k] = composed
		}
	}
	return out
}

// SeqSetSet computes the full cross-product sequence
// ⋃_{a in s} SeqOne(a, t), the leaf-level operation Seq on FDDs reduces to
// after cofactoring (SPEC_FULL.md / spec.md section 4.3).
func SeqSetSet(s, t Set) Set {
	out := newEmpty()
	for _, a := range s.Actions() {
		for k, comp := range SeqOne(a, t).by {
			if !out.keys.Contains(k) {
				out.keys.Add(k)
				out.by[k] = comp
			}
		}
	}
	return out
}

// Equal reports whether s and t contain exactly the same actions.
func (s Set) Equal(t Set) bool {
	return s.keys.Equal(t.keys)
}

// String renders s for diagnostics: "drop", "id", or a brace-delimited,
// sorted list of member action keys.
func (s Set) String() string {
	if s.IsDrop() {
		return "drop"
	}
	if s.IsId() {
		return "id"
	}
	acts := s.Actions()
	parts := make([]string, len(acts))
	for i, a := range acts {
		parts[i] = a.String()
	}
	return "{" + strings.Join(parts, " | ") + "}"
}
