package policy

import "github.com/netkatgo/netkat/field"

// Pred is a NetKAT predicate: a test over packet header fields with no
// side effect. The grammar is closed — True, False, Match, Not, And, Or
// are the only implementations, matched by type switch in compile.go.
type Pred interface{ isPred() }

// PTrue matches every packet.
type PTrue struct{}

// PFalse matches no packet.
type PFalse struct{}

// Match matches packets whose Field equals Value (prefix-containment for
// IP fields, see field.Test.Matches).
type Match struct {
	Field field.Field
	Value field.Value
}

// Not is predicate negation.
type Not struct{ P Pred }

// And is predicate conjunction over zero or more operands; And{} is
// equivalent to PTrue.
type And struct{ Ps []Pred }

// Or is predicate disjunction over zero or more operands; Or{} is
// equivalent to PFalse.
type Or struct{ Ps []Pred }

func (PTrue) isPred()  {}
func (PFalse) isPred() {}
func (Match) isPred()  {}
func (Not) isPred()    {}
func (And) isPred()    {}
func (Or) isPred()     {}

// Policy is a NetKAT policy: a predicate (via Filter), a field
// assignment (Mod), or a composition of sub-policies. Link represents a
// topology edge and is meaningful only to CompileGlobal.
type Policy interface{ isPolicy() }

// Filter runs P as a filter: packets not matching P are dropped.
type Filter struct{ P Pred }

// Mod assigns Value to Field unconditionally.
type Mod struct {
	Field field.Field
	Value field.Value
}

// PUnion is parallel composition (spec.md's Union) over zero or more
// sub-policies.
type PUnion struct{ Ps []Policy }

// PSeq is sequential composition over zero or more sub-policies; PSeq{}
// is equivalent to Filter{PTrue{}} (the identity policy).
type PSeq struct{ Ps []Policy }

// PStar is Kleene iteration: "do P zero or more times."
type PStar struct{ P Policy }

// Link is a topology edge from (Switch1, Port1) to (Switch2, Port2):
// "a packet arriving at Port1 on Switch1 is forwarded, unmodified, to
// Port2 on Switch2." Only CompileGlobal interprets Link nodes;
// CompileLocal rejects them with ErrNonLocal.
type Link struct {
	Switch1, Port1 field.Value
	Switch2, Port2 field.Value
}

func (Filter) isPolicy() {}
func (Mod) isPolicy()    {}
func (PUnion) isPolicy() {}
func (PSeq) isPolicy()   {}
func (PStar) isPolicy()  {}
func (Link) isPolicy()   {}
