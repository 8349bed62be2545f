package action

import (
	"sort"
	"strings"

	"github.com/netkatgo/netkat/field"
)

// Action is a simultaneous assignment to zero or more header fields: a
// partial map from Field to Value. The zero Action is the identity
// assignment (no fields touched).
type Action struct {
	mods map[field.Field]field.Value
}

// New builds an Action from a set of modifications. If the same Field
// appears more than once, the last occurrence in mods wins — callers that
// need "first wins" semantics should dedupe before calling New.
func New(mods ...field.Modification) Action {
	a := Action{mods: make(map[field.Field]field.Value, len(mods))}
	for _, m := range mods {
		a.mods[m.Field] = m.Value
	}
	return a
}

// Identity is the empty Action: it assigns nothing and leaves a packet
// unchanged. It is the id-leaf's sole member action.
func Identity() Action { return Action{} }

// Get returns the value Action assigns to f, if any.
func (a Action) Get(f field.Field) (field.Value, bool) {
	v, ok := a.mods[f]
	return v, ok
}

// IsIdentity reports whether a assigns no fields at all.
func (a Action) IsIdentity() bool { return len(a.mods) == 0 }

// Fields returns the fields a assigns, sorted by their numeric Field
// value for a deterministic iteration order independent of any
// particular field.Order.
func (a Action) Fields() []field.Field {
	out := make([]field.Field, 0, len(a.mods))
	for f := range a.mods {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Seq composes a followed by b: (a ; b)[f] = b[f] if b assigns f,
// otherwise a[f]. Seq is associative but not commutative.
func (a Action) Seq(b Action) Action {
	out := make(map[field.Field]field.Value, len(a.mods)+len(b.mods))
	for f, v := range a.mods {
		out[f] = v
	}
	for f, v := range b.mods {
		out[f] = v
	}
	return Action{mods: out}
}

// Restrict returns the sub-action of a whose assignments are not to any
// field in fields. Used by fdd.Dedup to strip assignments that restate a
// value the path to the leaf already guarantees.
func (a Action) Restrict(fields ...field.Field) Action {
	drop := make(map[field.Field]struct{}, len(fields))
	for _, f := range fields {
		drop[f] = struct{}{}
	}
	out := make(map[field.Field]field.Value, len(a.mods))
	for f, v := range a.mods {
		if _, skip := drop[f]; !skip {
			out[f] = v
		}
	}
	return Action{mods: out}
}

// Equal reports whether a and b assign exactly the same fields to the
// same values.
func (a Action) Equal(b Action) bool {
	if len(a.mods) != len(b.mods) {
		return false
	}
	for f, v := range a.mods {
		bv, ok := b.mods[f]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}

// Key returns a canonical string encoding of a, stable across calls and
// unique per distinct Action, used as the ActionSet membership key and as
// the map key recovering the Action from its encoding.
func (a Action) Key() string {
	fs := a.Fields()
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.String())
		b.WriteByte('=')
		b.WriteString(a.mods[f].String())
	}
	return b.String()
}

// String renders a for diagnostics; "id" for the identity action.
func (a Action) String() string {
	if a.IsIdentity() {
		return "id"
	}
	return a.Key()
}
