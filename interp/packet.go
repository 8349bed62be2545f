package interp

import (
	"sort"
	"strings"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

// Packet is a concrete header-field assignment: exactly the shape Eval
// walks an FDD against. A field absent from the map is simply unset on
// this packet (not the same as the field's zero Value, which field.Value
// documents as a legitimate value in its own right) — a branch testing
// an unset field always takes the false edge, since there is nothing for
// the test to match.
//
// Packet is immutable by convention, matching action.Set: every method
// returns a new Packet rather than mutating the receiver.
type Packet struct {
	fields map[field.Field]field.Value
}

// NewPacket builds a Packet from an initial set of field assignments.
func NewPacket(mods ...field.Modification) Packet {
	p := Packet{fields: make(map[field.Field]field.Value, len(mods))}
	for _, m := range mods {
		p.fields[m.Field] = m.Value
	}
	return p
}

// Get returns the value f is set to on p, if any.
func (p Packet) Get(f field.Field) (field.Value, bool) {
	v, ok := p.fields[f]
	return v, ok
}

// With returns a copy of p with f set to v.
func (p Packet) With(f field.Field, v field.Value) Packet {
	out := make(map[field.Field]field.Value, len(p.fields)+1)
	for k, val := range p.fields {
		out[k] = val
	}
	out[f] = v
	return Packet{fields: out}
}

// Apply returns the packet that results from running a's assignments
// against p — the leaf-application step of spec.md section 4.7's
// eval: "at a leaf, apply each action to the packet."
func (p Packet) Apply(a action.Action) Packet {
	out := p
	for _, f := range a.Fields() {
		v, _ := a.Get(f)
		out = out.With(f, v)
	}
	return out
}

// String renders p for diagnostics: a sorted, comma-separated list of
// its field assignments.
func (p Packet) String() string {
	fs := make([]field.Field, 0, len(p.fields))
	for f := range p.fields {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String() + "=" + p.fields[f].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ApplySet returns one output Packet per member action of s, applied to
// p independently — the "set of packets" spec.md section 4.7 describes
// a leaf's ActionSet as producing.
func ApplySet(p Packet, s action.Set) []Packet {
	acts := s.Actions()
	out := make([]Packet, 0, len(acts))
	for _, a := range acts {
		out = append(out, p.Apply(a))
	}
	return out
}
