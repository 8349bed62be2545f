package field

import (
	"fmt"
	"net/netip"
)

// Kind discriminates the variants of Value. Dispatch in this package and
// its callers is always on Kind, never on a type switch or interface
// method set — a single enum tag keeps the FDD engine's leaf/branch
// comparisons branch-predictor friendly and avoids a virtual-dispatch
// hierarchy for what is, underneath, a handful of fixed shapes.
type Kind uint8

const (
	// IntKind values are a fixed-width integer (EthType, VlanPcp, ports,
	// the numeric form of EthSrc/EthDst, ...).
	IntKind Kind = iota
	// PrefixKind values are an (address, prefix-length) pair, used for
	// IP4Src/IP4Dst. The whole prefix is carried as one indivisible unit;
	// see SPEC_FULL.md section 9 for why partial-prefix assignment is not
	// a supported shape.
	PrefixKind
	// LocationKind values are symbolic switch/port destinations: a
	// physical port, or one of the Pipe/Query/FastFail pseudo-ports.
	LocationKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case PrefixKind:
		return "Prefix"
	case LocationKind:
		return "Location"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// LocationTag distinguishes the symbolic sub-shapes of a LocationKind
// Value.
type LocationTag uint8

const (
	Physical LocationTag = iota
	Pipe
	Query
	FastFail
)

func (t LocationTag) String() string {
	switch t {
	case Physical:
		return "Physical"
	case Pipe:
		return "Pipe"
	case Query:
		return "Query"
	case FastFail:
		return "FastFail"
	default:
		return fmt.Sprintf("LocationTag(%d)", uint8(t))
	}
}

// Value is the per-field value domain: a tagged union of an integer, an
// IP prefix, or a symbolic location. The zero Value is IntKind(0), which
// is a legitimate (if unusual) value — callers should not rely on the
// zero value meaning "absent"; absence is modeled at the Modification/
// Action level, not here.
type Value struct {
	kind   Kind
	num    uint64
	prefix netip.Prefix
	loc    LocationTag
	name   string
}

// IntVal builds an IntKind value.
func IntVal(n uint64) Value { return Value{kind: IntKind, num: n} }

// PrefixVal builds a PrefixKind value from a normalized netip.Prefix. The
// prefix is stored exactly as given (netip.Prefix.Masked is not applied
// automatically); callers that need canonical form should call
// p.Masked() themselves before constructing the Value, since two Values
// built from an unmasked and masked form of the same prefix are not
// Equal.
func PrefixVal(p netip.Prefix) Value { return Value{kind: PrefixKind, prefix: p} }

// PhysicalVal builds a LocationKind value naming a concrete switch port.
func PhysicalVal(port uint32) Value {
	return Value{kind: LocationKind, loc: Physical, num: uint64(port)}
}

// PipeVal builds a LocationKind value naming a named pipe (a software
// control-plane sink), for use as an action's Location assignment.
func PipeVal(name string) Value { return Value{kind: LocationKind, loc: Pipe, name: name} }

// QueryVal builds a LocationKind value naming a packet-counting query
// sink.
func QueryVal(name string) Value { return Value{kind: LocationKind, loc: Query, name: name} }

// FastFailVal builds a LocationKind value naming a fast-failover group.
func FastFailVal(name string) Value { return Value{kind: LocationKind, loc: FastFail, name: name} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Valid only when Kind() == IntKind or
// Kind() == LocationKind with Location() == Physical.
func (v Value) Int() uint64 { return v.num }

// Prefix returns the IP prefix payload. Valid only when Kind() ==
// PrefixKind.
func (v Value) Prefix() netip.Prefix { return v.prefix }

// Location returns the symbolic location tag. Valid only when Kind() ==
// LocationKind.
func (v Value) Location() LocationTag { return v.loc }

// Name returns the pipe/query/fast-failover name. Valid only when
// Kind() == LocationKind and Location() is Pipe, Query, or FastFail.
func (v Value) Name() string { return v.name }

// Equal reports structural equality between two Values of possibly
// different kinds (cross-kind comparisons are always false).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.num == o.num
	case PrefixKind:
		return v.prefix == o.prefix
	case LocationKind:
		if v.loc != o.loc {
			return false
		}
		if v.loc == Physical {
			return v.num == o.num
		}
		return v.name == o.name
	default:
		return false
	}
}

// Compare defines a total order over all Values, used to break ties in
// Apply's min(top(x), top(y)) step when two diagrams branch on the same
// Field with different Values, and to produce a deterministic
// lexicographic key for flow-table rule ordering. Cross-kind comparisons
// order by Kind first.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case IntKind:
		return cmpUint64(v.num, o.num)
	case PrefixKind:
		return cmpPrefix(v.prefix, o.prefix)
	case LocationKind:
		if v.loc != o.loc {
			if v.loc < o.loc {
				return -1
			}
			return 1
		}
		if v.loc == Physical {
			return cmpUint64(v.num, o.num)
		}
		if v.name < o.name {
			return -1
		}
		if v.name > o.name {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpPrefix(a, b netip.Prefix) int {
	if a.Bits() != b.Bits() {
		if a.Bits() < b.Bits() {
			return -1
		}
		return 1
	}
	aa, ba := a.Addr(), b.Addr()
	return aa.Compare(ba)
}

// Contains reports whether the IP address space denoted by v (a pattern
// Value, expected PrefixKind) fully covers the space denoted by o. Used
// by restrict and by the flow-table shadow relation for a single pairwise
// check; see the flowtable package for the bulk longest-prefix-match form
// used when comparing one pattern against many.
func (v Value) Contains(o Value) bool {
	if v.kind != PrefixKind || o.kind != PrefixKind {
		return v.Equal(o)
	}
	if o.prefix.Bits() < v.prefix.Bits() {
		return false
	}
	return v.prefix.Contains(o.prefix.Addr())
}

// String renders a Value for diagnostics and to_string/to_dotfile output.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return fmt.Sprintf("%d", v.num)
	case PrefixKind:
		return v.prefix.String()
	case LocationKind:
		switch v.loc {
		case Physical:
			return fmt.Sprintf("port:%d", v.num)
		default:
			return fmt.Sprintf("%s(%s)", v.loc, v.name)
		}
	default:
		return "<invalid value>"
	}
}
