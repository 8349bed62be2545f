package field

import "fmt"

// Field identifies one packet-header dimension the compiler can test or
// modify. The zero value is not a valid field; use the named constants.
type Field uint8

// The closed enumeration of recognized header fields. Order of declaration
// has no bearing on compilation order — that is controlled by an Order
// value (see order.go) — but EthType..TCPDstPort roughly mirror a parsed
// Ethernet/IP/TCP header, which is the layout most Heuristic orders settle
// on in practice.
const (
	Switch Field = iota
	Location
	VSwitch
	VPort
	EthSrc
	EthDst
	Vlan
	VlanPcp
	EthType
	IPProto
	IP4Src
	IP4Dst
	TCPSrcPort
	TCPDstPort

	numFields // sentinel, not a valid Field
)

var fieldNames = [numFields]string{
	Switch:     "Switch",
	Location:   "Location",
	VSwitch:    "VSwitch",
	VPort:      "VPort",
	EthSrc:     "EthSrc",
	EthDst:     "EthDst",
	Vlan:       "Vlan",
	VlanPcp:    "VlanPcp",
	EthType:    "EthType",
	IPProto:    "IPProto",
	IP4Src:     "IP4Src",
	IP4Dst:     "IP4Dst",
	TCPSrcPort: "TCPSrcPort",
	TCPDstPort: "TCPDstPort",
}

// String renders the field's canonical name, or a numeric fallback for an
// out-of-range value (which should never occur for a Field obtained from
// this package's constants).
func (f Field) String() string {
	if int(f) < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the declared enumeration members.
func (f Field) Valid() bool {
	return f < numFields
}

// IsIPField reports whether f takes prefix-shaped values (IP4Src, IP4Dst).
// Used by restrict/shadow logic to route field values to the
// longest-prefix-match comparison instead of plain equality.
func (f Field) IsIPField() bool {
	return f == IP4Src || f == IP4Dst
}

// NumFields returns the size of the closed field enumeration. Exposed for
// callers (e.g. a Static field order) that need to size a permutation
// slice without reaching into package internals.
func NumFields() int {
	return int(numFields)
}

// AllFields returns every declared field in enumeration order. The
// returned slice is a fresh copy; callers may mutate it freely.
func AllFields() []Field {
	out := make([]Field, 0, numFields)
	for f := Field(0); f < numFields; f++ {
		out = append(out, f)
	}
	return out
}
