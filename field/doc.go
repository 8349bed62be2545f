// Package field defines the finite, totally ordered set of packet-header
// field identifiers and the per-field value domain the rest of the
// compiler is built on.
//
// A Field is one of a closed enumeration (Switch, Location, EthSrc, IP4Src,
// ...). An Order fixes a total order over that enumeration for the
// lifetime of a compilation session: every FDD composed together must
// share one Order, since branch nesting (field f1 strictly before f2 on
// any root-to-leaf path) is only meaningful relative to a single order.
//
// Value is a tagged union: a fixed-width integer for most fields, a
// (address, prefix-length) pair for the IP4Src/IP4Dst fields, or a
// symbolic location (pipe/query/fast-failover) for Location/VPort.
// Equality and ordering are defined per tag; IP containment is checked
// with net/netip prefix operations rather than hand-rolled bit
// arithmetic.
package field
