// Package netkat compiles a high-level, algebraic network-policy
// language (NetKAT) into per-switch OpenFlow forwarding tables.
//
// A policy is a regular-expression-like expression over packet
// predicates and field modifications, combined with parallel
// composition (union), sequential composition, and Kleene star. The
// compiler lowers such a policy into a canonical, hash-consed decision
// diagram (a Forwarding Decision Diagram, or FDD), then translates the
// diagram into prioritized flow-table rules — either a single table or
// a layout-driven sequence of tables chained with GotoTable
// instructions.
//
// The work is organized bottom-up across subpackages:
//
//	field/      — the closed, totally ordered header-field enumeration
//	              and its per-field value domain (integers, IP prefixes,
//	              symbolic pipe/query/fast-failover locations).
//	action/     — single actions (simultaneous field assignments) and
//	              action sets (parallel composition / multicast).
//	fdd/        — the hash-consed decision diagram engine: the
//	              constructor, the memoized apply skeleton, and the
//	              algebraic operators (union, seq, star, negate,
//	              restrict, dedup) built on it.
//	policy/     — the policy AST and its structural compilation to an
//	              FDD, including global (multi-switch) compilation and
//	              per-switch specialization.
//	flowtable/  — FDD to single-table flow-rule emission: path
//	              enumeration, shadow-relation-based priority ordering,
//	              and group-table hoisting for multicast actions.
//	multitable/ — layout-driven horizontal splitting of an FDD across
//	              several OpenFlow tables, chained with GotoTable and a
//	              shared metadata discriminator.
//	interp/     — a reference interpreter for testing and debugging:
//	              evaluates an FDD against a concrete packet, and
//	              answers collateral questions about reachable pipes and
//	              queries.
//	options/    — functional-option configuration shared by the
//	              compiler and its emitters.
//
// Out of scope: AST construction and surface syntax beyond the policy
// package's own AST type, controller I/O and the OpenFlow wire encoder,
// and runtime packet forwarding — this module is the symbolic compiler,
// not a running switch.
package netkat
