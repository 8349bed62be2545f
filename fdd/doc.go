// Package fdd implements the Forwarding Decision Diagram: a hash-consed,
// canonical, ordered, reduced multi-terminal decision diagram over
// field.Test branches and action.Set leaves, together with the memoized
// Apply engine and the algebraic operators built on it (Union, Seq, Star,
// Negate, Restrict, Dedup).
//
// A Handle is an opaque, interned node identity: two diagrams with the
// same structure always share the same Handle ("extensional equality =
// handle equality"), enforced entirely inside the package's Branch
// constructor — no structural-compare fallback is ever exposed to
// callers, matching SPEC_FULL.md section 9.
//
// # Branch invariant (resolved ambiguity)
//
// spec.md describes a Branch node as (Test, trueChild, falseChild) with
// "both children strictly greater in field order" — which is exact for
// boolean-ish predicates but cannot hold in general for a field whose
// value domain has more than two members (e.g. IP4Src): the union of
// Test(f,v1) and Test(f,v2), v1≠v2, has no representation as a single
// binary node whose *both* children skip field f entirely, since
// resolving "f≠v1" does not yet decide between v2 and every other value.
// This module resolves the ambiguity (see DESIGN.md) the way real
// multi-valued decision-diagram implementations do: the invariant is
// enforced on the *true* child only (strictly greater field); the *false*
// child may repeat the same field at a strictly greater Value, forming an
// ascending per-field chain that terminates in a strictly-greater field
// once the field's tested values are exhausted. Hash-consing keeps this
// chain canonical regardless of construction order: Branch rotates an
// out-of-order chain into ascending-value form before interning, the same
// "cofactor lift" spec.md section 4.2 gestures at without giving an
// algorithm.
package fdd
