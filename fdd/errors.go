package fdd

import "errors"

// ErrNonPredicateNegation is returned by Negate when the argument FDD has
// a leaf whose ActionSet is neither Drop nor Id — negation is only
// defined over predicates (spec.md section 4.3, "Negate").
var ErrNonPredicateNegation = errors.New("fdd: negate requires a predicate-only diagram (leaves must be drop or id)")

// ErrNodeOrderViolation is returned by Branch when the caller's true
// child does not strictly follow the test's field in field.Order — an
// internal-consistency condition that should never be reachable from the
// package's own operators; it exists so a field.Order bug fails loudly
// instead of silently mis-ordering a diagram.
var ErrNodeOrderViolation = errors.New("fdd: branch child violates field order invariant")

// ErrStarDidNotConverge guards the Kleene iteration in Star against a
// field.Order or Apply bug that would otherwise spin forever; the
// fixed-point is guaranteed to exist and converge within a number of
// iterations bounded by the diagram's node count, so hitting this limit
// always indicates a bug rather than a legitimately large policy.
var ErrStarDidNotConverge = errors.New("fdd: star iteration exceeded safety bound without converging")
