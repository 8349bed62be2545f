package field

import "errors"

// Sentinel errors raised while constructing or validating a field Order.
// Callers should branch with errors.Is, never string comparison, per the
// error-handling convention used throughout this module.
var (
	// ErrUnknownField indicates a Field value outside the closed
	// enumeration was supplied to StaticOrder.
	ErrUnknownField = errors.New("field: unknown field in static order")

	// ErrIncompleteOrder indicates StaticOrder was given a permutation
	// that does not name every declared Field exactly once.
	ErrIncompleteOrder = errors.New("field: static order is incomplete")

	// ErrDuplicateField indicates the same Field appeared twice in a
	// StaticOrder permutation.
	ErrDuplicateField = errors.New("field: duplicate field in static order")
)
