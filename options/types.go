package options

import "errors"

// Sentinel errors returned by CompileOptions validation and JSON decoding.
var (
	// ErrUnknownField is returned by FromJSON when field_order names a
	// field outside field's enumeration. A permutation that names only
	// known fields but is otherwise invalid is rejected by
	// field.StaticOrder, whose error is returned as is, so errors.Is
	// matches field.ErrIncompleteOrder/ErrDuplicateField.
	ErrUnknownField = errors.New("options: unknown field in configuration")

	// ErrUnknownCacheMode is returned when decoding a CacheMode value
	// outside the declared enumeration.
	ErrUnknownCacheMode = errors.New("options: unrecognized cache mode")

	// ErrUnknownAdherence is returned when decoding an OpenflowAdherence
	// value outside the declared enumeration.
	ErrUnknownAdherence = errors.New("options: unrecognized openflow adherence level")

	// ErrStrictUnknownKey is returned by FromJSON in strict mode when the
	// input contains a field CompileOptions does not declare.
	ErrStrictUnknownKey = errors.New("options: unknown key in strict JSON decode")
)

// CacheMode names a lifecycle for the Forest's Apply/MapLeaves memo
// caches between successive compiles sharing one Forest (spec.md section
// 5, "cache lifecycle"): CacheKeep, CacheEmpty or CachePreserve. The
// value is validated, stored in CompileOptions.CachePrepare and
// JSON-encoded; nothing in this module reads it or acts on it, and the
// caches change only when a caller invokes fdd.Forest.ResetMemo, which
// purges them.
type CacheMode int

const (
	CacheKeep CacheMode = iota
	CacheEmpty
	CachePreserve
)

func (m CacheMode) String() string {
	switch m {
	case CacheKeep:
		return "keep"
	case CacheEmpty:
		return "empty"
	case CachePreserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the declared CacheMode values.
func (m CacheMode) Valid() bool {
	return m == CacheKeep || m == CacheEmpty || m == CachePreserve
}

// OpenflowAdherence names how strictly flow-rule emission follows
// OpenFlow's own rule set: Strict or Sloppy. The value is validated,
// stored in CompileOptions.OpenflowAdherence and JSON-encoded; the
// flowtable/multitable emitters do not read it and behave the same under
// both levels (multitable, for instance, returns ErrFieldOutOfLayout
// either way, and neither emitter has a best-effort approximation mode).
type OpenflowAdherence int

const (
	Strict OpenflowAdherence = iota
	Sloppy
)

func (a OpenflowAdherence) String() string {
	switch a {
	case Strict:
		return "strict"
	case Sloppy:
		return "sloppy"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the declared OpenflowAdherence values.
func (a OpenflowAdherence) Valid() bool {
	return a == Strict || a == Sloppy
}
