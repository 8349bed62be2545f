package options

import (
	"bytes"
	"fmt"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/netkatgo/netkat/field"
)

// CompileOptions is the compile configuration carried alongside the
// flow-rule emitters (flowtable.ToTable, multitable.ToMultiTable), which
// read RemoveTailDrops and DedupFlows. The policy package takes no
// options, and no compiler or emitter in this module reads FieldOrder,
// CachePrepare, Optimize or OpenflowAdherence: they are validated,
// stored and JSON-encoded only. The zero value is not meaningful on its
// own — always start from Default().
//
// FieldOrder    – a field.Order, stored and encoded only; a Forest's
//                 order is the one passed to fdd.NewForest. Default is
//                 field.DefaultOrder().
// CachePrepare  – a CacheMode, stored and encoded only. Default is
//                 CacheKeep.
// RemoveTailDrops – if true, the flowtable emitter omits a trailing
//                 catch-all drop rule when the underlying switch already
//                 drops unmatched packets by default. Default false.
// DedupFlows    – if true, the flowtable and multitable emitters drop
//                 rules that exactly repeat an earlier rule's pattern and
//                 action; rules whose patterns merely subsume one another
//                 are not merged. Default false.
// Optimize      – stored and encoded only; enables no pass. Default
//                 false.
// OpenflowAdherence – Strict or Sloppy; see options/types.go. Default
//                 Strict.
type CompileOptions struct {
	FieldOrder        field.Order
	CachePrepare      CacheMode
	RemoveTailDrops   bool
	DedupFlows        bool
	Optimize          bool
	OpenflowAdherence OpenflowAdherence
}

// CompileOption is a functional option over CompileOptions, the same
// shape as lvlath's dijkstra.Option.
type CompileOption func(*CompileOptions)

// Default returns a CompileOptions populated with the package defaults:
// field.DefaultOrder(), CacheKeep, no tail-drop removal, no dedup, no
// extra optimization, Strict OpenFlow adherence.
func Default() CompileOptions {
	return CompileOptions{
		FieldOrder:        field.DefaultOrder(),
		CachePrepare:      CacheKeep,
		RemoveTailDrops:   false,
		DedupFlows:        false,
		Optimize:          false,
		OpenflowAdherence: Strict,
	}
}

// WithFieldOrder overrides the field order. It does no validation of
// its own: ord is whatever field.Order the caller built (field.StaticOrder
// already rejects an invalid permutation with an error).
func WithFieldOrder(ord field.Order) CompileOption {
	return func(o *CompileOptions) {
		o.FieldOrder = ord
	}
}

// WithStaticFieldOrder builds the order from an explicit field
// permutation via field.StaticOrder and panics if it is invalid (the
// same "panic in an Option constructor on invalid input" convention
// lvlath's WithMaxDistance/WithInfEdgeThreshold use), since a malformed
// order is a programming error, not recoverable user input.
func WithStaticFieldOrder(perm []field.Field) CompileOption {
	ord, err := field.StaticOrder(perm)
	if err != nil {
		panic(fmt.Sprintf("options: WithStaticFieldOrder: %v", err))
	}
	return WithFieldOrder(ord)
}

// WithCachePrepare sets the memo-cache lifecycle for this compile.
func WithCachePrepare(mode CacheMode) CompileOption {
	if !mode.Valid() {
		panic(ErrUnknownCacheMode.Error())
	}
	return func(o *CompileOptions) {
		o.CachePrepare = mode
	}
}

// WithRemoveTailDrops enables trailing catch-all drop elision in the
// flowtable emitter.
func WithRemoveTailDrops() CompileOption {
	return func(o *CompileOptions) {
		o.RemoveTailDrops = true
	}
}

// WithDedupFlows makes the flowtable and multitable emitters drop
// exact-duplicate (pattern, action) rules; subsumed rules are kept.
func WithDedupFlows() CompileOption {
	return func(o *CompileOptions) {
		o.DedupFlows = true
	}
}

// WithOptimize sets the Optimize flag. No compiler or emitter in this
// module reads it.
func WithOptimize() CompileOption {
	return func(o *CompileOptions) {
		o.Optimize = true
	}
}

// WithOpenflowAdherence sets the OpenflowAdherence level. No emitter in
// this module reads it.
func WithOpenflowAdherence(a OpenflowAdherence) CompileOption {
	if !a.Valid() {
		panic(ErrUnknownAdherence.Error())
	}
	return func(o *CompileOptions) {
		o.OpenflowAdherence = a
	}
}

// Apply builds a CompileOptions from Default() plus opts, in order.
func Apply(opts ...CompileOption) CompileOptions {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// jsonOptions is CompileOptions' wire shape: field.Order has no exported
// fields (by design — see field/order.go), so it is carried as the
// permutation of field names that reconstructs it via field.StaticOrder.
type jsonOptions struct {
	FieldOrder        []string `json:"field_order"`
	CachePrepare      string   `json:"cache_prepare"`
	RemoveTailDrops   bool     `json:"remove_tail_drops"`
	DedupFlows        bool     `json:"dedup_flows"`
	Optimize          bool     `json:"optimize"`
	OpenflowAdherence string   `json:"openflow_adherence"`
}

func orderToNames(ord field.Order) []string {
	fs := field.AllFields()
	sort.Slice(fs, func(i, j int) bool { return ord.Rank(fs[i]) < ord.Rank(fs[j]) })
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return names
}

func namesToOrder(names []string) (field.Order, error) {
	byName := make(map[string]field.Field, field.NumFields())
	for _, f := range field.AllFields() {
		byName[f.String()] = f
	}
	perm := make([]field.Field, len(names))
	for i, n := range names {
		f, ok := byName[n]
		if !ok {
			return field.Order{}, fmt.Errorf("%w: %q", ErrUnknownField, n)
		}
		perm[i] = f
	}
	return field.StaticOrder(perm)
}

func cacheModeFromString(s string) (CacheMode, error) {
	switch s {
	case CacheKeep.String():
		return CacheKeep, nil
	case CacheEmpty.String():
		return CacheEmpty, nil
	case CachePreserve.String():
		return CachePreserve, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCacheMode, s)
	}
}

func adherenceFromString(s string) (OpenflowAdherence, error) {
	switch s {
	case Strict.String():
		return Strict, nil
	case Sloppy.String():
		return Sloppy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAdherence, s)
	}
}

// ToJSON encodes o via goccy/go-json, the fast JSON codec the rest of
// this module's ambient stack uses (grounded on erigon's go.mod).
func (o CompileOptions) ToJSON() ([]byte, error) {
	wire := jsonOptions{
		FieldOrder:        orderToNames(o.FieldOrder),
		CachePrepare:      o.CachePrepare.String(),
		RemoveTailDrops:   o.RemoveTailDrops,
		DedupFlows:        o.DedupFlows,
		Optimize:          o.Optimize,
		OpenflowAdherence: o.OpenflowAdherence.String(),
	}
	return gojson.Marshal(wire)
}

// FromJSON decodes a CompileOptions previously produced by ToJSON. When
// strict is true, any key not in jsonOptions' shape causes
// ErrStrictUnknownKey instead of being silently ignored — the "Strict"
// half of the OpenflowAdherence-style strict/sloppy split this package
// applies to its own decoding, not just to flow-rule emission.
func FromJSON(data []byte, strict bool) (CompileOptions, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	var wire jsonOptions
	if err := dec.Decode(&wire); err != nil {
		if strict {
			return CompileOptions{}, fmt.Errorf("%w: %v", ErrStrictUnknownKey, err)
		}
		return CompileOptions{}, err
	}

	ord, err := namesToOrder(wire.FieldOrder)
	if err != nil {
		return CompileOptions{}, err
	}
	cacheMode, err := cacheModeFromString(wire.CachePrepare)
	if err != nil {
		return CompileOptions{}, err
	}
	adherence, err := adherenceFromString(wire.OpenflowAdherence)
	if err != nil {
		return CompileOptions{}, err
	}

	return CompileOptions{
		FieldOrder:        ord,
		CachePrepare:      cacheMode,
		RemoveTailDrops:   wire.RemoveTailDrops,
		DedupFlows:        wire.DedupFlows,
		Optimize:          wire.Optimize,
		OpenflowAdherence: adherence,
	}, nil
}
