package multitable

import (
	"fmt"

	"github.com/netkatgo/netkat/field"
)

// Layout fixes a horizontal split of the flow-table emitter's output
// into an ordered sequence of tables, one per field.Field subset
// ("slab"). A field may appear in at most one slab; a field appearing
// in none is rejected at compile time as ErrFieldOutOfLayout, not
// silently ignored.
type Layout struct {
	slabs  [][]field.Field
	slabOf map[field.Field]int
}

// NewLayout validates slabs — every field must be a declared
// field.Field and appear in at most one slab — and builds the
// field-to-table-index lookup ToMultiTable uses.
func NewLayout(slabs ...[]field.Field) (Layout, error) {
	slabOf := make(map[field.Field]int)
	for i, slab := range slabs {
		for _, f := range slab {
			if !f.Valid() {
				return Layout{}, fmt.Errorf("%w: %s", field.ErrUnknownField, f)
			}
			if _, dup := slabOf[f]; dup {
				return Layout{}, fmt.Errorf("%w: %s", field.ErrDuplicateField, f)
			}
			slabOf[f] = i
		}
	}
	return Layout{slabs: slabs, slabOf: slabOf}, nil
}

// NumTables returns the number of tables this Layout produces.
func (l Layout) NumTables() int { return len(l.slabs) }

// slabIndex returns the table index f's slab occupies, or false if f is
// not covered by any slab.
func (l Layout) slabIndex(f field.Field) (int, bool) {
	i, ok := l.slabOf[f]
	return i, ok
}
