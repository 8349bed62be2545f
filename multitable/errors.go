package multitable

import "errors"

// ErrFieldOutOfLayout is returned when a compiled diagram tests or
// assigns a field no Layout slab covers, or when a single Action
// assigns fields that belong to more than one slab (an atomic
// assignment this emitter refuses to split across two tables).
var ErrFieldOutOfLayout = errors.New("multitable: field not covered by, or action spans, more than one layout slab")
