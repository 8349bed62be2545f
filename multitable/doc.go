// Package multitable emits a layout-driven sequence of OpenFlow-style
// tables from a compiled FDD (spec.md section 4.6, "to_multitable"): the
// caller supplies a Layout partitioning the field enumeration into
// ordered slabs, and ToMultiTable horizontally splits the FDD's
// root-to-leaf paths (the same paths flowtable.ToTable turns into rules)
// across one table per slab,
// chaining stages with a GotoTable continuation plus a metadata id that
// ties a later stage's rule back to the earlier stage that produced it.
//
// A field tested or assigned outside every slab, or a single action
// whose assigned fields span two slabs, is rejected as
// ErrFieldOutOfLayout — the conservative reading of the spec's Open
// Question: there is no implicit encoding that splits one field
// assignment across two tables.
package multitable
