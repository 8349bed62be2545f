// Package flowtable emits a single OpenFlow flow table from a compiled
// FDD: ToTable enumerates every root-to-leaf path, turns each into a
// wildcard Pattern (built only from the positive tests on that path —
// the false-branch "not this value" information is represented via rule
// priority and shadowing, not as an explicit negative match, since
// OpenFlow patterns cannot express inequality directly), and orders the
// resulting Rules so a switch evaluating them highest-priority-first
// reproduces the FDD's semantics (spec.md section 4.5, "to_table").
package flowtable
