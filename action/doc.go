// Package action implements the action algebra of SPEC_FULL.md section
// 4.1: a single Action is a partial, simultaneous assignment from Field to
// Value; an ActionSet is an unordered set of Actions, read as "emit one
// copy of the packet per action" (parallel/multicast composition).
//
// ActionSet is backed by a generic Set (github.com/deckarep/golang-set/v2)
// keyed by each Action's canonical string encoding, rather than a
// hand-rolled map[string]struct{} — the contract (unordered, deduplicated
// membership, set union for Par) is exactly what that library already
// provides, and Action itself is not a comparable type (it holds a map),
// so the set is keyed on Action.Key() with a side table recovering the
// Action value.
package action
