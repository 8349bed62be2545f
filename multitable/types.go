package multitable

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/flowtable"
)

// MetadataID ties a stage-N+1 rule back to the stage-N rule whose
// GotoTable produced it. Metadata 0 means "no metadata test" — every
// path's first stage matches without one, since nothing has written
// metadata yet.
type MetadataID uint64

// GotoTable is the continuation a TableRule carries instead of a final
// Actions/Group when the path it represents still has constraints in a
// later slab.
type GotoTable struct {
	Table    int
	Metadata MetadataID
}

// TableRule is one entry in one stage table. Exactly one of Goto or
// (Actions/Group) is meaningful: a non-nil Goto means "write Metadata
// and jump to Table", ignoring Actions; a nil Goto means this rule is a
// path's final stage and Actions (optionally via Group, for a
// multi-bucket action) is the real output.
type TableRule struct {
	Pattern  flowtable.Pattern
	Metadata MetadataID
	Priority int
	Goto     *GotoTable
	Actions  action.Set
	Group    flowtable.GroupID
}

// Table is one stage of a multi-table program: Rules[0] has the highest
// priority among rules sharing the same Metadata value.
type Table struct {
	Index int
	Rules []TableRule
}

// Program is the full layout-driven emission: one Table per Layout
// slab, plus the GroupTable every stage's multi-bucket rules reference.
type Program struct {
	Tables []Table
	Groups flowtable.GroupTable
}
