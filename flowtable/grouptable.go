package flowtable

import "github.com/netkatgo/netkat/action"

// GroupID names an entry in a GroupTable. The zero GroupID never names a
// real group; a Rule with a zero Group applies its Actions directly.
type GroupID uint32

// Bucket is one alternative of a Group: a single action to apply when
// the switch selects this bucket (multicast: every bucket fires;
// fast-failover: the first bucket whose watched port is live fires).
type Bucket struct {
	Action action.Action
}

// Group is a multi-bucket action collaborator, hoisted out of a Rule's
// inline Actions when the leaf's ActionSet has more than one member —
// spec.md section 4.5's "multi-bucket actions (multicast fan-out,
// fast-failover) are hoisted to a GroupTable collaborator type."
type Group struct {
	ID      GroupID
	Buckets []Bucket
}

// GroupTable collects every Group a Table's rules reference.
type GroupTable struct {
	Groups []Group
}

// Add hoists acts into a new Group and returns its id. Bucket order
// follows action.Set.Actions' canonical key order, so two structurally
// identical ActionSets always produce identically-ordered buckets.
// Exported so the multitable package's per-stage emission can hoist a
// path's final action into the same GroupTable a single-table emission
// would use.
func (gt *GroupTable) Add(acts action.Set) GroupID {
	id := GroupID(len(gt.Groups) + 1)
	acc := acts.Actions()
	buckets := make([]Bucket, 0, len(acc))
	for _, a := range acc {
		buckets = append(buckets, Bucket{Action: a})
	}
	gt.Groups = append(gt.Groups, Group{ID: id, Buckets: buckets})
	return id
}

// hoistGroups assigns a Group to every rule whose Actions has more than
// one member, mutating rules in place.
func hoistGroups(rules []Rule, groups *GroupTable) {
	for i := range rules {
		if rules[i].Actions.Size() > 1 {
			rules[i].Group = groups.Add(rules[i].Actions)
		}
	}
}
