package multitable

import (
	"sort"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
	"github.com/netkatgo/netkat/flowtable"
	"github.com/netkatgo/netkat/options"
)

// pathRule is one root-to-leaf path of the compiled FDD, before it is
// split across the Layout's tables.
type pathRule struct {
	pattern flowtable.Pattern
	actions action.Set
}

// ToMultiTable emits a layout-driven table sequence equivalent to h
// (spec.md section 4.6, "to_multitable").
//
// Two distinct paths can project to the identical sub-pattern within an
// early slab while still needing different numbers of further stages
// (one terminates there, another needs a later slab to discriminate
// further). Splitting them naively — one rule per original path — would
// put two rules with an identical match at the same table and metadata,
// one a terminal action and the other a GotoTable: an irresolvable
// conflict. assignStage avoids this by grouping paths that still share
// an identical projected pattern at the current stage and only
// resolving a group's fate (terminate here, or hop everyone in the
// group onward together) once that ambiguity is gone.
func ToMultiTable(f *fdd.Forest, h fdd.Handle, layout Layout, opts options.CompileOptions) (Program, error) {
	f.Log().Debugw("multitable: to_multi_table start", "tables", layout.NumTables())
	paths, err := collectPaths(f, h)
	if err != nil {
		f.Log().Debugw("multitable: to_multi_table failed", "error", err)
		return Program{}, err
	}
	for _, p := range paths {
		if err := validateFieldsCovered(layout, p.pattern); err != nil {
			return Program{}, err
		}
		if !p.actions.IsDrop() {
			for _, a := range p.actions.Actions() {
				if err := validateActionSlab(layout, a); err != nil {
					return Program{}, err
				}
				if err := flowtable.ValidateAction(a); err != nil {
					return Program{}, err
				}
			}
		}
	}
	if opts.DedupFlows {
		paths = dedupPaths(paths)
	}

	stageRules := make([][]TableRule, layout.NumTables())
	var groups flowtable.GroupTable
	nextMeta := MetadataID(1)

	if err := assignStage(layout, paths, 0, 0, &groups, stageRules, &nextMeta); err != nil {
		return Program{}, err
	}

	order := f.Order()
	tables := make([]Table, layout.NumTables())
	for i, rules := range stageRules {
		tables[i] = Table{Index: i, Rules: orderStage(order, rules)}
	}
	f.Log().Debugw("multitable: to_multi_table done", "tables", len(tables), "groups", len(groups.Groups))
	return Program{Tables: tables, Groups: groups}, nil
}

// assignStage groups members by their projected pattern at stage and,
// per group, either emits the group's terminal rule(s) (every member's
// path ends by this slab) or emits one shared GotoTable rule and
// recurses the whole group into stage+1 under a freshly minted
// metadata value.
func assignStage(layout Layout, members []pathRule, stage int, metadata MetadataID, groups *flowtable.GroupTable, stageRules [][]TableRule, nextMeta *MetadataID) error {
	if len(members) == 0 {
		return nil
	}

	type bucket struct {
		pattern flowtable.Pattern
		members []pathRule
	}
	buckets := map[string]*bucket{}
	var order []string
	for _, p := range members {
		proj := projectPattern(layout, p.pattern, stage)
		key := patternKey(proj)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{pattern: proj}
			buckets[key] = b
			order = append(order, key)
		}
		b.members = append(b.members, p)
	}
	sort.Strings(order)

	for _, key := range order {
		b := buckets[key]
		allTerminal := true
		for _, p := range b.members {
			if lastTouchedSlab(layout, p.pattern) > stage {
				allTerminal = false
				break
			}
		}
		if allTerminal {
			seen := map[string]bool{}
			for _, p := range b.members {
				ak := p.actions.String()
				if seen[ak] {
					continue
				}
				seen[ak] = true
				rule := TableRule{Pattern: b.pattern, Metadata: metadata, Actions: p.actions}
				if p.actions.Size() > 1 {
					rule.Group = groups.Add(p.actions)
				}
				stageRules[stage] = append(stageRules[stage], rule)
			}
			continue
		}

		hop := *nextMeta
		*nextMeta++
		stageRules[stage] = append(stageRules[stage], TableRule{
			Pattern:  b.pattern,
			Metadata: metadata,
			Goto:     &GotoTable{Table: stage + 1, Metadata: hop},
		})
		if err := assignStage(layout, b.members, stage+1, hop, groups, stageRules, nextMeta); err != nil {
			return err
		}
	}
	return nil
}

// collectPaths walks every root-to-leaf path of h, the same
// positive-constraints-only accumulation flowtable.collectRules uses.
func collectPaths(f *fdd.Forest, h fdd.Handle) ([]pathRule, error) {
	var out []pathRule
	var walk func(h fdd.Handle, pat flowtable.Pattern)
	walk = func(h fdd.Handle, pat flowtable.Pattern) {
		if f.IsLeaf(h) {
			out = append(out, pathRule{pattern: pat, actions: f.LeafValue(h)})
			return
		}
		test, tChild, fChild, _ := f.BranchTest(h)
		truePat := make(flowtable.Pattern, len(pat)+1)
		for k, v := range pat {
			truePat[k] = v
		}
		truePat[test.Field] = test.Value
		walk(tChild, truePat)
		walk(fChild, pat)
	}
	walk(h, flowtable.Pattern{})
	return out, nil
}

func dedupPaths(paths []pathRule) []pathRule {
	seen := make(map[string]bool, len(paths))
	out := make([]pathRule, 0, len(paths))
	for _, p := range paths {
		k := patternKey(p.pattern) + "=>" + p.actions.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// patternKey is a canonical string encoding of a Pattern, stable across
// calls, used for bucket/dedup keys.
func patternKey(p flowtable.Pattern) string {
	fields := make([]field.Field, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	key := ""
	for _, f := range fields {
		key += f.String() + "=" + p[f].String() + ","
	}
	return key
}

// validateFieldsCovered rejects a path that tests a field no slab
// covers.
func validateFieldsCovered(layout Layout, p flowtable.Pattern) error {
	for f := range p {
		if _, ok := layout.slabIndex(f); !ok {
			return ErrFieldOutOfLayout
		}
	}
	return nil
}

// validateActionSlab rejects a single Action whose assigned fields span
// more than one slab, or name a field no slab covers.
func validateActionSlab(layout Layout, a action.Action) error {
	slab := -1
	for _, f := range a.Fields() {
		i, ok := layout.slabIndex(f)
		if !ok {
			return ErrFieldOutOfLayout
		}
		if slab == -1 {
			slab = i
			continue
		}
		if slab != i {
			return ErrFieldOutOfLayout
		}
	}
	return nil
}

// lastTouchedSlab returns the highest slab index any field in p
// belongs to, or 0 if p constrains nothing (every path needs at least a
// stage-0 rule).
func lastTouchedSlab(layout Layout, p flowtable.Pattern) int {
	last := 0
	for f := range p {
		if i, ok := layout.slabIndex(f); ok && i > last {
			last = i
		}
	}
	return last
}

// projectPattern returns the subset of p's constraints that belong to
// slab index stage.
func projectPattern(layout Layout, p flowtable.Pattern, stage int) flowtable.Pattern {
	out := flowtable.Pattern{}
	for f, v := range p {
		if i, ok := layout.slabIndex(f); ok && i == stage {
			out[f] = v
		}
	}
	return out
}
