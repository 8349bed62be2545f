package policy

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
)

// CompileGlobal lowers a multi-switch network — one local Policy per
// switch plus the Link edges wiring them together — into a single FDD
// over the whole network (spec.md section 4.4, "compile_global"). Every
// Policy in perSwitch must be local (no Link node); the network's
// topology is instead given explicitly via links, each compiled to an
// unconditional hop: "packets at (Switch1, Port1) are moved, unmodified,
// to (Switch2, Port2)."
//
// The result follows the standard global-compilation shape for a
// forwarding network: (local ; topology)* ; local — any number of
// (process-locally, then hop across one link) rounds, ending with one
// final local pass that produces the packet's eventual output location.
// Every packet both starts and ends inside a switch's local policy, so
// the trailing local term is never optional even for a single-switch
// network with no links (where topology is Drop and the star term
// degenerates to Id).
func CompileGlobal(f *fdd.Forest, perSwitch map[field.Value]Policy, links []Link) (fdd.Handle, error) {
	f.Log().Debugw("policy: compile_global start", "switches", len(perSwitch), "links", len(links))
	local, err := compileLocalUnion(f, perSwitch)
	if err != nil {
		f.Log().Debugw("policy: compile_global failed", "error", err)
		return 0, err
	}
	topo := compileTopology(f, links)

	hop := f.Seq(local, topo)
	star, err := f.Star(hop)
	if err != nil {
		f.Log().Debugw("policy: compile_global failed", "error", err)
		return 0, err
	}
	result := f.Seq(star, local)
	f.Log().Debugw("policy: compile_global done", "nodes", f.Size(result))
	return result, nil
}

func compileLocalUnion(f *fdd.Forest, perSwitch map[field.Value]Policy) (fdd.Handle, error) {
	acc := f.Drop()
	for switchID, pol := range perSwitch {
		specialized := Specialize(switchID, pol)
		compiled, err := compileLocal(f, specialized)
		if err != nil {
			return 0, err
		}
		guard := matchFDD(f, field.Switch, switchID)
		guarded := f.Seq(guard, compiled)
		acc = f.Union(acc, guarded)
	}
	return acc, nil
}

func compileTopology(f *fdd.Forest, links []Link) fdd.Handle {
	acc := f.Drop()
	for _, l := range links {
		src := f.Seq(matchFDD(f, field.Switch, l.Switch1), matchFDD(f, field.Location, l.Port1))
		dst := f.Leaf(action.Of(action.New(
			field.Modification{Field: field.Switch, Value: l.Switch2},
			field.Modification{Field: field.Location, Value: l.Port2},
		)))
		acc = f.Union(acc, f.Seq(src, dst))
	}
	return acc
}

func matchFDD(f *fdd.Forest, fld field.Field, v field.Value) fdd.Handle {
	h, err := f.Branch(field.Test{Field: fld, Value: v}, f.Id(), f.Drop())
	if err != nil {
		// f.Id()'s and f.Drop()'s fields are never less than fld, so this
		// can only happen if fld itself is somehow invalid.
		panic(err)
	}
	return h
}
