package policy

import (
	"fmt"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
)

// CompilePred lowers a Pred to a predicate-only FDD (every leaf is id or
// drop) — spec.md's "of_policy" restricted to the predicate sub-grammar.
func CompilePred(f *fdd.Forest, p Pred) (fdd.Handle, error) {
	switch v := p.(type) {
	case PTrue:
		return f.Id(), nil
	case PFalse:
		return f.Drop(), nil
	case Match:
		return f.Branch(field.Test{Field: v.Field, Value: v.Value}, f.Id(), f.Drop())
	case Not:
		inner, err := CompilePred(f, v.P)
		if err != nil {
			return 0, err
		}
		return f.Negate(inner)
	case And:
		acc := f.Id()
		for _, sub := range v.Ps {
			h, err := CompilePred(f, sub)
			if err != nil {
				return 0, err
			}
			acc = f.Seq(acc, h)
		}
		return acc, nil
	case Or:
		subs := make([]fdd.Handle, 0, len(v.Ps))
		for _, sub := range v.Ps {
			h, err := CompilePred(f, sub)
			if err != nil {
				return 0, err
			}
			subs = append(subs, h)
		}
		return f.Union(subs...), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownPred, p)
	}
}

// CompileLocal lowers a single-switch Policy to an FDD (spec.md section
// 4.4, "of_policy"/"compile_local"). It returns ErrNonLocal if p contains
// a Link node anywhere in its tree.
func CompileLocal(f *fdd.Forest, p Policy) (fdd.Handle, error) {
	h, err := compileLocal(f, p)
	if err != nil {
		f.Log().Debugw("policy: compile_local failed", "error", err)
		return h, err
	}
	f.Log().Debugw("policy: compile_local done", "nodes", f.Size(h))
	return h, nil
}

func compileLocal(f *fdd.Forest, p Policy) (fdd.Handle, error) {
	switch v := p.(type) {
	case Filter:
		return CompilePred(f, v.P)
	case Mod:
		return f.Leaf(action.Of(action.New(field.Modification{Field: v.Field, Value: v.Value}))), nil
	case PUnion:
		subs := make([]fdd.Handle, 0, len(v.Ps))
		for _, sub := range v.Ps {
			h, err := compileLocal(f, sub)
			if err != nil {
				return 0, err
			}
			subs = append(subs, h)
		}
		return f.Union(subs...), nil
	case PSeq:
		acc := f.Id()
		for _, sub := range v.Ps {
			h, err := compileLocal(f, sub)
			if err != nil {
				return 0, err
			}
			acc = f.Seq(acc, h)
		}
		return acc, nil
	case PStar:
		inner, err := compileLocal(f, v.P)
		if err != nil {
			return 0, err
		}
		return f.Star(inner)
	case Link:
		return 0, ErrNonLocal
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownPolicy, p)
	}
}
