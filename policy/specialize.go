package policy

import "github.com/netkatgo/netkat/field"

// Specialize partially evaluates a (potentially multi-switch) Policy
// under the assumption Switch == switchID, the AST-level pass
// CompileGlobal runs per switch before handing the result to
// CompileLocal (spec.md section 4.4, "specialize"). Every Match on the
// Switch field folds to PTrue or PFalse, and the surrounding And/Or/Not/
// Filter/PUnion/PSeq/PStar structure is constant-folded so the result
// never tests the Switch field (a Mod assigning Switch is kept as is) —
// CompileLocal can then treat it as an ordinary single-switch policy.
func Specialize(switchID field.Value, p Policy) Policy {
	return foldPolicy(specializePolicyPred(switchID, p))
}

func specializePolicyPred(switchID field.Value, p Policy) Policy {
	switch v := p.(type) {
	case Filter:
		return Filter{P: specializePred(switchID, v.P)}
	case Mod:
		return v
	case PUnion:
		out := make([]Policy, len(v.Ps))
		for i, sub := range v.Ps {
			out[i] = specializePolicyPred(switchID, sub)
		}
		return PUnion{Ps: out}
	case PSeq:
		out := make([]Policy, len(v.Ps))
		for i, sub := range v.Ps {
			out[i] = specializePolicyPred(switchID, sub)
		}
		return PSeq{Ps: out}
	case PStar:
		return PStar{P: specializePolicyPred(switchID, v.P)}
	case Link:
		return v
	default:
		return v
	}
}

func specializePred(switchID field.Value, p Pred) Pred {
	switch v := p.(type) {
	case Match:
		if v.Field == field.Switch {
			if v.Value.Equal(switchID) {
				return PTrue{}
			}
			return PFalse{}
		}
		return v
	case Not:
		return Not{P: specializePred(switchID, v.P)}
	case And:
		out := make([]Pred, len(v.Ps))
		for i, sub := range v.Ps {
			out[i] = specializePred(switchID, sub)
		}
		return And{Ps: out}
	case Or:
		out := make([]Pred, len(v.Ps))
		for i, sub := range v.Ps {
			out[i] = specializePred(switchID, sub)
		}
		return Or{Ps: out}
	default:
		return v
	}
}

// foldPolicy constant-folds PTrue/PFalse produced by specialization out
// of the surrounding structure: And/Or absorb/short-circuit, Not
// inverts, Filter{PFalse} collapses a whole Union/Seq branch.
func foldPolicy(p Policy) Policy {
	switch v := p.(type) {
	case Filter:
		return Filter{P: foldPred(v.P)}
	case PUnion:
		out := make([]Policy, 0, len(v.Ps))
		for _, sub := range v.Ps {
			out = append(out, foldPolicy(sub))
		}
		return PUnion{Ps: out}
	case PSeq:
		out := make([]Policy, 0, len(v.Ps))
		for _, sub := range v.Ps {
			folded := foldPolicy(sub)
			if f, ok := folded.(Filter); ok {
				if _, isFalse := foldPred(f.P).(PFalse); isFalse {
					return Filter{P: PFalse{}}
				}
			}
			out = append(out, folded)
		}
		return PSeq{Ps: out}
	case PStar:
		return PStar{P: foldPolicy(v.P)}
	default:
		return v
	}
}

func foldPred(p Pred) Pred {
	switch v := p.(type) {
	case Not:
		inner := foldPred(v.P)
		switch inner.(type) {
		case PTrue:
			return PFalse{}
		case PFalse:
			return PTrue{}
		default:
			return Not{P: inner}
		}
	case And:
		out := make([]Pred, 0, len(v.Ps))
		for _, sub := range v.Ps {
			folded := foldPred(sub)
			if _, isFalse := folded.(PFalse); isFalse {
				return PFalse{}
			}
			if _, isTrue := folded.(PTrue); isTrue {
				continue
			}
			out = append(out, folded)
		}
		if len(out) == 0 {
			return PTrue{}
		}
		return And{Ps: out}
	case Or:
		out := make([]Pred, 0, len(v.Ps))
		for _, sub := range v.Ps {
			folded := foldPred(sub)
			if _, isTrue := folded.(PTrue); isTrue {
				return PTrue{}
			}
			if _, isFalse := folded.(PFalse); isFalse {
				continue
			}
			out = append(out, folded)
		}
		if len(out) == 0 {
			return PFalse{}
		}
		return Or{Ps: out}
	default:
		return v
	}
}
