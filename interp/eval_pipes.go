package interp

import (
	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
)

// Outputs partitions an Eval result by each output packet's Location tag
// (spec.md section 4.7, "eval_pipes ... partitions the output by
// action's location tag into pipe outputs, query outputs, physical
// outputs"). A packet whose Location was never assigned, or was assigned
// a concrete switch port, lands in Physical.
type Outputs struct {
	Pipes    map[string][]Packet
	Queries  map[string][]Packet
	Physical []Packet
}

// EvalPipes runs Eval and buckets the resulting packets by their
// Location value's LocationTag.
func EvalPipes(f *fdd.Forest, h fdd.Handle, pkt Packet, opts ...Option) (Outputs, error) {
	pkts, err := Eval(f, h, pkt, opts...)
	if err != nil {
		return Outputs{}, err
	}
	out := Outputs{Pipes: map[string][]Packet{}, Queries: map[string][]Packet{}}
	for _, p := range pkts {
		v, ok := p.Get(field.Location)
		if !ok || v.Kind() != field.LocationKind {
			out.Physical = append(out.Physical, p)
			continue
		}
		switch v.Location() {
		case field.Pipe:
			out.Pipes[v.Name()] = append(out.Pipes[v.Name()], p)
		case field.Query:
			out.Queries[v.Name()] = append(out.Queries[v.Name()], p)
		default:
			out.Physical = append(out.Physical, p)
		}
	}
	return out, nil
}
