package fdd

// starMaxIterations bounds the Kleene fixed-point loop in Star. The
// sequence id, id∪x, id∪x∪x;x, ... is monotone in a finite lattice (the
// diagrams reachable from a fixed node table), so it always converges;
// this bound exists only to turn a hypothetical non-termination bug into
// an error instead of a hang.
const starMaxIterations = 10000

// Star computes the Kleene closure of h: "do h zero or more times"
// (spec.md section 4.3, "Star"). It iterates P_{i+1} = id ∪ (P_i ; h)
// starting from P_0 = id until a fixed point is reached (handle
// equality), which the finiteness of the node table guarantees happens.
func (f *Forest) Star(h Handle) (Handle, error) {
	p := f.Id()
	for i := 0; i < starMaxIterations; i++ {
		next := f.Union(f.Id(), f.Seq(p, h))
		if next == p {
			f.log.Debugw("fdd: star converged", "iterations", i+1)
			return p, nil
		}
		p = next
	}
	return invalidHandle, ErrStarDidNotConverge
}
