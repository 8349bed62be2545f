package policy

import "errors"

// ErrNonLocal is returned by CompileLocal when the policy AST contains a
// Link node: Link only has meaning in a multi-switch topology and is
// handled exclusively by CompileGlobal (spec.md section 4.4).
var ErrNonLocal = errors.New("policy: Link node is not valid in a single-switch (local) policy")

// ErrUnknownPred/ErrUnknownPolicy guard against a Pred/Policy
// implementation from outside this package reaching the compiler — the
// AST is a closed set by design (spec.md's fixed predicate/policy
// grammar), so these indicate a bug rather than a legitimate extension
// point.
var (
	ErrUnknownPred   = errors.New("policy: unrecognized Pred implementation")
	ErrUnknownPolicy = errors.New("policy: unrecognized Policy implementation")
)
