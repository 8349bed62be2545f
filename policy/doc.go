// Package policy defines the NetKAT-style predicate/policy AST and
// compiles it to fdd.Handle diagrams: Pred values (True, False, Match,
// Not, And, Or) and Policy values (Filter, Mod, Union, Seq, Star, Link).
//
// CompileLocal turns a single-switch policy (one with no Link node) into
// an FDD. CompileGlobal turns a topology — a map of per-switch local
// policies plus the Link edges connecting them — into one FDD over the
// whole network, the way a real NetKAT global compiler lowers packet
// forwarding across multiple hops into a single decision diagram
// (spec.md section 4.4, "compile_global").
package policy
