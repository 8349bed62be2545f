// Package interp interprets a compiled FDD directly against concrete
// packets, for testing and debugging (spec.md section 4.7): Eval walks
// the diagram one branch at a time, following the edge that matches the
// packet's current field value, and applies every action at the reached
// leaf to produce the output packet set.
//
// The walk is structured as a single-path traversal with OnVisit-style
// hooks, in the manner of the teacher's bfs/dfs packages (visitor hooks
// over a node-based structure), adapted from a multi-child graph
// traversal to the FDD's deterministic single-child-per-step walk: at
// every node there is exactly one next step (the matching child), not a
// neighbor set to enqueue.
//
// EvalPipes, Pipes, and Queries answer the collateral questions a
// network operator asks of a compiled policy: which software sinks
// (pipes) and counters (queries) can a packet reach, and under what
// condition.
package interp
