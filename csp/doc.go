// Package csp finds constrained shortest paths on undirected graphs whose
// edges carry a (cost, time) pair: the path's total cost must not exceed a
// budget, and among feasible paths one is chosen by an Objective.
//
// Overview:
//
//   - The engine is a bicriteria label-setting search. A label is a (cost,
//     time) Signature at a vertex; the frontier is a binary heap ordered
//     lexicographically by (cost, time), ties resolved in push order.
//   - Every vertex keeps a non-dominated set of finalized signatures. A popped
//     label that is dominated by, or equal to, a member of its vertex's set is
//     discarded as stale; otherwise it is finalized and relaxed.
//   - Labels over budget are never pushed. With lower bounds enabled (the
//     default), a reverse Dijkstra from the destination over the cost metric
//     prunes labels whose cost plus remaining cost would exceed the budget.
//   - Predecessors are recorded per label in an arena, so the reported path
//     always realizes the reported signature even when a vertex holds several
//     non-dominated labels.
//
// Objectives:
//
//   - CostFirst (default): minimum cost within budget, ties by minimum time.
//     The search stops at the first finalization of the destination.
//   - TimeFirst: minimum time within budget, ties by minimum cost. The search
//     continues past the first arrival, pruning with the best time so far
//     plus a reverse-Dijkstra time bound.
//   - ParetoFrontier: every non-dominated feasible signature at the
//     destination, each with one realizing path.
//
// API reference:
//
//	func FindConstrainedPath[V](g *core.Graph[V], source, destination V, budget int64, opts ...Option) (Result[V], error)
//	func FindConstrainedPathContext[V](ctx, g, source, destination, budget, opts...) (Result[V], error)
//	func ParetoFrontier[V](ctx, g, source, destination, budget, opts...) (Frontier[V], error)
//
// Errors:
//
//   - ErrNilGraph, ErrNegativeBudget and ErrVertexNotFound for invalid input.
//   - ErrLabelLimit when WithMaxLabels is exceeded.
//   - A wrapped ctx.Err() on cancellation.
//
// An unreachable or over-budget destination is not an error: the Result has
// Outcome == Infeasible.
//
// Thread safety:
//
//   - Searches read an immutable core.View and keep all mutable state local,
//     so any number may run concurrently over one graph.
package csp
