// Package core provides the undirected bicriteria Graph store used by the
// constrained search engine.
//
// Every edge carries a Weight pair (Cost, Time). Both components must be
// non-negative; AddEdge rejects anything else with ErrInvalidWeight, because
// the label-setting search in package csp relies on non-negative weights for
// its finalization argument.
//
// Model:
//
//   - Vertices are keyed by any ordered, comparable identifier (cmp.Ordered).
//     A vertex is created implicitly the first time it appears as an edge endpoint.
//   - Edges are undirected: AddEdge(u, v, c, t) makes v reachable from u and u
//     from v with the same weight pair.
//   - There is no multigraph support: re-adding an edge between the same pair
//     overwrites the stored weight pair (last write wins).
//   - Self-loops are rejected (ErrLoopNotAllowed) unless WithLoops() is given.
//
// Storage:
//
// Internally the graph maps each identifier to a dense integer handle and keeps
// per-handle arc slices, so the adjacency relation is an arena of slices rather
// than a pointer graph:
//
//	index[id] = h          // dense handle, assigned in insertion order
//	ids[h]    = id
//	arcs[h]   = []Arc{...} // one Arc per neighbor
//	slot[h]   = map[neighborHandle]position-in-arcs[h]
//
// Views:
//
// View() returns an immutable, compacted snapshot (CSR layout, arcs sorted by
// neighbor identifier). The snapshot is cached until the next mutation, so
// many searches may share one View concurrently without any locking.
//
// Core Methods:
//
//	AddVertex(id V) bool                       // O(1) amortized; false if already present
//	AddEdge(u, v V, cost, time int64) error    // O(1) amortized; symmetric write
//	HasVertex(id V) bool                       // O(1)
//	HasEdge(u, v V) bool                       // O(1)
//	WeightOf(u, v V) (Weight, bool)            // O(1)
//	Neighbors(id V) []V                        // O(d·log d), sorted ascending
//	Degree(id V) int                           // O(1)
//	Vertices() []V                             // O(V·log V), sorted ascending
//	Edges() []Edge[V]                          // O(E·log E), canonical From <= To
//	VertexCount() int / EdgeCount() int        // O(1)
//	Dump(w io.Writer) error                    // O(V²) debug matrix
//	View() *View[V]                            // O(V+E) on first call after a mutation
//
// Errors:
//
//	ErrInvalidWeight   – negative cost or time
//	ErrLoopNotAllowed  – self-loop while loops are disabled
//	ErrVertexNotFound  – lookup of an absent vertex where one is required
//
// Concurrency:
//
// Graph methods are safe for concurrent use; a single sync.RWMutex guards the
// store. Views are read-only after construction.
package core
