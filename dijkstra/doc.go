// Package dijkstra provides single-criterion Dijkstra shortest paths over
// the bicriteria graphs of package core.
//
// Overview:
//
//   - Each edge carries a (cost, time) pair; WithMetric selects which component
//     is the edge length for a run (Cost by default).
//   - Dijkstra computes minimum distances from one source to every vertex in
//     O((V + E) log V) using a lazy-decrease-key binary heap.
//   - Because core graphs are undirected, distances from a destination are also
//     distances to it. Package csp relies on this to derive admissible lower
//     bounds (remaining cost, remaining time) for its bicriteria search.
//
// API reference:
//
//	func Dijkstra[V](g *core.Graph[V], source V, opts ...Option) (dist map[V]int64, prev map[V]V, err error)
//	func FromHandle[V](view *core.View[V], source int, opts ...Option) (*Tree, error)
//
//	  - dist: dist[v] = minimal distance, or Unreachable.
//	  - prev: prev[v] = predecessor on one shortest path (nil unless WithReturnPath()).
//	  - Tree: dense Dist/Prev slices indexed by view handle, plus PathTo(h).
//
// Thread safety:
//
//   - Both entry points read an immutable core.View, so concurrent runs over the
//     same graph need no external synchronization.
package dijkstra
