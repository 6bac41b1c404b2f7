// Package dijkstra implements Dijkstra's shortest-path algorithm on one
// component of a bicriteria graph.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Each vertex is extracted at most once: V extractions from the heap.
//   - Each edge relaxation may push a new entry into the heap: up to E pushes.
//   - Space: O(V + E)
//
// Notes on implementation choices:
//
//   - Weights are non-negative by construction (core rejects negative weights),
//     so there is no pre-scan.
//   - We treat any edge with length ≥ InfEdgeThreshold as an impassable “wall”.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
//   - Distances saturate at Unreachable instead of overflowing.
package dijkstra

import (
	"cmp"
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/cspath/core"
)

// Dijkstra computes shortest distances from source to all vertices of g under
// the selected metric.
//
// Returns:
//
//   - dist: map from vertex ID to minimum distance (Unreachable if unreachable).
//   - prev: optional predecessor map if ReturnPath=true (nil otherwise).
//     prev[v] == u means the shortest path to v goes through u.
//     The source and unreachable vertices have no entry.
//   - err:  ErrNilGraph or ErrVertexNotFound.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra[V cmp.Ordered](g *core.Graph[V], source V, opts ...Option) (map[V]int64, map[V]V, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	view := g.View()
	src, ok := view.Handle(source)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %v", ErrVertexNotFound, source)
	}

	tree := run(view, src, cfg)

	dist := make(map[V]int64, view.Len())
	for h, d := range tree.Dist {
		dist[view.ID(h)] = d
	}
	if !cfg.ReturnPath {
		return dist, nil, nil
	}

	prev := make(map[V]V, view.Len())
	for h, p := range tree.Prev {
		if p != NoPredecessor {
			prev[view.ID(h)] = view.ID(p)
		}
	}

	return dist, prev, nil
}

// FromHandle runs Dijkstra on a snapshot from a dense source handle and
// returns the dense Tree. The predecessor slice is always filled.
//
// This is the allocation-light entry point used by other algorithms that
// already work in handle space.
func FromHandle[V cmp.Ordered](view *core.View[V], source int, opts ...Option) (*Tree, error) {
	if view == nil {
		return nil, ErrNilGraph
	}
	if source < 0 || source >= view.Len() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrBadHandle, source, view.Len())
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return run(view, source, cfg), nil
}

func run[V cmp.Ordered](view *core.View[V], source int, cfg Options) *Tree {
	n := view.Len()
	r := &runner[V]{
		view:    view,
		options: cfg,
		tree: &Tree{
			Source: source,
			Metric: cfg.Metric,
			Dist:   make([]int64, n),
			Prev:   make([]int, n),
		},
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init(source)
	r.process()

	return r.tree
}

// runner holds the mutable state for a single Dijkstra execution.
type runner[V cmp.Ordered] struct {
	view    *core.View[V] // read-only snapshot
	options Options
	tree    *Tree
	visited []bool // finalized handles
	pq      nodePQ // min-heap of *nodeItem
}

// init sets up initial distances and pushes source=0 into the heap.
func (r *runner[V]) init(source int) {
	for h := range r.tree.Dist {
		r.tree.Dist[h] = Unreachable
		r.tree.Prev[h] = NoPredecessor
	}
	r.tree.Dist[source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: source, dist: 0})
}

// process is the core loop: extract the closest unvisited vertex and relax it.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
func (r *runner[V]) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Skip stale heap entries.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		r.relax(u)
	}
}

// relax examines each arc leaving u and attempts to improve distances to its neighbors.
func (r *runner[V]) relax(u int) {
	du := r.tree.Dist[u]
	for _, a := range r.view.Arcs(u) {
		w := r.options.Metric.Length(a.Weight)
		if w >= r.options.InfEdgeThreshold {
			continue
		}
		nd := addSat(du, w)
		if nd > r.options.MaxDistance {
			continue
		}
		if nd >= r.tree.Dist[a.To] {
			continue
		}
		r.tree.Dist[a.To] = nd
		r.tree.Prev[a.To] = u
		heap.Push(&r.pq, &nodeItem{id: a.To, dist: nd})
	}
}

// addSat adds two non-negative values, saturating at math.MaxInt64.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// nodeItem represents a vertex handle and its tentative distance from the source.
type nodeItem struct {
	id   int   // vertex handle
	dist int64 // distance from source
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending, ties by handle.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
