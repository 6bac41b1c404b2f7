// File: view.go
// Role: Immutable, compacted graph snapshots for read-heavy algorithms.
// Determinism:
//   - Handles are the Graph's insertion-order handles.
//   - Arcs(h) are sorted by neighbor ID ascending.
// Concurrency:
//   - A View never changes after construction; any number of goroutines may read it.

package core

import (
	"cmp"
	"maps"
	"slices"
)

// View is a read-only CSR snapshot of a Graph.
//
// Arcs of handle h live in arcs[offsets[h]:offsets[h+1]].
type View[V cmp.Ordered] struct {
	index   map[V]int
	ids     []V
	offsets []int
	arcs    []Arc
	edges   int
}

// View returns an immutable snapshot of the graph.
//
// Implementation:
//   - Stage 1: Under the read lock, return the cached snapshot if no mutation happened since it was built.
//   - Stage 2: Otherwise take the write lock and build (or reuse one built by a racing caller).
//
// Complexity:
//   - Time O(V + E·log d) on a cache miss, O(1) on a hit. Space O(V + E).
func (g *Graph[V]) View() *View[V] {
	g.mu.RLock()
	if v := g.view; v != nil {
		g.mu.RUnlock()
		return v
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.view == nil {
		g.view = g.buildView()
	}

	return g.view
}

// buildView compacts the adjacency arena. Caller must hold the write lock.
func (g *Graph[V]) buildView() *View[V] {
	n := len(g.ids)
	v := &View[V]{
		index:   maps.Clone(g.index),
		ids:     slices.Clone(g.ids),
		offsets: make([]int, n+1),
		edges:   g.edges,
	}

	total := 0
	for h := 0; h < n; h++ {
		v.offsets[h] = total
		total += len(g.arcs[h])
	}
	v.offsets[n] = total

	v.arcs = make([]Arc, 0, total)
	for h := 0; h < n; h++ {
		start := len(v.arcs)
		v.arcs = append(v.arcs, g.arcs[h]...)
		seg := v.arcs[start:]
		slices.SortFunc(seg, func(a, b Arc) int { return cmp.Compare(v.ids[a.To], v.ids[b.To]) })
	}

	return v
}

// Len returns the number of vertices (valid handles are 0..Len()-1).
func (v *View[V]) Len() int { return len(v.ids) }

// EdgeCount returns the number of undirected edges in the snapshot.
func (v *View[V]) EdgeCount() int { return v.edges }

// Handle returns the dense handle of id.
func (v *View[V]) Handle(id V) (int, bool) {
	h, ok := v.index[id]

	return h, ok
}

// ID returns the vertex identifier of handle h. Panics if h is out of range.
func (v *View[V]) ID(h int) V { return v.ids[h] }

// Arcs returns the arcs leaving h, sorted by neighbor ID.
// The returned slice aliases the snapshot and must not be modified.
func (v *View[V]) Arcs(h int) []Arc { return v.arcs[v.offsets[h]:v.offsets[h+1]:v.offsets[h+1]] }

// IDs maps a sequence of handles to vertex identifiers.
func (v *View[V]) IDs(handles []int) []V {
	out := make([]V, len(handles))
	for i, h := range handles {
		out[i] = v.ids[h]
	}

	return out
}
