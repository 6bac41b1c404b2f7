// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted ascending.
//
// Concurrency:
//   - Mutations under mu write lock, queries under mu read lock.
package core

import "slices"

// AddVertex inserts a vertex if missing.
//
// Implementation:
//   - Stage 1: Under the write lock, check presence.
//   - Stage 2: If missing, assign the next dense handle and allocate empty adjacency.
//
// Returns:
//   - bool: true if the vertex was inserted, false if it was already present.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph[V]) AddVertex(id V) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, added := g.ensureVertex(id)

	return added
}

// ensureVertex returns the handle of id, registering it if absent.
// Caller must hold the write lock.
func (g *Graph[V]) ensureVertex(id V) (int, bool) {
	if h, ok := g.index[id]; ok {
		return h, false
	}
	h := len(g.ids)
	g.index[id] = h
	g.ids = append(g.ids, id)
	g.arcs = append(g.arcs, nil)
	g.slot = append(g.slot, nil)
	g.view = nil

	return h, true
}

// HasVertex reports whether the vertex ID exists.
// Complexity: O(1).
func (g *Graph[V]) HasVertex(id V) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.index[id]

	return ok
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V) time, O(V) space.
func (g *Graph[V]) Vertices() []V {
	g.mu.RLock()
	out := slices.Clone(g.ids)
	g.mu.RUnlock()

	slices.Sort(out)

	return out
}

// VertexCount returns the number of registered vertices.
// Complexity: O(1).
func (g *Graph[V]) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.ids)
}

// Degree returns the number of distinct neighbors of id.
// A self-loop counts once. Returns ErrVertexNotFound if id is absent.
// Complexity: O(1).
func (g *Graph[V]) Degree(id V) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	h, ok := g.index[id]
	if !ok {
		return 0, ErrVertexNotFound
	}

	return len(g.arcs[h]), nil
}
