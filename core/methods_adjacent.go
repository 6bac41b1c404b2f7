// File: methods_adjacent.go
// Role: Neighborhood queries.
// Determinism:
//   - Neighbors() returns unique IDs sorted ascending.

package core

import "slices"

// Neighbors returns the IDs adjacent to id, sorted ascending.
//
// Behavior highlights:
//   - An absent or isolated vertex yields an empty, non-nil slice.
//   - A self-loop (WithLoops) lists id itself once.
//
// Complexity:
//   - Time O(d log d), Space O(d), where d is the degree of id.
func (g *Graph[V]) Neighbors(id V) []V {
	g.mu.RLock()
	h, ok := g.index[id]
	if !ok {
		g.mu.RUnlock()
		return []V{}
	}
	out := make([]V, 0, len(g.arcs[h]))
	for _, a := range g.arcs[h] {
		out = append(out, g.ids[a.To])
	}
	g.mu.RUnlock()

	slices.Sort(out)

	return out
}
