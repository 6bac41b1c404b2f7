// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/WeightOf/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges sorted by (From, To) with From <= To.
// Concurrency:
//   - Mutations under mu write lock.
//   - Read queries under mu read lock.

package core

import (
	"cmp"
	"fmt"
	"slices"
)

// AddEdge inserts or overwrites the undirected edge u—v with weight (cost, time).
//
// Steps:
//  1. Validate weight (ErrInvalidWeight) and loops (ErrLoopNotAllowed).
//  2. Ensure both endpoints exist, assigning dense handles as needed.
//  3. Write the weight pair into arcs[u] and arcs[v] (mirror).
//     An existing arc is overwritten in place; the edge count is unchanged.
//
// Nothing is modified when an error is returned.
//
// Complexity: O(1) amortized.
func (g *Graph[V]) AddEdge(u, v V, cost, time int64) error {
	w := Weight{Cost: cost, Time: time}
	if !w.Valid() {
		return fmt.Errorf("%w: edge %v—%v weight=%s", ErrInvalidWeight, u, v, w)
	}
	if u == v && !g.allowLoops {
		return fmt.Errorf("%w: vertex %v", ErrLoopNotAllowed, u)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	hu, _ := g.ensureVertex(u)
	hv, _ := g.ensureVertex(v)

	if g.putArc(hu, hv, w) {
		g.edges++
	}
	if hu != hv {
		g.putArc(hv, hu, w)
	}
	g.view = nil

	return nil
}

// putArc writes the arc from→to and reports whether it was newly created.
// Caller must hold the write lock.
func (g *Graph[V]) putArc(from, to int, w Weight) bool {
	if pos, ok := g.slot[from][to]; ok {
		g.arcs[from][pos].Weight = w
		return false
	}
	if g.slot[from] == nil {
		g.slot[from] = make(map[int]int)
	}
	g.slot[from][to] = len(g.arcs[from])
	g.arcs[from] = append(g.arcs[from], Arc{To: to, Weight: w})

	return true
}

// HasEdge reports whether an edge u—v exists. Symmetric by construction.
// Complexity: O(1).
func (g *Graph[V]) HasEdge(u, v V) bool {
	_, ok := g.WeightOf(u, v)

	return ok
}

// WeightOf returns the weight pair stored on u—v, or false if there is no such edge
// (including when either endpoint is absent).
// Complexity: O(1).
func (g *Graph[V]) WeightOf(u, v V) (Weight, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	hu, ok := g.index[u]
	if !ok {
		return Weight{}, false
	}
	hv, ok := g.index[v]
	if !ok {
		return Weight{}, false
	}
	pos, ok := g.slot[hu][hv]
	if !ok {
		return Weight{}, false
	}

	return g.arcs[hu][pos].Weight, true
}

// EdgeCount returns the number of undirected edges (each counted once).
// Complexity: O(1).
func (g *Graph[V]) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// Edges returns every edge once, with From <= To, sorted by (From, To).
// Complexity: O(E log E) time, O(E) space.
func (g *Graph[V]) Edges() []Edge[V] {
	g.mu.RLock()
	out := make([]Edge[V], 0, g.edges)
	for h, arcs := range g.arcs {
		from := g.ids[h]
		for _, a := range arcs {
			to := g.ids[a.To]
			if cmp.Less(to, from) {
				continue // reported from the other endpoint
			}
			out = append(out, Edge[V]{From: from, To: to, Weight: a.Weight})
		}
	}
	g.mu.RUnlock()

	slices.SortFunc(out, func(a, b Edge[V]) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})

	return out
}
