// File: api.go
// Role: Construction helpers and debugging output on top of the core types.
// Policy:
//   - No algorithms or hidden state here.

package core

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
)

// FromEdges builds a Graph from an edge list, applying opts to the new graph.
//
// Edges are inserted in slice order, so a repeated pair keeps the last weight.
// The first invalid edge aborts construction; its error is wrapped with its index.
//
// Complexity:
//   - Time O(E) amortized, Space O(V + E).
func FromEdges[V cmp.Ordered](edges []Edge[V], opts ...GraphOption) (*Graph[V], error) {
	g := NewGraph[V](opts...)
	for i, e := range edges {
		if err := g.AddEdge(e.From, e.To, e.Weight.Cost, e.Weight.Time); err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
	}

	return g, nil
}

// Dump writes a human-readable description of the graph: counts, the sorted
// vertex list and an adjacency matrix where each cell is "F" (no edge) or
// "(T,cost,time)".
//
// Intended for debugging small graphs only.
//
// Complexity:
//   - Time O(V²), Space O(V).
func (g *Graph[V]) Dump(w io.Writer) error {
	vertices := g.Vertices()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "***************************************************")
	fmt.Fprintln(bw, "********************* GRAPH ***********************")
	fmt.Fprintf(bw, "**Num vertices: %d\n", len(vertices))
	fmt.Fprintf(bw, "**Num edges: %d\n", g.EdgeCount())
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "**Vertices:")
	for i, v := range vertices {
		fmt.Fprintf(bw, " %d. %v\n", i, v)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "**Edges:")
	for i, u := range vertices {
		fmt.Fprintf(bw, " row %d: ", i)
		for _, v := range vertices {
			if wt, ok := g.WeightOf(u, v); ok {
				fmt.Fprintf(bw, "(T,%d,%d) ", wt.Cost, wt.Time)
			} else {
				fmt.Fprint(bw, "F ")
			}
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "**************************************************")

	return bw.Flush()
}
