// Package source defines the common output of the graph loaders: a Dataset of
// int64 vertex ids and bicriteria edges, ready to become a core.Graph.
//
// Loaders live in sub-packages:
//
//   - edgelist: the plain-text "n, then u v cost time" format.
//   - osmroads: OpenStreetMap road networks (.osm.pbf or .osm XML).
//   - neograph: a Neo4j database queried with Cypher.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cspath/core"
)

// ErrEmptyDataset indicates a loader that produced no vertices at all.
var ErrEmptyDataset = errors.New("source: dataset has no vertices")

// Loader produces a Dataset. Implementations honor ctx cancellation.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Dataset is a loaded graph before insertion into a core.Graph.
//
// Vertices lists ids that must exist even without edges (isolated vertices).
// Edge endpoints are registered implicitly and need not appear in Vertices.
type Dataset struct {
	Vertices []int64
	Edges    []core.Edge[int64]
}

// AddEdge appends an edge u—v with the given weight.
func (d *Dataset) AddEdge(u, v, cost, time int64) {
	d.Edges = append(d.Edges, core.Edge[int64]{From: u, To: v, Weight: core.Weight{Cost: cost, Time: time}})
}

// Graph builds a core.Graph with self-loops allowed, followed by opts.
// Vertices are registered first, then edges in order, so a repeated pair
// keeps its last weight.
//
// Complexity: O(V + E) amortized.
func (d *Dataset) Graph(opts ...core.GraphOption) (*core.Graph[int64], error) {
	if len(d.Vertices) == 0 && len(d.Edges) == 0 {
		return nil, ErrEmptyDataset
	}

	gopts := append([]core.GraphOption{core.WithLoops(), core.WithCapacity(len(d.Vertices))}, opts...)
	g := core.NewGraph[int64](gopts...)
	for _, v := range d.Vertices {
		g.AddVertex(v)
	}
	for i, e := range d.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight.Cost, e.Weight.Time); err != nil {
			return nil, fmt.Errorf("source: edge #%d: %w", i, err)
		}
	}

	return g, nil
}

// Build runs l and converts its Dataset into a graph.
func Build(ctx context.Context, l Loader, opts ...core.GraphOption) (*core.Graph[int64], error) {
	d, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	return d.Graph(opts...)
}
