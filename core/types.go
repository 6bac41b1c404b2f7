// Package core defines the Graph, Weight, Edge and Arc types, the sentinel
// errors and the NewGraph constructor.
//
// Errors:
//
//	ErrInvalidWeight   - a cost or time component is negative.
//	ErrLoopNotAllowed  - self-loop when loops are disabled.
//	ErrVertexNotFound  - requested vertex does not exist.
package core

import (
	"cmp"
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrInvalidWeight indicates a negative cost or time component on AddEdge.
	ErrInvalidWeight = errors.New("core: edge weight must be non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")
)

// Weight is the (cost, time) pair stored on every edge.
type Weight struct {
	// Cost is the budgeted dimension.
	Cost int64

	// Time is the dimension minimized among budget-feasible paths.
	Time int64
}

// Valid reports whether both components are non-negative.
func (w Weight) Valid() bool { return w.Cost >= 0 && w.Time >= 0 }

// String renders the pair as "(cost,time)".
func (w Weight) String() string { return fmt.Sprintf("(%d,%d)", w.Cost, w.Time) }

// Edge is an undirected edge as reported by Edges() or consumed by FromEdges.
// Edges() always reports From <= To.
type Edge[V cmp.Ordered] struct {
	From   V
	To     V
	Weight Weight
}

// Arc is one direction of an undirected edge, addressed by dense handle.
type Arc struct {
	// To is the dense handle of the neighbor.
	To int

	// Weight is the edge weight pair.
	Weight Weight
}

// GraphOption configures a Graph before creation.
type GraphOption func(c *graphConfig)

type graphConfig struct {
	allowLoops bool
	capacity   int
}

// WithLoops permits self-loops (edges from a vertex to itself).
// A self-loop can never shorten a path under non-negative weights, so the
// search simply ignores it, but some inputs contain them.
func WithLoops() GraphOption {
	return func(c *graphConfig) { c.allowLoops = true }
}

// WithCapacity presizes the vertex registry for n vertices.
// Non-positive values are ignored.
func WithCapacity(n int) GraphOption {
	return func(c *graphConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Graph is the in-memory undirected bicriteria graph.
//
// mu guards every field below it. view caches the last immutable snapshot and
// is reset by every successful mutation.
type Graph[V cmp.Ordered] struct {
	mu sync.RWMutex

	allowLoops bool

	index map[V]int     // vertex ID → dense handle
	ids   []V           // dense handle → vertex ID
	arcs  [][]Arc       // dense handle → incident arcs (insertion order)
	slot  []map[int]int // dense handle → neighbor handle → position in arcs[h]
	edges int           // undirected edge count (self-loops count once)

	view *View[V]
}

// NewGraph creates an empty Graph configured by opts.
// By default, self-loops are rejected.
// Complexity: O(capacity)
func NewGraph[V cmp.Ordered](opts ...GraphOption) *Graph[V] {
	var cfg graphConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph[V]{
		allowLoops: cfg.allowLoops,
		index:      make(map[V]int, cfg.capacity),
		ids:        make([]V, 0, cfg.capacity),
		arcs:       make([][]Arc, 0, cfg.capacity),
		slot:       make([]map[int]int, 0, cfg.capacity),
	}
}
