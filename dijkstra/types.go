// Package dijkstra defines core types and configuration options
// for single-criterion Dijkstra searches over bicriteria graphs.
//
// Every core edge carries a (cost, time) pair; a Metric selects which of the
// two components acts as the edge length for one run.
//
// Options:
//
//	– WithMetric:          Cost (default) or Time.
//	– WithReturnPath:      if set, return the predecessor map for path reconstruction.
//	– WithMaxDistance:     optional cap on distances to explore; vertices beyond this are skipped.
//	– WithInfEdgeThreshold: edges whose selected component is >= this threshold are impassable.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph pointer is nil.
//	– ErrVertexNotFound  if the source vertex does not exist in the graph.
//	– ErrBadHandle       if a dense source handle is out of range.
//	– ErrBadMaxDistance  if MaxDistance < 0.
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0.
//
// Example usage:
//
//	dist, prev, err := dijkstra.Dijkstra(g, "A", dijkstra.WithReturnPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Cost to B: %d, parent: %s\n", dist["B"], prev["B"])
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/cspath/core"
)

// Unreachable is the distance reported for vertices that cannot be reached.
const Unreachable int64 = math.MaxInt64

// NoPredecessor marks the source and unreachable vertices in Tree.Prev.
const NoPredecessor = -1

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil graph or view was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the specified source vertex does not exist
	// in the provided graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrBadHandle indicates a dense source handle outside [0, View.Len()).
	ErrBadHandle = errors.New("dijkstra: source handle out of range")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative,
	// which would treat all edges (including zero-weight edges) as impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Metric selects the weight component used as edge length.
type Metric int

const (
	// Cost uses Weight.Cost.
	Cost Metric = iota

	// Time uses Weight.Time.
	Time
)

// String returns "cost" or "time".
func (m Metric) String() string {
	if m == Time {
		return "time"
	}
	return "cost"
}

// Length returns the component of w selected by m.
func (m Metric) Length(w core.Weight) int64 {
	if m == Time {
		return w.Time
	}
	return w.Cost
}

// Options configures the behavior of the Dijkstra algorithm.
//
// Metric           – weight component used as edge length.
// ReturnPath       – if true, Dijkstra returns the predecessor map; otherwise prev map is nil.
// MaxDistance      – optional cap on distances to explore (vertices beyond are skipped).
//
//	Must be ≥ 0. Default is math.MaxInt64 (no cap).
//
// InfEdgeThreshold – treat edges with length ≥ this threshold as impassable obstacles.
//
//	Must be > 0. Default is math.MaxInt64 (no obstacles).
type Options struct {
	Metric           Metric // Edge length component
	ReturnPath       bool   // Whether to return the predecessor map
	MaxDistance      int64  // Maximum distance to explore
	InfEdgeThreshold int64  // Length threshold above which edges are non-traversable
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMetric selects the weight component used as edge length.
func WithMetric(m Metric) Option {
	return func(o *Options) {
		o.Metric = m
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
// If false (default), the predecessor map is not returned (prev == nil).
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Vertices whose shortest distance would exceed this value are not explored.
// Must pass a non-negative value; negative values panic with ErrBadMaxDistance.
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a length threshold above which edges are
// considered non-traversable (treated as infinite weight).
// Must pass a positive value; zero or negative panic with ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold int64) Option {
	return func(o *Options) {
		if threshold <= 0 {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
// Cost metric, no predecessor map, no distance cap, no impassable edges.
func DefaultOptions() Options {
	return Options{
		Metric:           Cost,
		ReturnPath:       false,
		MaxDistance:      math.MaxInt64,
		InfEdgeThreshold: math.MaxInt64,
	}
}

// Tree is the dense result of one run: Dist[h] and Prev[h] indexed by view handle.
// Dist[h] == Unreachable and Prev[h] == NoPredecessor for unreachable vertices.
type Tree struct {
	Source int
	Metric Metric
	Dist   []int64
	Prev   []int
}

// Reachable reports whether handle h was reached.
func (t *Tree) Reachable(h int) bool { return t.Dist[h] != Unreachable }

// PathTo returns the handles from Source to h, or nil if h is unreachable.
func (t *Tree) PathTo(h int) []int {
	if !t.Reachable(h) {
		return nil
	}
	var rev []int
	for cur := h; cur != NoPredecessor; cur = t.Prev[cur] {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev
}
