package csp

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed.
	ErrNilGraph = errors.New("csp: graph is nil")

	// ErrNegativeBudget indicates a budget below zero.
	ErrNegativeBudget = errors.New("csp: budget must be non-negative")

	// ErrVertexNotFound indicates that the source or destination is absent
	// from the graph. It is distinct from an Infeasible outcome.
	ErrVertexNotFound = errors.New("csp: vertex not found in graph")

	// ErrLabelLimit indicates the search finalized more labels than WithMaxLabels allows.
	ErrLabelLimit = errors.New("csp: label limit exceeded")

	// ErrUnknownObjective indicates an unrecognized objective name.
	ErrUnknownObjective = errors.New("csp: unknown objective")
)

// Outcome tells whether a budget-feasible path exists.
type Outcome int

const (
	// Infeasible: no path from source to destination costs at most the budget.
	Infeasible Outcome = iota

	// Feasible: Result carries the chosen path and its signature.
	Feasible
)

// String returns "feasible" or "infeasible".
func (o Outcome) String() string {
	if o == Feasible {
		return "feasible"
	}
	return "infeasible"
}

// Objective selects which budget-feasible path is reported.
type Objective int

const (
	// CostFirst reports the cheapest budget-feasible path, breaking cost ties
	// by time. The search stops at the first finalization of the destination.
	CostFirst Objective = iota

	// TimeFirst reports the fastest budget-feasible path, breaking time ties
	// by cost. The search explores the destination's whole Pareto set.
	TimeFirst
)

// String returns "cost" or "time".
func (o Objective) String() string {
	if o == TimeFirst {
		return "time"
	}
	return "cost"
}

// ParseObjective accepts "cost", "cost-first", "time" and "time-first" (case-insensitive).
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cost", "cost-first":
		return CostFirst, nil
	case "time", "time-first":
		return TimeFirst, nil
	}
	return CostFirst, fmt.Errorf("%w: %q", ErrUnknownObjective, s)
}

// Options configures one search.
//
// Objective   – CostFirst (default) or TimeFirst.
// LowerBounds – prune with reverse-Dijkstra bounds from the destination (default true).
// MaxLabels   – abort with ErrLabelLimit after this many finalized labels (0 = unlimited).
type Options struct {
	Objective   Objective
	LowerBounds bool
	MaxLabels   int
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithObjective selects the reported path.
func WithObjective(o Objective) Option {
	return func(opts *Options) { opts.Objective = o }
}

// WithLowerBounds enables or disables bound-based pruning.
func WithLowerBounds(enabled bool) Option {
	return func(opts *Options) { opts.LowerBounds = enabled }
}

// WithMaxLabels caps the number of finalized labels. n <= 0 means unlimited.
func WithMaxLabels(n int) Option {
	return func(opts *Options) { opts.MaxLabels = n }
}

// DefaultOptions returns CostFirst with lower bounds and no label cap.
func DefaultOptions() Options {
	return Options{Objective: CostFirst, LowerBounds: true}
}

// Stats counts the work done by one search.
type Stats struct {
	Pushed       int // frontier insertions
	Popped       int // frontier extractions
	Stale        int // popped entries already covered at their vertex
	Pruned       int // relaxations rejected by budget, bounds, incumbent or dominance
	Finalized    int // labels moved into a non-dominated set
	PeakFrontier int // largest frontier size observed
}

// Route is one path with its cumulative signature.
type Route[V cmp.Ordered] struct {
	Cost int64
	Time int64
	Path []V
}

// Signature returns the route's (cost, time).
func (r Route[V]) Signature() Signature { return Signature{Cost: r.Cost, Time: r.Time} }

// Result is the outcome of FindConstrainedPath.
// Cost, Time and Path are zero when Outcome == Infeasible.
type Result[V cmp.Ordered] struct {
	Outcome Outcome
	Route[V]
	Stats Stats
}

// IsFeasible reports Outcome == Feasible.
func (r Result[V]) IsFeasible() bool { return r.Outcome == Feasible }

// Frontier is the Pareto set of budget-feasible signatures at the destination,
// ordered by cost ascending (time strictly descending).
type Frontier[V cmp.Ordered] struct {
	Routes []Route[V]
	Stats  Stats
}
