package csp

import (
	"cmp"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/dijkstra"
)

// ctxCheckInterval is the number of pops between context checks.
const ctxCheckInterval = 1024

// FindConstrainedPath finds a budget-feasible path from source to destination.
//
// With the default CostFirst objective it returns the minimum-cost path with
// cost <= budget, and among equal-cost paths the minimum-time one. An empty
// search space yields Outcome == Infeasible and a nil error.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. budget must be ≥ 0 (ErrNegativeBudget).
//  3. source and destination must exist (ErrVertexNotFound, wrapped with which one).
func FindConstrainedPath[V cmp.Ordered](g *core.Graph[V], source, destination V, budget int64, opts ...Option) (Result[V], error) {
	return FindConstrainedPathContext(context.Background(), g, source, destination, budget, opts...)
}

// FindConstrainedPathContext is FindConstrainedPath with cancellation.
// ctx is checked every ctxCheckInterval pops; on cancellation the wrapped
// ctx.Err() is returned.
func FindConstrainedPathContext[V cmp.Ordered](ctx context.Context, g *core.Graph[V], source, destination V, budget int64, opts ...Option) (Result[V], error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := newRunner(ctx, g, source, destination, budget, cfg)
	if err != nil {
		return Result[V]{}, err
	}

	var best int
	if cfg.Objective == TimeFirst {
		best, err = r.explore(true)
	} else {
		best, err = r.firstArrival()
	}
	if err != nil {
		return Result[V]{Stats: r.stats}, err
	}

	res := Result[V]{Outcome: Infeasible, Stats: r.stats}
	if best != noParent {
		res.Outcome = Feasible
		res.Route = r.route(best)
	}

	return res, nil
}

// ParetoFrontier returns every non-dominated budget-feasible (cost, time)
// signature at destination with one realizing path each, ordered by cost.
// The Objective option is ignored. An unreachable destination yields an
// empty Frontier and a nil error.
func ParetoFrontier[V cmp.Ordered](ctx context.Context, g *core.Graph[V], source, destination V, budget int64, opts ...Option) (Frontier[V], error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Objective = CostFirst

	r, err := newRunner(ctx, g, source, destination, budget, cfg)
	if err != nil {
		return Frontier[V]{}, err
	}
	if _, err = r.explore(false); err != nil {
		return Frontier[V]{Stats: r.stats}, err
	}

	out := Frontier[V]{Routes: make([]Route[V], 0, len(r.arrivals)), Stats: r.stats}
	for _, i := range r.arrivals {
		out.Routes = append(out.Routes, r.route(i))
	}

	return out, nil
}

// runner holds the mutable state for a single search execution.
// Nothing in it is shared with other searches; the view is read-only.
type runner[V cmp.Ordered] struct {
	ctx    context.Context
	view   *core.View[V]
	cfg    Options
	budget int64
	src    int
	dst    int

	sets     []paretoSet // per-vertex finalized signatures
	labels   arena
	pq       *frontier
	arrivals []int // arena indices of finalized destination labels

	lbCost []int64 // remaining-cost lower bound per vertex, nil if disabled
	lbTime []int64 // remaining-time lower bound per vertex, TimeFirst only

	stats Stats
}

func newRunner[V cmp.Ordered](ctx context.Context, g *core.Graph[V], source, destination V, budget int64, cfg Options) (*runner[V], error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBudget, budget)
	}

	view := g.View()
	src, ok := view.Handle(source)
	if !ok {
		return nil, fmt.Errorf("%w: source %v", ErrVertexNotFound, source)
	}
	dst, ok := view.Handle(destination)
	if !ok {
		return nil, fmt.Errorf("%w: destination %v", ErrVertexNotFound, destination)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("csp: search not started: %w", err)
	}

	r := &runner[V]{
		ctx:    ctx,
		view:   view,
		cfg:    cfg,
		budget: budget,
		src:    src,
		dst:    dst,
		sets:   make([]paretoSet, view.Len()),
		pq:     newFrontier(view.Len()),
	}
	if cfg.LowerBounds {
		if err := r.computeBounds(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// computeBounds runs reverse Dijkstra from the destination. Since the graph is
// undirected, distance from dst equals distance to dst, which makes these
// admissible bounds on the remaining cost and time of any label.
func (r *runner[V]) computeBounds() error {
	costTree, err := dijkstra.FromHandle(r.view, r.dst,
		dijkstra.WithMetric(dijkstra.Cost), dijkstra.WithMaxDistance(r.budget))
	if err != nil {
		return fmt.Errorf("csp: cost bounds: %w", err)
	}
	r.lbCost = costTree.Dist

	if r.cfg.Objective != TimeFirst {
		return nil
	}
	timeTree, err := dijkstra.FromHandle(r.view, r.dst, dijkstra.WithMetric(dijkstra.Time))
	if err != nil {
		return fmt.Errorf("csp: time bounds: %w", err)
	}
	r.lbTime = timeTree.Dist

	return nil
}

// firstArrival runs the label-setting loop until the destination is finalized
// for the first time. Pop order guarantees that label is cost-minimal, and
// time-minimal among cost ties. Returns noParent if the frontier empties first.
func (r *runner[V]) firstArrival() (int, error) {
	r.seed()
	for r.pq.Len() > 0 {
		idx, ok, err := r.step()
		if err != nil {
			return noParent, err
		}
		if !ok {
			continue
		}
		if r.labels[idx].vertex == r.dst {
			return idx, nil
		}
		r.relax(idx, false)
	}

	return noParent, nil
}

// explore runs the loop to exhaustion and records every destination label.
// With incumbent set, relaxations that cannot beat the best destination time
// are pruned and the last arrival is the time-minimal one.
// Returns the last arrival or noParent.
func (r *runner[V]) explore(incumbent bool) (int, error) {
	r.seed()
	for r.pq.Len() > 0 {
		idx, ok, err := r.step()
		if err != nil {
			return noParent, err
		}
		if !ok {
			continue
		}
		if r.labels[idx].vertex == r.dst {
			// Any path that leaves dst and returns is covered by this label.
			r.arrivals = append(r.arrivals, idx)
			continue
		}
		r.relax(idx, incumbent)
	}

	if len(r.arrivals) == 0 {
		return noParent, nil
	}
	return r.arrivals[len(r.arrivals)-1], nil
}

// seed pushes the empty path at the source, unless bounds already prove the
// destination out of budget.
func (r *runner[V]) seed() {
	if r.lbCost != nil && r.lbCost[r.src] == dijkstra.Unreachable {
		return
	}
	r.push(Signature{}, r.src, noParent)
}

// step pops one entry and finalizes it if it is not covered.
// It reports the new label index and whether a label was finalized.
func (r *runner[V]) step() (int, bool, error) {
	if r.stats.Popped%ctxCheckInterval == 0 {
		if err := r.ctx.Err(); err != nil {
			return noParent, false, fmt.Errorf("csp: search aborted after %d pops: %w", r.stats.Popped, err)
		}
	}

	e := r.pq.pop()
	r.stats.Popped++

	// Pop order is non-decreasing in cost: once over budget, everything left is too.
	if !r.withinBudget(e.sig) {
		r.stats.Pruned += r.pq.Len() + 1
		r.pq.items = r.pq.items[:0]
		return noParent, false, nil
	}
	if r.sets[e.vertex].covers(e.sig) {
		r.stats.Stale++
		return noParent, false, nil
	}

	idx := len(r.labels)
	r.labels = append(r.labels, label{sig: e.sig, vertex: e.vertex, parent: e.parent})
	r.sets[e.vertex].add(e.sig)
	r.stats.Finalized++

	if r.cfg.MaxLabels > 0 && r.stats.Finalized > r.cfg.MaxLabels {
		return noParent, false, fmt.Errorf("%w: %d", ErrLabelLimit, r.cfg.MaxLabels)
	}

	return idx, true, nil
}

// relax extends label idx along every arc of its vertex.
func (r *runner[V]) relax(idx int, incumbent bool) {
	from := r.labels[idx]
	bestTime, haveBest := r.incumbentTime(incumbent)

	for _, a := range r.view.Arcs(from.vertex) {
		next := from.sig.Extend(a.Weight)
		if !r.admissible(next, a.To, bestTime, haveBest) {
			r.stats.Pruned++
			continue
		}
		r.push(next, a.To, idx)
	}
}

// admissible applies budget, bound, incumbent and dominance pruning to a
// candidate signature at vertex v.
func (r *runner[V]) admissible(sig Signature, v int, bestTime int64, haveBest bool) bool {
	if !r.withinBudget(sig) {
		return false
	}
	if r.lbCost != nil {
		lb := r.lbCost[v]
		if lb == dijkstra.Unreachable || addSat(sig.Cost, lb) > r.budget {
			return false
		}
	}
	if haveBest {
		remaining := int64(0)
		if r.lbTime != nil {
			remaining = r.lbTime[v]
		}
		if addSat(sig.Time, remaining) >= bestTime {
			return false
		}
	}

	return !r.sets[v].covers(sig)
}

// withinBudget reports sig.Cost <= budget. A saturated cost never fits; the
// cost bounds treat it as unreachable too.
func (r *runner[V]) withinBudget(sig Signature) bool {
	return sig.Cost <= r.budget && sig.Cost != math.MaxInt64
}

// incumbentTime returns the time of the latest destination arrival.
func (r *runner[V]) incumbentTime(enabled bool) (int64, bool) {
	if !enabled || len(r.arrivals) == 0 {
		return 0, false
	}
	return r.labels[r.arrivals[len(r.arrivals)-1]].sig.Time, true
}

func (r *runner[V]) push(sig Signature, v, parent int) {
	r.pq.push(sig, v, parent)
	r.stats.Pushed++
	if n := r.pq.Len(); n > r.stats.PeakFrontier {
		r.stats.PeakFrontier = n
	}
}

// route rebuilds the path of label i.
func (r *runner[V]) route(i int) Route[V] {
	l := r.labels[i]

	return Route[V]{
		Cost: l.sig.Cost,
		Time: l.sig.Time,
		Path: r.view.IDs(r.labels.path(i)),
	}
}
