package csp_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/csp"
)

// triangle builds 1—2 (4,10), 2—3 (4,10), 1—3 (10,1).
func triangle(t *testing.T) *core.Graph[int] {
	t.Helper()
	g := core.NewGraph[int]()
	require.NoError(t, g.AddEdge(1, 2, 4, 10))
	require.NoError(t, g.AddEdge(2, 3, 4, 10))
	require.NoError(t, g.AddEdge(1, 3, 10, 1))

	return g
}

// detour builds a graph where vertex x holds two non-dominated labels,
// (1,10) via s—x and (2,1) via s—y—x, and both continue over x—d (5,0).
func detour(t *testing.T) *core.Graph[string] {
	t.Helper()
	g := core.NewGraph[string]()
	require.NoError(t, g.AddEdge("s", "x", 1, 10))
	require.NoError(t, g.AddEdge("s", "y", 2, 1))
	require.NoError(t, g.AddEdge("y", "x", 0, 0))
	require.NoError(t, g.AddEdge("x", "d", 5, 0))

	return g
}

// bothBounds runs fn with lower bounds on and off.
func bothBounds(t *testing.T, fn func(t *testing.T, opt csp.Option)) {
	t.Run("bounds", func(t *testing.T) { fn(t, csp.WithLowerBounds(true)) })
	t.Run("plain", func(t *testing.T) { fn(t, csp.WithLowerBounds(false)) })
}

func TestScenarioA_CheapestWithinBudget(t *testing.T) {
	bothBounds(t, func(t *testing.T, opt csp.Option) {
		res, err := csp.FindConstrainedPath(triangle(t), 1, 3, 10, opt)
		require.NoError(t, err)
		require.True(t, res.IsFeasible())
		assert.Equal(t, int64(8), res.Cost)
		assert.Equal(t, int64(20), res.Time)
		assert.Equal(t, []int{1, 2, 3}, res.Path)
	})
}

func TestScenarioA_TimeFirst(t *testing.T) {
	bothBounds(t, func(t *testing.T, opt csp.Option) {
		res, err := csp.FindConstrainedPath(triangle(t), 1, 3, 10, opt, csp.WithObjective(csp.TimeFirst))
		require.NoError(t, err)
		require.True(t, res.IsFeasible())
		assert.Equal(t, int64(10), res.Cost)
		assert.Equal(t, int64(1), res.Time)
		assert.Equal(t, []int{1, 3}, res.Path)
	})
}

func TestScenarioB_Infeasible(t *testing.T) {
	bothBounds(t, func(t *testing.T, opt csp.Option) {
		for _, obj := range []csp.Objective{csp.CostFirst, csp.TimeFirst} {
			res, err := csp.FindConstrainedPath(triangle(t), 1, 3, 5, opt, csp.WithObjective(obj))
			require.NoError(t, err)
			assert.Equal(t, csp.Infeasible, res.Outcome, obj.String())
			assert.Zero(t, res.Cost)
			assert.Zero(t, res.Time)
			assert.Nil(t, res.Path)
		}
	})
}

func TestScenarioC_SourceIsDestination(t *testing.T) {
	bothBounds(t, func(t *testing.T, opt csp.Option) {
		for _, budget := range []int64{0, 1, 1000} {
			res, err := csp.FindConstrainedPath(triangle(t), 2, 2, budget, opt)
			require.NoError(t, err)
			require.True(t, res.IsFeasible())
			assert.Zero(t, res.Cost)
			assert.Zero(t, res.Time)
			assert.Equal(t, []int{2}, res.Path)
		}
	})
}

func TestScenarioD_IsolatedDestination(t *testing.T) {
	g := triangle(t)
	g.AddVertex(4)

	bothBounds(t, func(t *testing.T, opt csp.Option) {
		for _, budget := range []int64{0, 100, math.MaxInt64} {
			res, err := csp.FindConstrainedPath(g, 1, 4, budget, opt)
			require.NoError(t, err)
			assert.False(t, res.IsFeasible())
		}
	})
}

func TestTimeBreaksCostTies(t *testing.T) {
	g := core.NewGraph[int]()
	require.NoError(t, g.AddEdge(1, 2, 2, 5))
	require.NoError(t, g.AddEdge(2, 4, 2, 5))
	require.NoError(t, g.AddEdge(1, 3, 2, 1))
	require.NoError(t, g.AddEdge(3, 4, 2, 1))

	res, err := csp.FindConstrainedPath(g, 1, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, csp.Signature{Cost: 4, Time: 2}, res.Signature())
	assert.Equal(t, []int{1, 3, 4}, res.Path)
}

func TestPathFollowsLabelNotVertex(t *testing.T) {
	g := detour(t)

	cheap, err := csp.FindConstrainedPath(g, "s", "d", 10)
	require.NoError(t, err)
	assert.Equal(t, csp.Signature{Cost: 6, Time: 10}, cheap.Signature())
	assert.Equal(t, []string{"s", "x", "d"}, cheap.Path)

	fast, err := csp.FindConstrainedPath(g, "s", "d", 10, csp.WithObjective(csp.TimeFirst))
	require.NoError(t, err)
	assert.Equal(t, csp.Signature{Cost: 7, Time: 1}, fast.Signature())
	assert.Equal(t, []string{"s", "y", "x", "d"}, fast.Path)

	tight, err := csp.FindConstrainedPath(g, "s", "d", 6, csp.WithObjective(csp.TimeFirst))
	require.NoError(t, err)
	assert.Equal(t, csp.Signature{Cost: 6, Time: 10}, tight.Signature(), "budget excludes the fast route")
}

func TestParetoFrontier(t *testing.T) {
	bothBounds(t, func(t *testing.T, opt csp.Option) {
		f, err := csp.ParetoFrontier(context.Background(), detour(t), "s", "d", 10, opt)
		require.NoError(t, err)
		require.Len(t, f.Routes, 2)
		assert.Equal(t, csp.Route[string]{Cost: 6, Time: 10, Path: []string{"s", "x", "d"}}, f.Routes[0])
		assert.Equal(t, csp.Route[string]{Cost: 7, Time: 1, Path: []string{"s", "y", "x", "d"}}, f.Routes[1])

		f, err = csp.ParetoFrontier(context.Background(), detour(t), "s", "d", 5, opt)
		require.NoError(t, err)
		assert.Empty(t, f.Routes)
	})
}

func TestParetoFrontier_Triangle(t *testing.T) {
	f, err := csp.ParetoFrontier(context.Background(), triangle(t), 1, 3, 100)
	require.NoError(t, err)
	require.Len(t, f.Routes, 2)
	assert.Equal(t, csp.Signature{Cost: 8, Time: 20}, f.Routes[0].Signature())
	assert.Equal(t, csp.Signature{Cost: 10, Time: 1}, f.Routes[1].Signature())
}

func TestErrors(t *testing.T) {
	g := triangle(t)

	_, err := csp.FindConstrainedPath[int](nil, 1, 3, 10)
	assert.ErrorIs(t, err, csp.ErrNilGraph)

	_, err = csp.FindConstrainedPath(g, 1, 3, -1)
	assert.ErrorIs(t, err, csp.ErrNegativeBudget)

	_, err = csp.FindConstrainedPath(g, 9, 3, 10)
	require.ErrorIs(t, err, csp.ErrVertexNotFound)
	assert.Contains(t, err.Error(), "source 9")

	_, err = csp.FindConstrainedPath(g, 1, 9, 10)
	require.ErrorIs(t, err, csp.ErrVertexNotFound)
	assert.Contains(t, err.Error(), "destination 9")

	_, err = csp.ParetoFrontier(context.Background(), g, 1, 9, 10)
	assert.ErrorIs(t, err, csp.ErrVertexNotFound)
}

func TestZeroBudget(t *testing.T) {
	g := core.NewGraph[int]()
	require.NoError(t, g.AddEdge(1, 2, 0, 3))
	require.NoError(t, g.AddEdge(2, 3, 0, 4))
	require.NoError(t, g.AddEdge(1, 3, 1, 1))

	res, err := csp.FindConstrainedPath(g, 1, 3, 0)
	require.NoError(t, err)
	require.True(t, res.IsFeasible())
	assert.Equal(t, csp.Signature{Cost: 0, Time: 7}, res.Signature())
	assert.Equal(t, []int{1, 2, 3}, res.Path)
}

func TestSaturatedCostIsNeverFeasible(t *testing.T) {
	g := core.NewGraph[int]()
	require.NoError(t, g.AddEdge(1, 2, math.MaxInt64, 1))
	require.NoError(t, g.AddEdge(2, 3, 5, 1))

	bothBounds(t, func(t *testing.T, opt csp.Option) {
		res, err := csp.FindConstrainedPath(g, 1, 3, math.MaxInt64, opt)
		require.NoError(t, err)
		assert.False(t, res.IsFeasible())
	})
}

func TestMaxLabels(t *testing.T) {
	_, err := csp.FindConstrainedPath(triangle(t), 1, 3, 100, csp.WithMaxLabels(1))
	assert.ErrorIs(t, err, csp.ErrLabelLimit)

	res, err := csp.FindConstrainedPath(triangle(t), 1, 3, 100, csp.WithMaxLabels(10))
	require.NoError(t, err)
	assert.True(t, res.IsFeasible())
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := csp.FindConstrainedPathContext(ctx, triangle(t), 1, 3, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = csp.ParetoFrontier(ctx, triangle(t), 1, 3, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	res, err := csp.FindConstrainedPath(triangle(t), 1, 3, 10, csp.WithLowerBounds(false))
	require.NoError(t, err)

	s := res.Stats
	assert.Positive(t, s.Pushed)
	assert.Positive(t, s.Finalized)
	assert.LessOrEqual(t, s.Popped, s.Pushed)
	assert.LessOrEqual(t, s.Finalized+s.Stale, s.Popped)
	assert.GreaterOrEqual(t, s.PeakFrontier, 1)
}

func TestIdempotentAndSymmetric(t *testing.T) {
	g := detour(t)
	first, err := csp.FindConstrainedPath(g, "s", "d", 10)
	require.NoError(t, err)
	again, err := csp.FindConstrainedPath(g, "s", "d", 10)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	back, err := csp.FindConstrainedPath(g, "d", "s", 10)
	require.NoError(t, err)
	assert.Equal(t, first.Signature(), back.Signature())
}

func TestParseObjective(t *testing.T) {
	for in, want := range map[string]csp.Objective{
		"": csp.CostFirst, "cost": csp.CostFirst, "Cost-First": csp.CostFirst,
		"time": csp.TimeFirst, " TIME-first ": csp.TimeFirst,
	} {
		got, err := csp.ParseObjective(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := csp.ParseObjective("distance")
	assert.ErrorIs(t, err, csp.ErrUnknownObjective)
	assert.Equal(t, "time", csp.TimeFirst.String())
	assert.Equal(t, "feasible", csp.Feasible.String())
}

func TestSignature(t *testing.T) {
	a := csp.Signature{Cost: 1, Time: 5}
	b := csp.Signature{Cost: 2, Time: 5}
	c := csp.Signature{Cost: 2, Time: 1}

	assert.Equal(t, -1, csp.Compare(a, b))
	assert.Equal(t, 1, csp.Compare(b, c))
	assert.Equal(t, 0, csp.Compare(a, a))
	assert.True(t, a.Dominates(b))
	assert.False(t, a.Dominates(a))
	assert.True(t, a.Covers(a))
	assert.False(t, a.Dominates(c))
	assert.False(t, c.Dominates(a))
	assert.Equal(t, "(1,5)", a.String())

	sat := csp.Signature{Cost: math.MaxInt64 - 1, Time: 0}.Extend(core.Weight{Cost: 5, Time: 2})
	assert.Equal(t, csp.Signature{Cost: math.MaxInt64, Time: 2}, sat)
}
