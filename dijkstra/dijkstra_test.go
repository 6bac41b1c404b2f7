// Package dijkstra_test contains unit tests for the Dijkstra implementation.
package dijkstra_test

import (
	"testing"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/dijkstra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square builds A—B(1,9) B—D(1,9) A—C(5,1) C—D(5,1) plus an isolated Z.
func square(t *testing.T) *core.Graph[string] {
	t.Helper()
	g := core.NewGraph[string]()
	require.NoError(t, g.AddEdge("A", "B", 1, 9))
	require.NoError(t, g.AddEdge("B", "D", 1, 9))
	require.NoError(t, g.AddEdge("A", "C", 5, 1))
	require.NoError(t, g.AddEdge("C", "D", 5, 1))
	g.AddVertex("Z")

	return g
}

func TestDijkstra_NilGraph(t *testing.T) {
	_, _, err := dijkstra.Dijkstra[string](nil, "A")
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.FromHandle[string](nil, 0)
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)
}

func TestDijkstra_SourceNotFound(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(square(t), "X")
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestDijkstra_CostMetric(t *testing.T) {
	dist, prev, err := dijkstra.Dijkstra(square(t), "A", dijkstra.WithReturnPath())
	require.NoError(t, err)

	assert.Equal(t, int64(0), dist["A"])
	assert.Equal(t, int64(2), dist["D"], "A→B→D is cheapest")
	assert.Equal(t, dijkstra.Unreachable, dist["Z"])
	assert.Equal(t, "B", prev["D"])
	_, hasSource := prev["A"]
	assert.False(t, hasSource)
	_, hasZ := prev["Z"]
	assert.False(t, hasZ)
}

func TestDijkstra_TimeMetric(t *testing.T) {
	dist, prev, err := dijkstra.Dijkstra(square(t), "A",
		dijkstra.WithMetric(dijkstra.Time), dijkstra.WithReturnPath())
	require.NoError(t, err)

	assert.Equal(t, int64(2), dist["D"], "A→C→D is fastest")
	assert.Equal(t, "C", prev["D"])
}

func TestDijkstra_NoReturnPath(t *testing.T) {
	_, prev, err := dijkstra.Dijkstra(square(t), "A")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestDijkstra_MaxDistance(t *testing.T) {
	dist, _, err := dijkstra.Dijkstra(square(t), "A", dijkstra.WithMaxDistance(1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), dist["B"])
	assert.Equal(t, dijkstra.Unreachable, dist["D"], "beyond the cap")
	assert.Equal(t, dijkstra.Unreachable, dist["C"], "beyond the cap")
}

func TestDijkstra_InfEdgeThreshold(t *testing.T) {
	dist, _, err := dijkstra.Dijkstra(square(t), "A", dijkstra.WithInfEdgeThreshold(5))
	require.NoError(t, err)

	assert.Equal(t, int64(2), dist["D"])
	assert.Equal(t, dijkstra.Unreachable, dist["C"], "both edges into C are walls")
}

func TestDijkstra_OptionPanics(t *testing.T) {
	assert.Panics(t, func() { dijkstra.WithMaxDistance(-1)(&dijkstra.Options{}) })
	assert.Panics(t, func() { dijkstra.WithInfEdgeThreshold(0)(&dijkstra.Options{}) })
}

func TestFromHandle_Tree(t *testing.T) {
	g := square(t)
	view := g.View()
	src, ok := view.Handle("A")
	require.True(t, ok)
	dst, _ := view.Handle("D")
	z, _ := view.Handle("Z")

	tree, err := dijkstra.FromHandle(view, src)
	require.NoError(t, err)
	assert.Equal(t, dijkstra.Cost, tree.Metric)
	assert.True(t, tree.Reachable(dst))
	assert.False(t, tree.Reachable(z))
	assert.Equal(t, []string{"A", "B", "D"}, view.IDs(tree.PathTo(dst)))
	assert.Equal(t, []string{"A"}, view.IDs(tree.PathTo(src)))
	assert.Nil(t, tree.PathTo(z))

	_, err = dijkstra.FromHandle(view, view.Len())
	require.ErrorIs(t, err, dijkstra.ErrBadHandle)
}

func TestDijkstra_Saturation(t *testing.T) {
	g := core.NewGraph[int]()
	require.NoError(t, g.AddEdge(1, 2, dijkstra.Unreachable-1, 0))
	require.NoError(t, g.AddEdge(2, 3, 10, 0))

	dist, _, err := dijkstra.Dijkstra(g, 1)
	require.NoError(t, err)
	assert.Equal(t, dijkstra.Unreachable-1, dist[2])
	assert.Equal(t, dijkstra.Unreachable, dist[3], "overflow saturates to unreachable")
}

func TestMetric_String(t *testing.T) {
	assert.Equal(t, "cost", dijkstra.Cost.String())
	assert.Equal(t, "time", dijkstra.Time.String())
}
