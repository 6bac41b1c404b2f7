package builder

import (
	"fmt"

	"github.com/katalvlaran/cspath/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters before touching g and
// return wrapped sentinel errors.
type Constructor func(g *core.Graph[int64], cfg builderConfig) error

// BuildGraph creates a new core.Graph[int64] with graph options gopts,
// resolves the builder configuration from bopts, and applies all constructors
// in order. Any constructor error is wrapped with "BuildGraph: %w".
//
// Complexity: O(len(bopts)) plus the sum of the constructors' costs.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph[int64], error) {
	g := core.NewGraph[int64](gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// addVertices registers ids offset..offset+n-1 in ascending order.
func addVertices(g *core.Graph[int64], cfg builderConfig, n int) {
	for i := 0; i < n; i++ {
		g.AddVertex(cfg.id(i))
	}
}

// connect adds the edge i—j with the next generated weight.
func connect(method string, g *core.Graph[int64], cfg builderConfig, i, j int) error {
	w := cfg.weightFn(cfg.rng)
	u, v := cfg.id(i), cfg.id(j)
	if err := g.AddEdge(u, v, w.Cost, w.Time); err != nil {
		return fmt.Errorf("%s: AddEdge(%d—%d, w=%s): %w", method, u, v, w, err)
	}

	return nil
}
