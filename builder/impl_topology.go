package builder

import (
	"fmt"

	"github.com/katalvlaran/cspath/core"
)

// Method tags and minima.
const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodGrid         = "Grid"
	methodComplete     = "Complete"
	methodRandomSparse = "RandomSparse"

	minPathNodes     = 1
	minCycleNodes    = 3
	minGridDim       = 1
	minCompleteNodes = 1
	minSparseNodes   = 1
)

// Path returns a Constructor for the chain 0—1—…—(n-1).
// Requires n ≥ 1. Edges are emitted in ascending i.
func Path(n int) Constructor {
	return func(g *core.Graph[int64], cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		addVertices(g, cfg, n)
		for i := 0; i+1 < n; i++ {
			if err := connect(methodPath, g, cfg, i, i+1); err != nil {
				return err
			}
		}

		return nil
	}
}

// Cycle returns a Constructor for the ring 0—1—…—(n-1)—0. Requires n ≥ 3.
func Cycle(n int) Constructor {
	return func(g *core.Graph[int64], cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		addVertices(g, cfg, n)
		for i := 0; i < n; i++ {
			if err := connect(methodCycle, g, cfg, i, (i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}

// Grid returns a Constructor for a rows×cols orthogonal grid. Cell (r,c) has
// index r*cols+c; for each cell the right edge is emitted before the bottom one.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph[int64], cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}
		addVertices(g, cfg, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					if err := connect(methodGrid, g, cfg, u, u+1); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := connect(methodGrid, g, cfg, u, u+cols); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}

// Complete returns a Constructor for K_n. Requires n ≥ 1.
func Complete(n int) Constructor {
	return func(g *core.Graph[int64], cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		addVertices(g, cfg, n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := connect(methodComplete, g, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// RandomSparse returns a Constructor that includes each pair {i,j}, i<j, with
// independent probability p. Requires n ≥ 1 and p in [0,1]; an RNG is
// required unless p is 0 or 1.
//
// Trial order is i asc then j asc, so a fixed seed yields a fixed graph.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph[int64], cfg builderConfig) error {
		if n < minSparseNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minSparseNodes, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		addVertices(g, cfg, n)
		if p == 0 {
			return nil
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if p < 1 && cfg.rng.Float64() >= p {
					continue
				}
				if err := connect(methodRandomSparse, g, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
