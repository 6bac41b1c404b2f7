package builder

import (
	"math/rand"

	"github.com/katalvlaran/cspath/core"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	rng      *rand.Rand // nil means no randomness
	weightFn WeightFn
	offset   int64
}

// Deterministic defaults.
const (
	defaultCost = int64(1)
	defaultTime = int64(1)
)

// newBuilderConfig applies opts in order over the defaults (later wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		weightFn: ConstantWeight(defaultCost, defaultTime),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// id maps a construction index to a vertex id.
func (c builderConfig) id(i int) int64 { return c.offset + int64(i) }

// DefaultWeight is the weight of every edge when no WeightFn is set.
var DefaultWeight = core.Weight{Cost: defaultCost, Time: defaultTime}
