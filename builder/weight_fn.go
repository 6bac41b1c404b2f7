package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/cspath/core"
)

// WeightFn produces an edge weight given an optional *rand.Rand source.
// It must be deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) core.Weight

// ConstantWeight returns a WeightFn that always yields (cost, time).
// Panics if either is negative.
func ConstantWeight(cost, time int64) WeightFn {
	if cost < 0 || time < 0 {
		panic(fmt.Sprintf("ConstantWeight: components must be ≥ 0, got (%d,%d)", cost, time))
	}
	w := core.Weight{Cost: cost, Time: time}

	return func(*rand.Rand) core.Weight { return w }
}

// UniformWeight draws cost from [0, maxCost] and time from [0, maxTime]
// independently. With a nil RNG it returns (maxCost, maxTime).
// Panics if either bound is negative.
func UniformWeight(maxCost, maxTime int64) WeightFn {
	if maxCost < 0 || maxTime < 0 {
		panic(fmt.Sprintf("UniformWeight: bounds must be ≥ 0, got (%d,%d)", maxCost, maxTime))
	}

	return func(rng *rand.Rand) core.Weight {
		if rng == nil {
			return core.Weight{Cost: maxCost, Time: maxTime}
		}
		return core.Weight{Cost: rng.Int63n(maxCost + 1), Time: rng.Int63n(maxTime + 1)}
	}
}

// TradeoffWeight draws cost from [1, total-1] and sets time = total - cost,
// so every edge trades one criterion against the other. This produces many
// non-dominated labels per vertex. With a nil RNG cost = time = total/2.
// Panics if total < 2.
func TradeoffWeight(total int64) WeightFn {
	if total < 2 {
		panic(fmt.Sprintf("TradeoffWeight: total must be ≥ 2, got %d", total))
	}

	return func(rng *rand.Rand) core.Weight {
		if rng == nil {
			return core.Weight{Cost: total / 2, Time: total - total/2}
		}
		c := 1 + rng.Int63n(total-1)
		return core.Weight{Cost: c, Time: total - c}
	}
}
