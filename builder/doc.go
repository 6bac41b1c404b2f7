// Package builder provides deterministic bicriteria graph fixtures for tests,
// examples and benchmarks.
//
// The package offers the following key components:
//
//   - BuildGraph: creates a core.Graph[int64] and applies constructors in order.
//   - Constructors: Path, Cycle, Grid, Complete, RandomSparse.
//   - Options:
//     – WithSeed / WithRand: RNG for stochastic constructors and weights.
//     – WithWeightFn:        per-edge (cost, time) generator.
//     – WithIDOffset:        first vertex id (default 0).
//   - Weight generators:
//     – ConstantWeight(c, t): fixed weight.
//     – UniformWeight(maxC, maxT): independent uniform draws in [0, max].
//     – TradeoffWeight(max): cost + time == max, so cheap edges are slow.
//
// Guarantees:
//
//   - Determinism: same seed, options and constructor order ⇒ identical graphs.
//   - Vertex ids are offset+i for i in 0..n-1, added in ascending order.
//   - Constructors return wrapped sentinels and never panic; option
//     constructors panic on nil or meaningless values.
package builder
