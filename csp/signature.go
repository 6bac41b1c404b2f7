package csp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cspath/core"
)

// Signature is the cumulative (cost, time) of a path from the source.
type Signature struct {
	Cost int64
	Time int64
}

// Compare orders signatures lexicographically: cost first, time breaks ties.
// It returns -1, 0 or +1. This is the frontier order.
func Compare(a, b Signature) int {
	switch {
	case a.Cost < b.Cost:
		return -1
	case a.Cost > b.Cost:
		return 1
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	}
	return 0
}

// Dominates reports whether a is no worse than b in both components and
// strictly better in at least one. Equal signatures do not dominate each other.
func (a Signature) Dominates(b Signature) bool {
	return a.Covers(b) && a != b
}

// Covers reports whether a dominates or equals b.
func (a Signature) Covers(b Signature) bool {
	return a.Cost <= b.Cost && a.Time <= b.Time
}

// Extend returns a followed by an edge of weight w. Both components saturate
// at math.MaxInt64.
func (a Signature) Extend(w core.Weight) Signature {
	return Signature{Cost: addSat(a.Cost, w.Cost), Time: addSat(a.Time, w.Time)}
}

// String renders the signature as "(cost,time)".
func (a Signature) String() string { return fmt.Sprintf("(%d,%d)", a.Cost, a.Time) }

// addSat adds two non-negative values, saturating at math.MaxInt64.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
