package csp

import "sort"

// paretoSet holds the finalized signatures of one vertex.
//
// Invariant: sorted by Cost ascending with Time strictly descending, so no
// member dominates or equals another. Signatures are finalized in Compare
// order, which makes every accepted insertion an append.
type paretoSet []Signature

// covers reports whether some member dominates or equals sig.
//
// Among members with Cost <= sig.Cost the last one has the smallest Time, so
// a single binary search answers the question.
// Complexity: O(log k).
func (s paretoSet) covers(sig Signature) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].Cost > sig.Cost }) - 1

	return i >= 0 && s[i].Time <= sig.Time
}

// add appends sig. Caller must have checked !covers(sig) and must finalize in
// Compare order.
func (s *paretoSet) add(sig Signature) { *s = append(*s, sig) }

// noParent marks the root label.
const noParent = -1

// label is a finalized signature at a vertex. parent indexes the label arena.
type label struct {
	sig    Signature
	vertex int
	parent int
}

// arena stores every finalized label of one search run.
type arena []label

// path returns the vertex handles from the root to label i.
func (a arena) path(i int) []int {
	var rev []int
	for cur := i; cur != noParent; cur = a[cur].parent {
		rev = append(rev, a[cur].vertex)
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}

	return rev
}
