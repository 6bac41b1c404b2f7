package csp

import "container/heap"

// entry is a candidate (not yet finalized) signature at a vertex.
type entry struct {
	sig    Signature
	vertex int
	parent int    // arena index of the label it extends, or noParent
	seq    uint64 // push order, makes equal signatures pop FIFO
}

// lessEntry is the frontier comparator: lexicographic (cost, time), then push order.
func lessEntry(a, b *entry) bool {
	if c := Compare(a.sig, b.sig); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// frontier is a binary min-heap of entries ordered by less.
type frontier struct {
	items []entry
	less  func(a, b *entry) bool
	seq   uint64
}

func newFrontier(capacity int) *frontier {
	return &frontier{items: make([]entry, 0, capacity), less: lessEntry}
}

// push enqueues sig at vertex, extending label parent.
func (f *frontier) push(sig Signature, vertex, parent int) {
	f.seq++
	heap.Push(f, entry{sig: sig, vertex: vertex, parent: parent, seq: f.seq})
}

// pop removes and returns the smallest entry. Caller checks Len() > 0.
func (f *frontier) pop() entry { return heap.Pop(f).(entry) }

// heap.Interface

func (f *frontier) Len() int           { return len(f.items) }
func (f *frontier) Less(i, j int) bool { return f.less(&f.items[i], &f.items[j]) }
func (f *frontier) Swap(i, j int)      { f.items[i], f.items[j] = f.items[j], f.items[i] }
func (f *frontier) Push(x any)         { f.items = append(f.items, x.(entry)) }
func (f *frontier) Pop() any {
	n := len(f.items)
	it := f.items[n-1]
	f.items = f.items[:n-1]

	return it
}
