package taskheap

import (
	"container/heap"
)

// Slot is a job slot and the targets allocated to it.
type Slot struct {
	Index   int
	Total   int
	Targets []string
}

// Heap is a min heap of slots, the least loaded slot with the lowest index first.
type Heap []*Slot

// New returns an initialized heap of n empty slots.
func New(n int) Heap {
	h := make(Heap, n)
	for i := 0; i < n; i++ {
		h[i] = &Slot{Index: i, Targets: make([]string, 0)}
	}
	heap.Init(&h)
	return h
}

// Len returns the length of the heap
func (h Heap) Len() int {
	return len(h)
}

func (h Heap) Less(i, j int) bool {
	if h[i].Total != h[j].Total {
		return h[i].Total < h[j].Total
	}
	return h[i].Index < h[j].Index
}

// Swap swaps the values of two slots
func (h Heap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push adds a new slot to the heap
func (h *Heap) Push(x interface{}) {
	item := x.(*Slot)
	*h = append(*h, item)
}

// Pop removes the top slot from the heap
func (h *Heap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[0 : n-1]
	return x
}

// UpdateHead allocates a target to the head slot.
func (h *Heap) UpdateHead(executionTime int, target string) {
	(*h)[0].Total += executionTime
	(*h)[0].Targets = append((*h)[0].Targets, target)
	// heapify after updating the slot
	heap.Fix(h, 0)
}

// Slots returns the slots ordered by index.
func (h Heap) Slots() []Slot {
	slots := make([]Slot, len(h))
	for _, s := range h {
		slots[s.Index] = *s
	}
	return slots
}
