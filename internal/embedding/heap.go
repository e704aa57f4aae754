package embedding

import (
	"container/heap"
	"sort"
)

// neighborHeap keeps the topN highest-scoring neighbors seen so far; the
// root is the weakest kept entry.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int { return len(h) }

func (h neighborHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].Term > h[j].Term
}

func (h neighborHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *neighborHeap) push(n Neighbor, cap int) {
	heap.Push(h, n)
	if h.Len() > cap {
		heap.Pop(h)
	}
}

// sorted drains the heap into a descending-score slice.
func (h neighborHeap) sorted() []Neighbor {
	result := make([]Neighbor, len(h))
	copy(result, h)
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Term < result[j].Term
	})
	return result
}
