// Package topk extracts the highest-scoring documents from a score map
// without sorting it fully: a bounded min-heap keeps the K best seen so
// far, giving O(n log k) selection.
package topk

import (
	"container/heap"

	"vsmsearch/internal/searcher/scorer"
)

// ScoredDoc is one ranked result.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Select returns up to k documents in descending score order. Ties resolve
// by ascending document ID. If k exceeds the map size, all entries come
// back ranked.
func Select(scores scorer.Scores, k int) []ScoredDoc {
	if k <= 0 || len(scores) == 0 {
		return nil
	}
	h := &scoredDocHeap{}
	heap.Init(h)
	for docID, score := range scores {
		heap.Push(h, ScoredDoc{DocID: docID, Score: score})
		if h.Len() > k {
			heap.Pop(h)
		}
	}
	result := make([]ScoredDoc, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(ScoredDoc)
	}
	return result
}

// scoredDocHeap is a min-heap by score; the root is the weakest kept doc.
type scoredDocHeap []ScoredDoc

func (h scoredDocHeap) Len() int { return len(h) }

func (h scoredDocHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].DocID > h[j].DocID
}

func (h scoredDocHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoredDocHeap) Push(x interface{}) {
	*h = append(*h, x.(ScoredDoc))
}

func (h *scoredDocHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
