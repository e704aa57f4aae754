package index

import (
	"container/heap"
)

// ChampionList trims a posting list to the maxDocs entries with the highest
// term frequencies, preserving the frequencies and the original document
// frequency. Selection uses a bounded min-heap rather than a full sort, so
// the cost is O(n log maxDocs). Ties at the boundary frequency are resolved
// by ascending document ID, which keeps the trim deterministic. Lists at or
// under the cap come back unchanged.
func ChampionList(pl *PostingList, maxDocs int) *PostingList {
	if len(pl.Postings) <= maxDocs {
		return pl
	}
	h := make(postingHeap, 0, maxDocs+1)
	heap.Init(&h)
	for docID, tf := range pl.Postings {
		heap.Push(&h, postingEntry{docID: docID, freq: tf})
		if h.Len() > maxDocs {
			heap.Pop(&h)
		}
	}
	trimmed := &PostingList{
		DocFreq:  pl.DocFreq,
		Postings: make(map[string]int, h.Len()),
	}
	for _, entry := range h {
		trimmed.Postings[entry.docID] = entry.freq
	}
	return trimmed
}

type postingEntry struct {
	docID string
	freq  int
}

// postingHeap is a min-heap over term frequency; the root is the weakest
// entry and is evicted when the heap outgrows the cap. For equal
// frequencies, the larger document ID is weaker.
type postingHeap []postingEntry

func (h postingHeap) Len() int { return len(h) }

func (h postingHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].docID > h[j].docID
}

func (h postingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *postingHeap) Push(x interface{}) {
	*h = append(*h, x.(postingEntry))
}

func (h *postingHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
