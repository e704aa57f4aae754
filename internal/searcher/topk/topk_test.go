package topk

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"vsmsearch/internal/searcher/scorer"
)

func TestSelectTopK(t *testing.T) {
	scores := scorer.Scores{"A": 0.9, "B": 0.5, "C": 0.8, "D": 0.1}
	got := Select(scores, 2)

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].DocID != "A" || got[1].DocID != "C" {
		t.Errorf("top 2 = [%s %s], want [A C]", got[0].DocID, got[1].DocID)
	}
	if got[0].Score != 0.9 || got[1].Score != 0.8 {
		t.Errorf("scores = [%v %v], want [0.9 0.8]", got[0].Score, got[1].Score)
	}
}

func TestSelectKExceedsEntries(t *testing.T) {
	scores := scorer.Scores{"A": 0.3, "B": 0.7}
	got := Select(scores, 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].DocID != "B" || got[1].DocID != "A" {
		t.Errorf("order = [%s %s], want [B A]", got[0].DocID, got[1].DocID)
	}
}

func TestSelectEmpty(t *testing.T) {
	if got := Select(scorer.Scores{}, 5); len(got) != 0 {
		t.Errorf("empty map produced %v", got)
	}
}

func TestSelectTieBreakByDocID(t *testing.T) {
	scores := scorer.Scores{"d3": 0.5, "d1": 0.5, "d2": 0.5}
	got := Select(scores, 2)
	if got[0].DocID != "d1" || got[1].DocID != "d2" {
		t.Errorf("tie order = [%s %s], want [d1 d2]", got[0].DocID, got[1].DocID)
	}
}

// Partial selection must agree with a full sort.
func TestSelectAgainstFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	scores := make(scorer.Scores, 500)
	for i := 0; i < 500; i++ {
		scores[fmt.Sprintf("d%03d", i)] = rng.Float64()
	}
	got := Select(scores, 25)

	type pair struct {
		id    string
		score float64
	}
	all := make([]pair, 0, len(scores))
	for id, score := range scores {
		all = append(all, pair{id, score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].id < all[j].id
	})
	for i := range got {
		if got[i].DocID != all[i].id {
			t.Fatalf("rank %d: got %s, want %s", i, got[i].DocID, all[i].id)
		}
	}
}
