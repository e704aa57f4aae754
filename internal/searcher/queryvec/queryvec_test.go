package queryvec

import (
	"math"
	"reflect"
	"testing"

	"vsmsearch/internal/embedding"
)

// fakeSim serves canned neighbor lists.
type fakeSim map[string][]embedding.Neighbor

func (f fakeSim) Nearest(term string, topN int) ([]embedding.Neighbor, bool) {
	neighbors, ok := f[term]
	if !ok {
		return nil, false
	}
	if len(neighbors) > topN {
		neighbors = neighbors[:topN]
	}
	return neighbors, true
}

func TestVectorize(t *testing.T) {
	vec := Vectorize("Apple banana apple-pie")
	want := Vector{"apple": 2, "banana": 1, "pie": 1}
	if !reflect.DeepEqual(vec, want) {
		t.Errorf("Vectorize = %v, want %v", vec, want)
	}
}

func TestVectorizeEmpty(t *testing.T) {
	if vec := Vectorize("  !!! "); len(vec) != 0 {
		t.Errorf("empty query produced vector %v", vec)
	}
}

func TestExpandAddsWeightedNeighbors(t *testing.T) {
	sim := fakeSim{
		"apple": {{Term: "fruit", Score: 0.8}, {Term: "banana", Score: 0.5}},
	}
	vec := Vector{"apple": 2, "banana": 1}
	expanded := Expand(vec, sim, 7)

	if got := expanded["fruit"]; math.Abs(got-1.6) > 1e-12 {
		t.Errorf("fruit weight = %v, want 1.6", got)
	}
	// Existing entries accumulate on top of their original weight.
	if got := expanded["banana"]; math.Abs(got-2.0) > 1e-12 {
		t.Errorf("banana weight = %v, want 2.0", got)
	}
	if got := expanded["apple"]; got != 2 {
		t.Errorf("apple weight = %v, want 2", got)
	}
}

// Expansion iterates a snapshot of the original vector: neighbors gained
// during the call are never expanded themselves.
func TestExpandNoFeedback(t *testing.T) {
	sim := fakeSim{
		"apple": {{Term: "banana", Score: 0.9}},
		"banana": {
			{Term: "cherry", Score: 0.9},
		},
	}
	expanded := Expand(Vector{"apple": 1}, sim, 7)
	if _, ok := expanded["cherry"]; ok {
		t.Error("expansion fed back into itself")
	}
}

func TestExpandUnknownTermSkipped(t *testing.T) {
	expanded := Expand(Vector{"zebra": 1}, fakeSim{}, 7)
	want := Vector{"zebra": 1}
	if !reflect.DeepEqual(expanded, want) {
		t.Errorf("Expand = %v, want %v", expanded, want)
	}
}

func TestExpandClampsNegativeWeights(t *testing.T) {
	sim := fakeSim{
		"apple": {{Term: "cherry", Score: -0.7}},
	}
	expanded := Expand(Vector{"apple": 1}, sim, 7)
	if got := expanded["cherry"]; got != 0 {
		t.Errorf("negative weight not clamped: got %v, want exactly 0", got)
	}
}

func TestExpandLeavesOriginalUntouched(t *testing.T) {
	sim := fakeSim{"apple": {{Term: "fruit", Score: 0.5}}}
	vec := Vector{"apple": 1}
	Expand(vec, sim, 7)
	if !reflect.DeepEqual(vec, Vector{"apple": 1}) {
		t.Errorf("Expand mutated its input: %v", vec)
	}
}

func TestExpandRespectsMaxSynonyms(t *testing.T) {
	sim := fakeSim{
		"apple": {
			{Term: "a", Score: 0.9},
			{Term: "b", Score: 0.8},
			{Term: "c", Score: 0.7},
		},
	}
	expanded := Expand(Vector{"apple": 1}, sim, 2)
	if _, ok := expanded["c"]; ok {
		t.Error("more synonyms added than maxExpNo allows")
	}
}
