// Package queryvec builds the weighted term vector for a query, with
// optional embedding-based synonym expansion.
package queryvec

import (
	"sort"

	"vsmsearch/internal/embedding"
	"vsmsearch/internal/indexer/tokenizer"
)

// Vector maps a query term to its weight: the raw term count after
// Vectorize, similarity-weighted contributions added by Expand.
type Vector map[string]float64

// Vectorize normalises the raw query with the shared tokenizer and counts
// term occurrences.
func Vectorize(query string) Vector {
	vec := make(Vector)
	for _, term := range tokenizer.Tokenize(query) {
		vec[term]++
	}
	return vec
}

// Expand returns a copy of vec augmented with the nearest neighbors of each
// original term: every (neighbor, score) pair contributes score*weight to
// the neighbor's entry. Only the original entries are expanded — iteration
// runs over a snapshot so expansion results never feed back into further
// expansion. Terms without an embedding are skipped silently. Negative
// post-expansion weights carry no relevance signal and are clamped to 0.
func Expand(vec Vector, sim embedding.Similarity, maxExpNo int) Vector {
	expanded := make(Vector, len(vec))
	for term, weight := range vec {
		expanded[term] = weight
	}
	terms := make([]string, 0, len(vec))
	for term := range vec {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		neighbors, ok := sim.Nearest(term, maxExpNo)
		if !ok {
			continue
		}
		for _, neighbor := range neighbors {
			expanded[neighbor.Term] += neighbor.Score * vec[term]
		}
	}
	for term, weight := range expanded {
		if weight < 0 {
			expanded[term] = 0
		}
	}
	return expanded
}
