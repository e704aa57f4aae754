// Package scorer computes tf-idf weighted cosine similarity between a query
// vector and the documents touched by its terms. Documents sharing no term
// with the query are never visited (index elimination) and implicitly score
// zero.
package scorer

import (
	"math"
	"sort"

	"vsmsearch/internal/indexer/index"
	"vsmsearch/internal/searcher/queryvec"
)

// Scores maps document ID to accumulated similarity. Built fresh per query;
// only documents containing at least one query term appear.
type Scores map[string]float64

// Score evaluates the query vector against one zone of the index. Terms
// absent from the index contribute zero query weight and touch no
// documents. The query normalisation factor accumulates across all terms
// and divides every score once at the end; a zero norm means nothing
// matched and the empty score map is returned as is.
func Score(vec queryvec.Vector, idx index.InvertedIndex, docs map[string]index.DocInfo, corpusSize int, zone index.Zone) Scores {
	scores := make(Scores)
	queryNorm := 0.0
	// Terms are visited in sorted order so floating-point accumulation is
	// reproducible run to run; map iteration order is not.
	terms := make([]string, 0, len(vec))
	for term := range vec {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		tf := vec[term]
		// Expansion may clamp a weight to exactly 0; such a term carries
		// no signal and must not reach the log.
		if tf <= 0 {
			continue
		}
		pl, ok := idx[term]
		if !ok {
			continue
		}
		idf := math.Log10(float64(corpusSize) / float64(pl.DocFreq))
		qscore := (1 + math.Log10(tf)) * idf
		queryNorm += qscore * qscore
		for docID, val := range pl.Postings {
			docTF := 1 + math.Log10(float64(val))
			norm := docNorm(docs, docID, zone)
			scores[docID] += qscore * docTF / norm
		}
	}
	queryNorm = math.Sqrt(queryNorm)
	if queryNorm > 0 {
		for docID := range scores {
			scores[docID] /= queryNorm
		}
	}
	return scores
}

func docNorm(docs map[string]index.DocInfo, docID string, zone index.Zone) float64 {
	info := docs[docID]
	if zone == index.ZoneTitle {
		return info.TitleNorm
	}
	return info.ContentNorm
}

// MergeZones blends content and title scores over the union of their
// documents: final = content*(1-w) + title*w, with absent entries scoring
// zero in the zone they miss.
func MergeZones(content, title Scores, titleWeight float64) Scores {
	merged := make(Scores, len(content))
	for docID, score := range content {
		merged[docID] = score * (1 - titleWeight)
	}
	for docID, score := range title {
		merged[docID] += score * titleWeight
	}
	return merged
}
