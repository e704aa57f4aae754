// Package searcher evaluates queries against an immutable index snapshot:
// vectorize, optionally expand, score per zone, merge, and select top K.
package searcher

import (
	"context"
	"time"

	"vsmsearch/internal/embedding"
	"vsmsearch/internal/indexer/index"
	"vsmsearch/internal/searcher/queryvec"
	"vsmsearch/internal/searcher/scorer"
	"vsmsearch/internal/searcher/topk"
	"vsmsearch/internal/store"
	"vsmsearch/pkg/config"
	"vsmsearch/pkg/logger"
	"vsmsearch/pkg/metrics"
)

// Result is the outcome of one query evaluation.
type Result struct {
	Query     string           `json:"query"`
	TotalHits int              `json:"total_hits"`
	Results   []topk.ScoredDoc `json:"results"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// Searcher scores queries against a loaded snapshot. The snapshot is
// read-only, so one Searcher may serve concurrent queries; a reindex swaps
// in a new Searcher rather than mutating this one.
type Searcher struct {
	snapshot *store.Store
	sim      embedding.Similarity
	cfg      config.QueryConfig
	metrics  *metrics.Metrics
}

// New creates a Searcher. sim may be nil when expansion is disabled;
// metrics may be nil.
func New(snapshot *store.Store, sim embedding.Similarity, cfg config.QueryConfig, m *metrics.Metrics) *Searcher {
	return &Searcher{
		snapshot: snapshot,
		sim:      sim,
		cfg:      cfg,
		metrics:  m,
	}
}

// Search evaluates a raw query and returns the top-K ranked documents with
// the elapsed evaluation time. An empty query or a query sharing no terms
// with the corpus yields an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, query string) (*Result, error) {
	log := logger.FromContext(ctx).With("component", "searcher")
	start := time.Now()
	vec := queryvec.Vectorize(query)
	if s.cfg.ExpandQuery && s.sim != nil {
		before := len(vec)
		vec = queryvec.Expand(vec, s.sim, s.cfg.MaxSynonyms)
		if s.metrics != nil {
			s.metrics.ExpansionTermsAdded.Observe(float64(len(vec) - before))
		}
	}

	corpusSize := s.snapshot.CorpusSize()
	scores := scorer.Score(vec, s.snapshot.Content, s.snapshot.Docs, corpusSize, index.ZoneContent)
	if s.snapshot.Zoned {
		titleScores := scorer.Score(vec, s.snapshot.Title, s.snapshot.Docs, corpusSize, index.ZoneTitle)
		scores = scorer.MergeZones(scores, titleScores, s.cfg.TitleWeight)
	}

	ranked := topk.Select(scores, s.cfg.TopK)
	for i := range ranked {
		ranked[i].Name = s.snapshot.Docs[ranked[i].DocID].Name
	}
	result := &Result{
		Query:     query,
		TotalHits: len(scores),
		Results:   ranked,
		Elapsed:   time.Since(start),
	}
	if s.metrics != nil {
		if len(ranked) == 0 {
			s.metrics.QueriesTotal.WithLabelValues("zero_result").Inc()
		} else {
			s.metrics.QueriesTotal.WithLabelValues("hit").Inc()
		}
		s.metrics.QueryResultsCount.Observe(float64(len(ranked)))
	}
	log.Debug("query evaluated",
		"query", query,
		"terms", len(vec),
		"hits", len(scores),
		"results", len(ranked),
		"elapsed", result.Elapsed,
	)
	return result, nil
}
