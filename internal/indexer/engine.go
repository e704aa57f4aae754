// Package indexer turns a corpus into a persisted index snapshot. Documents
// are tokenized on a pool of workers; merging into the inverted index stays
// on a single goroutine, so posting-list contents never depend on worker
// scheduling.
package indexer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"vsmsearch/internal/corpus"
	"vsmsearch/internal/indexer/index"
	"vsmsearch/internal/indexer/tokenizer"
	"vsmsearch/internal/store"
	"vsmsearch/pkg/config"
	"vsmsearch/pkg/logger"
	"vsmsearch/pkg/metrics"
)

type Engine struct {
	cfg     config.IndexConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewEngine creates a build engine. metrics may be nil.
func NewEngine(cfg config.IndexConfig, m *metrics.Metrics) *Engine {
	return &Engine{
		cfg:     cfg,
		logger:  logger.WithComponent("indexer"),
		metrics: m,
	}
}

// docTerms is one tokenized document awaiting the merge phase.
type docTerms struct {
	doc        index.Document
	content    map[string]int
	titleTerms map[string]int
}

// Build constructs a fresh immutable snapshot from the corpus source. In
// zoned mode it also builds the title index and trims content posting lists
// to champion lists.
func (e *Engine) Build(ctx context.Context, src corpus.Source) (*store.Store, error) {
	start := time.Now()
	workers := e.cfg.BuildWorkers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan index.Document, workers)
	results := make(chan docTerms, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for {
			doc, err := src.Next(gctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading corpus: %w", err)
			}
			select {
			case jobs <- doc:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		g.Go(func() error {
			defer workerWG.Done()
			for doc := range jobs {
				terms := docTerms{
					doc:     doc,
					content: tokenizer.TermFrequencies(doc.Text),
				}
				if e.cfg.Zoned {
					terms.titleTerms = tokenizer.TermFrequencies(doc.Title)
				}
				select {
				case results <- terms:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workerWG.Wait()
		close(results)
	}()

	// Single-writer merge phase.
	builder := index.NewBuilder()
	for terms := range results {
		builder.AddDocument(terms.doc.ID, terms.doc.Title)
		builder.Merge(terms.doc.ID, terms.content, index.ZoneContent)
		if e.cfg.Zoned {
			builder.Merge(terms.doc.ID, terms.titleTerms, index.ZoneTitle)
		}
		if e.metrics != nil {
			e.metrics.DocsIndexedTotal.Inc()
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &store.Store{
		Content: builder.Content(),
		Docs:    builder.Docs(),
		Zoned:   e.cfg.Zoned,
	}
	if e.cfg.Zoned {
		snapshot.Title = builder.Title()
		for term, pl := range snapshot.Content {
			snapshot.Content[term] = index.ChampionList(pl, e.cfg.ChampionListSize)
		}
	}

	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.IndexBuildDuration.Observe(elapsed.Seconds())
		e.metrics.VocabularySize.WithLabelValues("content").Set(float64(len(snapshot.Content)))
		if e.cfg.Zoned {
			e.metrics.VocabularySize.WithLabelValues("title").Set(float64(len(snapshot.Title)))
		}
	}
	e.logger.Info("index build complete",
		"corpus_size", builder.DocCount(),
		"vocabulary_size", len(snapshot.Content),
		"zoned", e.cfg.Zoned,
		"elapsed", elapsed,
	)
	return snapshot, nil
}

// BuildAndSave builds a snapshot and persists it under the configured data
// directory.
func (e *Engine) BuildAndSave(ctx context.Context, src corpus.Source) (*store.Store, error) {
	snapshot, err := e.Build(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := store.Save(e.cfg.DataDir, snapshot); err != nil {
		return nil, fmt.Errorf("persisting index: %w", err)
	}
	e.logger.Info("index saved", "dir", store.Dir(e.cfg.DataDir, e.cfg.Zoned))
	return snapshot, nil
}
