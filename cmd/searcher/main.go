// Interactive query loop over a persisted index snapshot. Results print as
// (document id, document name, cosine similarity score) with the elapsed
// query time. The index must exist before this runs; a missing artifact is
// fatal, with a hint to rebuild.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"vsmsearch/internal/embedding"
	"vsmsearch/internal/searcher"
	"vsmsearch/internal/searcher/cache"
	"vsmsearch/internal/store"
	"vsmsearch/pkg/config"
	pkgerrors "vsmsearch/pkg/errors"
	"vsmsearch/pkg/health"
	"vsmsearch/pkg/logger"
	"vsmsearch/pkg/metrics"
	pkgredis "vsmsearch/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to config file")
	zoned := flag.Bool("zoned", false, "score titles using the zoned index")
	expand := flag.Bool("expand", false, "expand queries with embedding synonyms")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *zoned {
		cfg.Index.Zoned = true
	}
	if *expand {
		cfg.Query.ExpandQuery = true
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	snapshot, err := store.Load(cfg.Index.DataDir, cfg.Index.Zoned)
	if err != nil {
		if pkgerrors.IsFatalArtifact(err) {
			fmt.Fprintln(os.Stderr, "index not available; run the indexer first")
		}
		slog.Error("failed to load index", "error", err)
		os.Exit(1)
	}
	slog.Info("index loaded",
		"corpus_size", snapshot.CorpusSize(),
		"vocabulary_size", len(snapshot.Content),
		"zoned", snapshot.Zoned,
	)

	var sim embedding.Similarity
	if cfg.Query.ExpandQuery {
		model, err := embedding.LoadModel(cfg.Embeddings.ModelPath)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrEmbeddingsMissing) {
				fmt.Fprintln(os.Stderr, "word embeddings not available; run embedtrim first")
			}
			slog.Error("failed to load embeddings", "error", err)
			os.Exit(1)
		}
		sim = model
		slog.Info("embedding model loaded", "terms", model.Len())
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	s := searcher.New(snapshot, sim, cfg.Query, m)

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis)
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL.Std())
		}
	}

	if cfg.Metrics.Enabled {
		checker := health.NewChecker()
		checker.Register("index", func(ctx context.Context) health.ComponentHealth {
			if snapshot.CorpusSize() > 0 {
				return health.ComponentHealth{
					Status:  health.StatusUp,
					Message: fmt.Sprintf("%d documents", snapshot.CorpusSize()),
				}
			}
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "empty index"}
		})
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			if redisClient == nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
			}
			if err := redisClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
		shutdown := metrics.StartServer(cfg.Metrics.Port, map[string]http.HandlerFunc{
			"/health/ready": checker.ReadyHandler(),
		})
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	runLoop(cfg, s, queryCache, m)

	if queryCache != nil {
		hits, misses := queryCache.Stats()
		slog.Info("query cache session stats", "hits", hits, "misses", misses)
	}
}

func runLoop(cfg *config.Config, s *searcher.Searcher, queryCache *cache.QueryCache, m *metrics.Metrics) {
	variant := cache.Variant(cfg.Query, cfg.Index.Zoned)
	stdin := bufio.NewScanner(os.Stdin)
	seq := 0
	for {
		fmt.Print("Enter query here: ")
		if !stdin.Scan() {
			return
		}
		query := strings.TrimSpace(stdin.Text())
		if query == "" {
			continue
		}
		seq++
		// Each evaluation carries a query id so its log lines can be
		// correlated across the cache and the searcher.
		ctx := logger.WithQueryID(context.Background(), fmt.Sprintf("q-%06d", seq))

		start := time.Now()
		result, cached, err := evaluate(ctx, query, variant, s, queryCache)
		if err != nil {
			logger.FromContext(ctx).Error("query failed", "query", query, "error", err)
			continue
		}
		if m != nil {
			status := "off"
			if queryCache != nil {
				status = "miss"
				if cached {
					status = "hit"
				}
			}
			m.QueryLatency.WithLabelValues(status).Observe(time.Since(start).Seconds())
			if cached {
				m.CacheHitsTotal.Inc()
			} else if queryCache != nil {
				m.CacheMissesTotal.Inc()
			}
		}
		printResults(result)
	}
}

func evaluate(ctx context.Context, query, variant string, s *searcher.Searcher, queryCache *cache.QueryCache) (*searcher.Result, bool, error) {
	if queryCache == nil {
		result, err := s.Search(ctx, query)
		return result, false, err
	}
	return queryCache.GetOrCompute(ctx, query, variant, func() (*searcher.Result, error) {
		return s.Search(ctx, query)
	})
}

func printResults(result *searcher.Result) {
	if len(result.Results) == 0 {
		fmt.Println("No matching results found")
		fmt.Println()
		return
	}
	fmt.Printf("Results obtained in %.6f seconds\n", result.Elapsed.Seconds())
	dash := strings.Repeat("-", 110)
	fmt.Println(dash)
	fmt.Printf("%-8s%-90s%5s\n", "ID", "Title", "Score")
	fmt.Println(dash)
	for _, doc := range result.Results {
		fmt.Printf("%-8s%-90s%5.5f\n", doc.DocID, doc.Name, doc.Score)
	}
	fmt.Println()
}
