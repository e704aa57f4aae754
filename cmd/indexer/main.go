// Builds the inverted index from the configured corpus source and persists
// it to disk. Run with -zoned to also build the title index and trim content
// posting lists to champion lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vsmsearch/internal/corpus"
	"vsmsearch/internal/indexer"
	"vsmsearch/pkg/config"
	"vsmsearch/pkg/logger"
	"vsmsearch/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to config file")
	zoned := flag.Bool("zoned", false, "build the zoned (title) index as well")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *zoned {
		cfg.Index.Zoned = true
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting index build",
		"corpus_source", cfg.Corpus.Source,
		"data_dir", cfg.Index.DataDir,
		"zoned", cfg.Index.Zoned,
		"workers", cfg.Index.BuildWorkers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	src, err := corpus.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open corpus source", "error", err)
		os.Exit(1)
	}
	defer src.Close()

	engine := indexer.NewEngine(cfg.Index, m)
	snapshot, err := engine.BuildAndSave(ctx, src)
	if err != nil {
		slog.Error("index build failed", "error", err)
		os.Exit(1)
	}

	slog.Info("done",
		"corpus_size", snapshot.CorpusSize(),
		"vocabulary_size", len(snapshot.Content),
	)
}
