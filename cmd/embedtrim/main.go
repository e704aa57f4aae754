// Trims raw GloVe embeddings to the corpus vocabulary of the persisted
// content index and saves the reduced model. Run the indexer first.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"vsmsearch/internal/embedding"
	"vsmsearch/internal/store"
	"vsmsearch/pkg/config"
	pkgerrors "vsmsearch/pkg/errors"
	"vsmsearch/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	// Vocabulary comes from the basic index; the zoned content index is
	// champion-trimmed but shares the same term set.
	snapshot, err := store.Load(cfg.Index.DataDir, false)
	if err != nil {
		if pkgerrors.IsFatalArtifact(err) {
			fmt.Fprintln(os.Stderr, "index not available; run the indexer first")
		}
		slog.Error("failed to load index", "error", err)
		os.Exit(1)
	}

	slog.Info("loading raw embeddings", "path", cfg.Embeddings.RawPath)
	raw, err := embedding.LoadWord2VecText(cfg.Embeddings.RawPath)
	if err != nil {
		slog.Error("failed to load raw embeddings", "error", err)
		os.Exit(1)
	}

	vocab := make(map[string]struct{}, len(snapshot.Content))
	for term := range snapshot.Content {
		vocab[term] = struct{}{}
	}
	trimmed := raw.Trim(vocab)
	if err := trimmed.Save(cfg.Embeddings.ModelPath); err != nil {
		slog.Error("failed to save trimmed model", "error", err)
		os.Exit(1)
	}

	slog.Info("embeddings extracted and saved",
		"raw_terms", raw.Len(),
		"vocabulary", len(vocab),
		"kept_terms", trimmed.Len(),
		"path", cfg.Embeddings.ModelPath,
	)
}
