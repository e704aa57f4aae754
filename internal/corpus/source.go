// Package corpus delivers (id, title, text) document triples to the index
// builder. Parsing and validation of raw corpora stay out of the engine
// core; the sources here are deliberately thin collaborators.
package corpus

import (
	"context"

	"vsmsearch/internal/indexer/index"
	"vsmsearch/pkg/config"
	pkgerrors "vsmsearch/pkg/errors"
)

// Source yields corpus documents one at a time. Next returns io.EOF after
// the last document. Order is not significant to the build.
type Source interface {
	Next(ctx context.Context) (index.Document, error)
	Close() error
}

// Open constructs the configured corpus source.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Corpus.Source {
	case "jsonl", "":
		return OpenJSONL(cfg.Corpus.Dir)
	case "postgres":
		return OpenPostgres(ctx, cfg.Postgres)
	}
	return nil, pkgerrors.Newf(pkgerrors.ErrInvalidInput, "unknown corpus source %q", cfg.Corpus.Source)
}
