package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgerrors "vsmsearch/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Index.ChampionListSize != 100 {
		t.Errorf("championListSize = %d, want 100", cfg.Index.ChampionListSize)
	}
	if cfg.Query.TopK != 10 {
		t.Errorf("topK = %d, want 10", cfg.Query.TopK)
	}
	if cfg.Query.TitleWeight != 0.1 {
		t.Errorf("titleWeight = %v, want 0.1", cfg.Query.TitleWeight)
	}
	if cfg.Query.MaxSynonyms != 7 {
		t.Errorf("maxSynonyms = %d, want 7", cfg.Query.MaxSynonyms)
	}
	if cfg.Index.Zoned || cfg.Query.ExpandQuery {
		t.Error("zoning and expansion must default to off")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
index:
  dataDir: /tmp/idx
  zoned: true
  championListSize: 50
query:
  topK: 25
redis:
  enabled: true
  cacheTTL: 90s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Index.DataDir != "/tmp/idx" || !cfg.Index.Zoned || cfg.Index.ChampionListSize != 50 {
		t.Errorf("index config not applied: %+v", cfg.Index)
	}
	if cfg.Query.TopK != 25 {
		t.Errorf("topK = %d, want 25", cfg.Query.TopK)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTL.Std() != 90*time.Second {
		t.Errorf("redis config not applied: %+v", cfg.Redis)
	}
	// Untouched sections keep their defaults.
	if cfg.Query.TitleWeight != 0.1 {
		t.Errorf("titleWeight = %v, want default 0.1", cfg.Query.TitleWeight)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VS_INDEX_ZONED", "yes")
	t.Setenv("VS_QUERY_TOP_K", "3")
	t.Setenv("VS_CORPUS_DIR", "/data/corpus")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Index.Zoned {
		t.Error("VS_INDEX_ZONED=yes not applied")
	}
	if cfg.Query.TopK != 3 {
		t.Errorf("topK = %d, want 3", cfg.Query.TopK)
	}
	if cfg.Corpus.Dir != "/data/corpus" {
		t.Errorf("corpus dir = %q", cfg.Corpus.Dir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("query:\n  titleWeight: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("titleWeight above 1 should be rejected")
	}
	if !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("missing config file should be an error")
	}
}
