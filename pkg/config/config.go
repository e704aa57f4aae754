// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (Corpus, Postgres, Index, Query, Embeddings, Redis, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pkgerrors "vsmsearch/pkg/errors"
)

// Duration is a time.Duration that unmarshals from YAML strings like "90s"
// or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the top-level application configuration.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Index      IndexConfig      `yaml:"index"`
	Query      QueryConfig      `yaml:"query"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// CorpusConfig selects and configures the corpus source.
type CorpusConfig struct {
	// Source is "jsonl" (newline-delimited JSON files under Dir) or
	// "postgres" (rows from Postgres.Table).
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
}

// PostgresConfig holds PostgreSQL connection parameters for the corpus
// source.
type PostgresConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	Database        string   `yaml:"database"`
	User            string   `yaml:"user"`
	Password        string   `yaml:"password"`
	SSLMode         string   `yaml:"sslMode"`
	Table           string   `yaml:"table"`
	MaxOpenConns    int      `yaml:"maxOpenConns"`
	MaxIdleConns    int      `yaml:"maxIdleConns"`
	ConnMaxLifetime Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// IndexConfig controls index construction and persistence.
type IndexConfig struct {
	DataDir          string `yaml:"dataDir"`
	Zoned            bool   `yaml:"zoned"`
	ChampionListSize int    `yaml:"championListSize"`
	BuildWorkers     int    `yaml:"buildWorkers"`
}

// QueryConfig controls query evaluation.
type QueryConfig struct {
	TopK        int     `yaml:"topK"`
	TitleWeight float64 `yaml:"titleWeight"`
	ExpandQuery bool    `yaml:"expandQuery"`
	MaxSynonyms int     `yaml:"maxSynonyms"`
}

// EmbeddingsConfig locates the raw and trimmed word-embedding artifacts.
type EmbeddingsConfig struct {
	RawPath   string `yaml:"rawPath"`
	ModelPath string `yaml:"modelPath"`
}

// RedisConfig holds Redis connection and query-cache parameters.
type RedisConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	PoolSize int      `yaml:"poolSize"`
	CacheTTL Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Index.ChampionListSize <= 0 {
		return pkgerrors.Newf(pkgerrors.ErrInvalidInput, "index.championListSize must be positive, got %d", c.Index.ChampionListSize)
	}
	if c.Query.TitleWeight < 0 || c.Query.TitleWeight > 1 {
		return pkgerrors.Newf(pkgerrors.ErrInvalidInput, "query.titleWeight must be in [0,1], got %g", c.Query.TitleWeight)
	}
	if c.Query.TopK <= 0 {
		return pkgerrors.Newf(pkgerrors.ErrInvalidInput, "query.topK must be positive, got %d", c.Query.TopK)
	}
	if c.Query.MaxSynonyms <= 0 {
		return pkgerrors.Newf(pkgerrors.ErrInvalidInput, "query.maxSynonyms must be positive, got %d", c.Query.MaxSynonyms)
	}
	return nil
}

// defaultConfig returns a Config with the reference deployment defaults.
func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Source: "jsonl",
			Dir:    "corpus",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "vsmsearch",
			User:            "vsmsearch",
			Password:        "localdev",
			SSLMode:         "disable",
			Table:           "documents",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration(5 * time.Minute),
		},
		Index: IndexConfig{
			DataDir:          "index_files",
			Zoned:            false,
			ChampionListSize: 100,
			BuildWorkers:     4,
		},
		Query: QueryConfig{
			TopK:        10,
			TitleWeight: 0.1,
			ExpandQuery: false,
			MaxSynonyms: 7,
		},
		Embeddings: EmbeddingsConfig{
			RawPath:   "glove.6B.100d.txt",
			ModelPath: "index_files/kv_model",
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 10,
			CacheTTL: Duration(60 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads VS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VS_CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = v
	}
	if v := os.Getenv("VS_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("VS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("VS_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("VS_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("VS_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("VS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("VS_POSTGRES_TABLE"); v != "" {
		cfg.Postgres.Table = v
	}
	if v := os.Getenv("VS_INDEX_DATA_DIR"); v != "" {
		cfg.Index.DataDir = v
	}
	if v := os.Getenv("VS_INDEX_ZONED"); v != "" {
		if zoned, ok := parseBool(v); ok {
			cfg.Index.Zoned = zoned
		}
	}
	if v := os.Getenv("VS_QUERY_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			cfg.Query.TopK = k
		}
	}
	if v := os.Getenv("VS_QUERY_EXPAND"); v != "" {
		if expand, ok := parseBool(v); ok {
			cfg.Query.ExpandQuery = expand
		}
	}
	if v := os.Getenv("VS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("VS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("VS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("VS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
			cfg.Metrics.Enabled = true
		}
	}
}

// parseBool accepts yes/no in addition to the usual true/false spellings.
func parseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, true
	case "no", "false", "0":
		return false, true
	}
	return false, false
}
