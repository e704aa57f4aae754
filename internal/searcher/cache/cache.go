// Package cache fronts the searcher with a Redis-backed query-result cache.
// Keys hash the normalised query plus the knobs that change its answer, and
// singleflight collapses concurrent identical misses into one evaluation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"vsmsearch/internal/indexer/tokenizer"
	"vsmsearch/internal/searcher"
	"vsmsearch/pkg/config"
	"vsmsearch/pkg/logger"
	pkgredis "vsmsearch/pkg/redis"
)

const keyPrefix = "vsm:query:"

type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: logger.WithComponent("query-cache"),
	}
}

func (c *QueryCache) Get(ctx context.Context, query, variant string) (*searcher.Result, bool) {
	key := c.buildKey(query, variant)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result searcher.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", query, "key", key)
	return &result, true
}

func (c *QueryCache) Set(ctx context.Context, query, variant string, result *searcher.Result) {
	key := c.buildKey(query, variant)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL.Std()); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for (query, variant) or evaluates
// computeFn once, caching its result. The bool reports whether the answer
// came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query, variant string,
	computeFn func() (*searcher.Result, error),
) (*searcher.Result, bool, error) {
	if result, ok := c.Get(ctx, query, variant); ok {
		return result, true, nil
	}
	key := c.buildKey(query, variant)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, query, variant, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*searcher.Result), false, nil
}

// Invalidate drops every cached query result, used after a reindex.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(query, variant string) string {
	terms := tokenizer.Tokenize(query)
	sort.Strings(terms)
	raw := fmt.Sprintf("%s|%s", strings.Join(terms, ","), variant)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// Variant encodes the evaluation knobs that change a query's answer.
func Variant(cfg config.QueryConfig, zoned bool) string {
	return fmt.Sprintf("zoned=%t|expand=%t|syn=%d|w=%g|k=%d",
		zoned, cfg.ExpandQuery, cfg.MaxSynonyms, cfg.TitleWeight, cfg.TopK)
}
