package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Searcher is the search surface the cache wraps and the cascade consumes.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

const defaultCacheTTL = 10 * time.Minute

// CachedClient memoizes successful provider responses in Redis. Cache
// failures are logged and ignored: the cache is an optimization, never a
// dependency.
type CachedClient struct {
	inner Searcher
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedClient(inner Searcher, rdb *redis.Client) *CachedClient {
	return &CachedClient{inner: inner, rdb: rdb, ttl: defaultCacheTTL}
}

// NewRedisClient parses a redis URL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

func (c *CachedClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	key := cacheKey(req)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached SearchResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		log.Printf("[adzuna] dropping unreadable cache entry %s", key)
	} else if err != redis.Nil {
		log.Printf("[adzuna] cache read failed: %v", err)
	}

	resp, err := c.inner.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(resp); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Printf("[adzuna] cache write failed: %v", err)
		}
	}
	return resp, nil
}

func cacheKey(req SearchRequest) string {
	return fmt.Sprintf("adzuna:search:%s|%s|%s|%d|%d",
		req.What, req.Where, req.Category, req.Page, req.ResultsPerPage)
}
