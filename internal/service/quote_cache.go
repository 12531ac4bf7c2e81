package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/zhixin-lin/finance/internal/domain"
)

const cacheExpiration = 5 * time.Minute

// CachedQuoteProvider wraps a QuoteProvider with a Redis cache. Cache
// failures are logged and fall through to the live provider, so losing
// Redis degrades latency, never correctness.
type CachedQuoteProvider struct {
	provider domain.QuoteProvider
	rdb      *redis.Client
}

// NewCachedQuoteProvider creates a caching wrapper around the given provider
func NewCachedQuoteProvider(provider domain.QuoteProvider, rdb *redis.Client) *CachedQuoteProvider {
	return &CachedQuoteProvider{
		provider: provider,
		rdb:      rdb,
	}
}

// Lookup returns the cached quote when fresh, otherwise fetches from the
// wrapped provider and caches the result.
func (c *CachedQuoteProvider) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	key := fmt.Sprintf("quote:%s", symbol)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var quote domain.Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return &quote, nil
		}
		// Corrupt cache entry, fall through to the live provider
		log.Printf("WARNING: Dropping unreadable cache entry for %s", symbol)
		c.rdb.Del(ctx, key)
	}

	quote, err := c.provider.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(quote)
	if err == nil {
		if err := c.rdb.Set(ctx, key, data, cacheExpiration).Err(); err != nil {
			log.Printf("WARNING: Failed to cache quote for %s: %v", symbol, err)
		}
	}

	return quote, nil
}
