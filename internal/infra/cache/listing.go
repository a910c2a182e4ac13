package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"invoice-dashboard/internal/pkg/errs"
	"invoice-dashboard/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// Redis key namespace for cached listing pages. Every page of the invoice
// listing lives under this prefix so invalidation can sweep them all.
const listingKeyPrefix = "cache:"

type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) GetList(ctx context.Context, key string) ([]queries.InvoiceView, bool) {
	payload, err := c.rdb.Get(ctx, listingKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("listing cache read failed", "key", key, "error", err.Error())
		}
		return nil, false
	}

	var views []queries.InvoiceView
	if err := json.Unmarshal(payload, &views); err != nil {
		slog.Warn("listing cache entry corrupt, dropping", "key", key, "error", err.Error())
		c.rdb.Del(ctx, listingKeyPrefix+key)
		return nil, false
	}
	return views, true
}

func (c *ListingCache) SetList(ctx context.Context, key string, views []queries.InvoiceView) {
	payload, err := json.Marshal(views)
	if err != nil {
		slog.Warn("listing cache encode failed", "key", key, "error", err.Error())
		return
	}
	if err := c.rdb.Set(ctx, listingKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		slog.Warn("listing cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate sweeps every cached page under the listing route so the next
// read recomputes from the database.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	pattern := listingKeyPrefix + queries.ListingRoute + "*"

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errs.Wrap(err, "failed to scan listing cache keys")
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err, "failed to delete listing cache keys")
	}
	return nil
}
