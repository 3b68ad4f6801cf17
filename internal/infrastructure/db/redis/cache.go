package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/dashboard-api/internal/api/metrics"
	"github.com/storefront/dashboard-api/internal/core/domain"
)

const (
	DefaultTopProductsTTL = 5 * time.Minute
	topProductsKey        = "top_products"
)

// TopProductsCache stores the top products ranking as one JSON value.
// Key format: <prefix>top_products
type TopProductsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTopProductsCache wraps client. A non-positive ttl uses DefaultTopProductsTTL.
func NewTopProductsCache(client *redis.Client, prefix string, ttl time.Duration) *TopProductsCache {
	if ttl <= 0 {
		ttl = DefaultTopProductsTTL
	}
	return &TopProductsCache{client: client, prefix: prefix, ttl: ttl}
}

// Get reports a miss with ok=false and a nil error.
func (c *TopProductsCache) Get(ctx context.Context) ([]*domain.TopProduct, bool, error) {
	data, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.TopProductsCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var top []*domain.TopProduct
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	metrics.TopProductsCacheTotal.WithLabelValues("hit").Inc()
	return top, true, nil
}

func (c *TopProductsCache) Set(ctx context.Context, top []*domain.TopProduct) error {
	data, err := json.Marshal(top)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *TopProductsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *TopProductsCache) key() string {
	return c.prefix + topProductsKey
}
