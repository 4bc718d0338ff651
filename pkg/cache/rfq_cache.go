package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// RFQCacheTTL is the time-to-live for cached RFQ records.
	RFQCacheTTL = 1 * time.Hour

	rfqCacheKeyPrefix = "rfq"
)

// RFQCache is a read-model cache for RFQ records, keyed by RFQ id.
// Values are opaque JSON payloads marshaled by the application layer so this
// package stays free of domain types. Key format: "rfq:{id}".
type RFQCache struct {
	client *RedisClient
}

// NewRFQCache creates an RFQCache backed by the given RedisClient.
func NewRFQCache(r *RedisClient) *RFQCache {
	return &RFQCache{client: r}
}

// Get retrieves the cached payload for an RFQ id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *RFQCache) Get(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := c.client.Client().Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set writes the payload with the standard TTL.
func (c *RFQCache) Set(ctx context.Context, id uuid.UUID, payload []byte) error {
	if err := c.client.Client().Set(ctx, c.key(id), payload, RFQCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached RFQ. Called on every status update so readers never
// see a stale status.
func (c *RFQCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "rfq:{id}"
func (c *RFQCache) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", rfqCacheKeyPrefix, id)
}
