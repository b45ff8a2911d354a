package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodshare/foodshare-api/internal/core/ports"
)

const (
	listingKey = "listing:available"
	listingTTL = 30 * time.Second
)

// ListingCache caches the expanded available-posts listing in Redis. The TTL
// bounds staleness; mutating operations invalidate the key eagerly.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get returns the cached listing and whether the key was present.
func (c *ListingCache) Get(ctx context.Context) ([]ports.PostView, bool, error) {
	raw, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var views []ports.PostView
	if err := json.Unmarshal(raw, &views); err != nil {
		// A corrupt entry is treated as a miss; it expires on its own.
		return nil, false, nil
	}
	return views, true, nil
}

// Set stores the listing with the cache TTL.
func (c *ListingCache) Set(ctx context.Context, views []ports.PostView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("listing cache marshal: %w", err)
	}
	return c.client.Set(ctx, listingKey, raw, listingTTL).Err()
}

// Invalidate drops the cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listingKey).Err()
}
