package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majikku/community-api/internal/core/domain"
)

// CapabilityCache stores resolved capability snapshots per actor with a TTL,
// so the Discord member lookup is not repeated on every request.
// Key format: caps:<actor_id>
type CapabilityCache struct {
	client *redis.Client
}

// NewCapabilityCache creates a CapabilityCache wrapping the given Redis client.
func NewCapabilityCache(client *redis.Client) *CapabilityCache {
	return &CapabilityCache{client: client}
}

// Get returns the cached capability set for actorID and whether it was found.
func (c *CapabilityCache) Get(ctx context.Context, actorID string) (domain.CapabilitySet, bool, error) {
	raw, err := c.client.Get(ctx, c.key(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.CapabilitySet{}, false, nil
		}
		return domain.CapabilitySet{}, false, fmt.Errorf("capability cache get: %w", err)
	}

	var caps domain.CapabilitySet
	if err := json.Unmarshal(raw, &caps); err != nil {
		return domain.CapabilitySet{}, false, fmt.Errorf("capability cache decode: %w", err)
	}
	return caps, true, nil
}

// Set stores the capability set for actorID, expiring after ttl.
func (c *CapabilityCache) Set(ctx context.Context, actorID string, caps domain.CapabilitySet, ttl time.Duration) error {
	raw, err := json.Marshal(caps)
	if err != nil {
		return fmt.Errorf("capability cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(actorID), raw, ttl).Err()
}

func (c *CapabilityCache) key(actorID string) string {
	return "caps:" + actorID
}
