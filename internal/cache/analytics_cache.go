package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formflow/internal/model"
)

// AnalyticsCache memoizes computed snapshots per form. Snapshots are derived
// data: a miss just means recomputing.
type AnalyticsCache interface {
	Get(ctx context.Context, formID string) (*model.AnalyticsSnapshot, error)
	Set(ctx context.Context, snap *model.AnalyticsSnapshot) error
	Invalidate(ctx context.Context, formID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *analyticsCache) key(formID string) string {
	return fmt.Sprintf("form:%s:analytics", formID)
}

func (c *analyticsCache) Get(ctx context.Context, formID string) (*model.AnalyticsSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap model.AnalyticsSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *analyticsCache) Set(ctx context.Context, snap *model.AnalyticsSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(snap.FormID), data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
