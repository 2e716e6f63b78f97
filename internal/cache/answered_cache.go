package cache

import (
	"context"
	"time"

	"engagesurvey/internal/model"

	"github.com/redis/go-redis/v9"
)

// AnsweredCache keeps a short-lived copy of the answered folder keys.
// Answered keys only ever grow, so every write is a union: a slow reader
// storing an old snapshot can never remove a key added by a newer submit.
type AnsweredCache interface {
	Get(ctx context.Context) (model.KeySet, bool, error)
	Set(ctx context.Context, keys model.KeySet) error
	Add(ctx context.Context, keys ...model.ContentKey) error
	Invalidate(ctx context.Context) error
}

type answeredCache struct {
	client *redis.Client
	ttl    time.Duration
}

const (
	answeredKey       = "answered:folders"
	answeredMarkerKey = "answered:loaded"
)

// NewAnsweredCache creates an answered-key cache
func NewAnsweredCache(client *redis.Client, ttl time.Duration) AnsweredCache {
	return &answeredCache{
		client: client,
		ttl:    ttl,
	}
}

// Get reports found=false when the set has not been loaded or has expired.
// A marker key distinguishes "loaded, nothing answered" from "not loaded".
func (c *answeredCache) Get(ctx context.Context) (model.KeySet, bool, error) {
	loaded, err := c.client.Exists(ctx, answeredMarkerKey).Result()
	if err != nil {
		return nil, false, err
	}
	if loaded == 0 {
		return nil, false, nil
	}

	members, err := c.client.SMembers(ctx, answeredKey).Result()
	if err != nil {
		return nil, false, err
	}
	keys := make(model.KeySet, len(members))
	for _, m := range members {
		keys.Add(model.ContentKey(m))
	}
	return keys, true, nil
}

// Set merges a store snapshot into the cached set and marks it loaded
func (c *answeredCache) Set(ctx context.Context, keys model.KeySet) error {
	pipe := c.client.TxPipeline()
	if len(keys) > 0 {
		pipe.SAdd(ctx, answeredKey, members(keys.Sorted())...)
	}
	pipe.Expire(ctx, answeredKey, c.ttl)
	pipe.Set(ctx, answeredMarkerKey, "1", c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Add records newly answered keys. It does not mark the set loaded, so keys
// added before the first Set are kept and merged with that snapshot.
func (c *answeredCache) Add(ctx context.Context, keys ...model.ContentKey) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, answeredKey, members(keys)...)
	pipe.Expire(ctx, answeredKey, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *answeredCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, answeredMarkerKey, answeredKey).Err()
}

func members(keys []model.ContentKey) []interface{} {
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
