// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a byte-oriented key-value cache on top of a Redis client.
type Cache struct {
	client *redis.Client
	// miss is returned from Get when the key does not exist.
	miss error
}

// NewCache returns a Cache that reports absent keys as miss.
func NewCache(client *redis.Client, miss error) *Cache {
	return &Cache{client: client, miss: miss}
}

// Get returns the value stored at key.
func (cache *Cache) Get(context stdctx.Context, key string) ([]byte, error) {
	value, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.miss
		}
		return nil, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return value, nil
}

// Set stores value at key with the given TTL.
func (cache *Cache) Set(context stdctx.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

// Delete removes keys. Absent keys are not an error.
func (cache *Cache) Delete(context stdctx.Context, keys ...string) error {
	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}
	return nil
}
