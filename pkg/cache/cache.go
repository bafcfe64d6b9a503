// Package cache is the Redis-backed read cache for catalogue listings.
//
// Writes to products or categories invalidate by key prefix rather than
// flushing the whole database, so unrelated cached data survives:
//
//	cache.ForgetPrefix("catalog:products:")
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/config"
	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies the connection with a
// ping. On error RDB stays nil and every cache operation becomes a no-op,
// so the store keeps serving straight from the database.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// ForgetPrefix deletes every key under the given prefix using SCAN, so
// invalidation stays targeted to one entity family.
func ForgetPrefix(prefix string) error {
	if RDB == nil {
		return nil
	}

	iter := RDB.Scan(Ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(Ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: scan %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
