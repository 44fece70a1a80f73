// Package cache stores dashboard snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-backoffice/internal/logger"
)

// KeyPrefix namespaces every snapshot key.
const KeyPrefix = "backoffice:"

var ErrMiss = errors.New("cache: miss")

// Client is the subset of *redis.Client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// SnapshotCache keeps JSON snapshots for a fixed TTL.
type SnapshotCache struct {
	Client Client
	TTL    time.Duration
}

func NewSnapshotCache(client Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{Client: client, TTL: ttl}
}

// Key builds a namespaced key from its parts, e.g. Key("dashboard", "event", id).
func Key(parts ...string) string {
	return KeyPrefix + strings.Join(parts, ":")
}

// Get decodes the snapshot at key into dest. It returns ErrMiss when the key
// is absent.
func (c *SnapshotCache) Get(ctx context.Context, key string, dest any) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	} else if err != nil {
		return fmt.Errorf("get snapshot %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, v any) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("store snapshot %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes every key starting with prefix.
func (c *SnapshotCache) Invalidate(ctx context.Context, prefix string) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	var cursor uint64
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := c.Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete %s: %w", prefix, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Connect opens a Redis client and checks it with a ping.
func Connect(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	if log != nil {
		log.Info("REDIS", fmt.Sprintf("Connected to Redis at %s for dashboard snapshots", addr))
	}
	return client, nil
}
