package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type redisEnvelope struct {
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// RedisBackend stores entries as JSON envelopes under a key prefix. Redis
// expiry is set to the TTL so abandoned keys do not accumulate.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// ConnectRedis opens a client and verifies the server answers
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	return rdb, nil
}

// NewRedisBackend returns a backend keeping keys under prefix
func NewRedisBackend(client *redis.Client, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix, ttl: ttl}
}

func (b *RedisBackend) key(key string) string {
	return b.prefix + key
}

// Read fetches and decodes the envelope for key
func (b *RedisBackend) Read(ctx context.Context, key string) (Entry, error) {
	raw, err := b.client.Get(ctx, b.key(key)).Bytes()
	if err == redis.Nil {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		return Entry{}, err
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return Entry{Payload: env.Payload, CreatedAt: env.CreatedAt}, nil
}

// Write stores entry under key
func (b *RedisBackend) Write(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(redisEnvelope{CreatedAt: entry.CreatedAt, Payload: entry.Payload})
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key(key), raw, b.ttl).Err()
}

// Delete removes key
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.key(key)).Err()
}

// DeleteAll removes every key under the prefix
func (b *RedisBackend) DeleteAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := b.client.Scan(ctx, cursor, b.prefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := b.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks the redis connection
func (b *RedisBackend) Ping(ctx context.Context) error {
	if b.client == nil {
		return errors.New("redis client not configured")
	}
	return b.client.Ping(ctx).Err()
}
