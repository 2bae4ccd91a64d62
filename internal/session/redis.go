package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "tripwise:session:"

	// DefaultTTL is how long an idle session survives in Redis.
	DefaultTTL = 24 * time.Hour
)

// RedisStore implements Store on Redis with WATCH/MULTI optimistic
// locking, for deployments where sessions must outlive one process.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create implements Store. The session TTL starts counting here and is
// refreshed on every read and write.
func (s *RedisStore) Create(ctx context.Context, data *Data) error {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	val, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	return s.client.Set(ctx, s.key(data.ID), val, s.ttl).Err()
}

// Get implements Store. A missing session returns (nil, nil).
func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	key := s.key(id)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("unmarshalling session: %w", err)
	}

	// Keep active sessions alive; a failed refresh is not fatal.
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &data, nil
}

// Update implements Store using WATCH/MULTI/EXEC for optimistic locking.
func (s *RedisStore) Update(ctx context.Context, data *Data) error {
	key := s.key(data.ID)

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}

		var stored Data
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return fmt.Errorf("unmarshalling session: %w", err)
		}
		if stored.Version != data.Version {
			return ErrVersionConflict
		}

		data.Version++
		data.UpdatedAt = time.Now()

		newVal, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshalling session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newVal, s.ttl)
			return nil
		})
		return err
	}, key)
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}
