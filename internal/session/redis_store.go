package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(c *redis.Client) *RedisStore { return &RedisStore{c: c} }

func (r *RedisStore) Save(ctx context.Context, id string, identity Identity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.c.Set(ctx, keyPrefix+id, payload, ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (Identity, error) {
	val, err := r.c.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, err
	}
	var identity Identity
	if err := json.Unmarshal(val, &identity); err != nil {
		return Identity{}, fmt.Errorf("decode session: %w", err)
	}
	return identity, nil
}

// Delete succeeds for ids that no longer exist.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.c.Del(ctx, keyPrefix+id).Err()
}
