package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/index/internal/store"
)

// Store implements store.KV on top of Redis. Settings never expire.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Get retrieves a settings value
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, KVKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set stores a settings value and tracks the key in the index set
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KVKey(key), value, 0)
	pipe.SAdd(ctx, AllKVKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes a settings value
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, KVKey(key))
	pipe.SRem(ctx, AllKVKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all tracked settings keys, sorted
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, AllKVKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op: the client is owned by the app and closed there.
func (s *Store) Close() error { return nil }
