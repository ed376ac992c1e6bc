package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSuggestTTL is the default TTL for cached suggestion lists
const DefaultSuggestTTL = 10 * time.Minute

// CacheSuggestions stores the remote suggestions for a provider/query pair
func (s *Store) CacheSuggestions(ctx context.Context, provider, query string, suggestions []string, ttl time.Duration) error {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultSuggestTTL
	}
	if err := s.client.Set(ctx, SuggestKey(provider, query), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache suggestions: %w", err)
	}
	return nil
}

// CachedSuggestions returns cached suggestions. A miss returns (nil, false, nil).
func (s *Store) CachedSuggestions(ctx context.Context, provider, query string) ([]string, bool, error) {
	data, err := s.client.Get(ctx, SuggestKey(provider, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, fmt.Errorf("failed to get cached suggestions: %w", err)
	}

	var suggestions []string
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}
	return suggestions, true, nil
}

// FlushSuggestions removes all cached suggestion lists
func (s *Store) FlushSuggestions(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixSuggest+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush suggestions: %w", err)
	}
	return nil
}
