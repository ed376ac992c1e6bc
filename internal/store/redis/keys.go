package redis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// KeyPrefixKV is the prefix for settings keys
	KeyPrefixKV = "index:kv:"
	// KeyAllKV is the key for the set of all settings keys
	KeyAllKV = "index:kv:all"
	// KeyPrefixSuggest is the prefix for cached suggestion responses
	KeyPrefixSuggest = "index:suggest:"
)

// KVKey returns the Redis key for a settings key
func KVKey(key string) string {
	return KeyPrefixKV + key
}

// AllKVKey returns the key for the set of all settings keys
func AllKVKey() string {
	return KeyAllKV
}

// SuggestKey returns the cache key for a provider/query pair.
// The provider template is hashed so long URLs do not bloat the keyspace.
func SuggestKey(provider, query string) string {
	sum := sha256.Sum256([]byte(provider))
	return KeyPrefixSuggest + hex.EncodeToString(sum[:])[:12] + ":" + strings.ToLower(query)
}

// ExtractKVKey extracts the settings key from a Redis key
func ExtractKVKey(key string) (string, error) {
	if len(key) <= len(KeyPrefixKV) || !strings.HasPrefix(key, KeyPrefixKV) {
		return "", fmt.Errorf("invalid settings key: %s", key)
	}
	return key[len(KeyPrefixKV):], nil
}
