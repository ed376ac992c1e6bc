// Package store defines the key-value contract every settings backend satisfies.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// KV is a flat key -> JSON blob store. Values are opaque bytes; the settings
// layer owns the encoding.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by INDEX_STORE.
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)
