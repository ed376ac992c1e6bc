package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MrSnakeDoc/index/internal/store"
)

var bucketSettings = []byte("settings")

// Store is the bbolt-backed settings store. One bucket, one key per setting.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}
	return s, nil
}

func (s *Store) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSettings); err != nil {
			return fmt.Errorf("failed to create settings bucket: %w", err)
		}
		return nil
	})
}

// Get returns the value stored under key, or store.ErrNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return store.ErrNotFound
		}
		// bbolt memory is only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

func (s *Store) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		return nil
	})
}

// Keys lists keys in byte order (bbolt keeps them sorted).
func (s *Store) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Ping checks that the database is still open and readable.
func (s *Store) Ping(context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSettings) == nil {
			return errors.New("settings bucket not found")
		}
		return nil
	})
}

// Path returns the database file path.
func (s *Store) Path() string { return s.db.Path() }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
