package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/store"
)

var ErrInvalidImport = errors.New("invalid settings import")

// ExportFilename is the download name for an export taken at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("INDEX_%d_settings.json", t.UnixMilli())
}

// Export returns every key that has a stored value.
func (s *Service) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]json.RawMessage)
	for _, key := range Keys() {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to export %s: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}

// Import writes the known keys present in the JSON object read from r.
// Every value is validated before anything is written, so a rejected
// import leaves the store untouched. Unknown keys and null values are
// skipped. The written keys are returned sorted.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidImport)
	}

	accepted := make(map[string]json.RawMessage, len(doc))
	for key, raw := range doc {
		if !Known(key) {
			s.log.Warn("ignoring unknown settings key", logger.String("key", key))
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := ValidateValue(key, raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		accepted[key] = raw
	}

	keys := make([]string, 0, len(accepted))
	for key := range accepted {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if err := s.kv.Set(ctx, key, accepted[key]); err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", key, err)
		}
	}

	s.log.Info("settings imported", logger.Strings("keys", keys))
	return keys, nil
}
