package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/password"
	"github.com/MrSnakeDoc/index/internal/store"
)

// Options tunes list caps kept by the service.
type Options struct {
	MaxRecentSearches int
	GraphHistoryLimit int
}

// Service is the typed view over the key-value store. Read-modify-write
// operations are serialised so concurrent requests do not lose updates.
type Service struct {
	kv   store.KV
	log  logger.Logger
	opts Options
	mu   sync.Mutex
}

func NewService(kv store.KV, log logger.Logger, opts Options) *Service {
	if opts.MaxRecentSearches <= 0 {
		opts.MaxRecentSearches = DefaultMaxRecentSearches
	}
	return &Service{kv: kv, log: log, opts: opts}
}

// Ping checks the underlying store.
func (s *Service) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// ─────────────────────────────
// Flat settings
// ─────────────────────────────

// Load returns the stored preferences, with defaults for absent keys.
func (s *Service) Load(ctx context.Context) (domain.Settings, error) {
	st := DefaultSettings()
	fields := []struct {
		key string
		dst any
	}{
		{KeyTheme, &st.Theme},
		{KeySearchEngine, &st.SearchEngine},
		{KeySuggestionProvider, &st.SuggestionProvider},
		{KeyMaxSuggestions, &st.MaxSuggestions},
		{KeyMaxRecentSearchesInSuggestions, &st.MaxRecentSearchesInSuggestions},
		{KeyBackgroundImage, &st.BackgroundImage},
		{KeyPasswordLength, &st.PasswordLength},
		{KeyPasswordCharset, &st.PasswordCharset},
		{KeyPasswordAlgorithm, &st.PasswordAlgorithm},
		{KeyPasswordSeed, &st.PasswordSeed},
		{KeyPasswordEmail, &st.PasswordEmail},
	}
	for _, f := range fields {
		if _, err := getJSON(ctx, s.kv, f.key, f.dst); err != nil {
			return domain.Settings{}, err
		}
	}
	return st, nil
}

// Save validates and writes every flat key.
func (s *Service) Save(ctx context.Context, st domain.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if !password.Supported(st.PasswordAlgorithm) {
		return fmt.Errorf("%w: %w %q", domain.ErrInvalidSettings, password.ErrUnsupportedAlgorithm, st.PasswordAlgorithm)
	}

	values := map[string]any{
		KeyTheme:                          st.Theme,
		KeySearchEngine:                   st.SearchEngine,
		KeySuggestionProvider:             st.SuggestionProvider,
		KeyMaxSuggestions:                 st.MaxSuggestions,
		KeyMaxRecentSearchesInSuggestions: st.MaxRecentSearchesInSuggestions,
		KeyBackgroundImage:                st.BackgroundImage,
		KeyPasswordLength:                 st.PasswordLength,
		KeyPasswordCharset:                st.PasswordCharset,
		KeyPasswordAlgorithm:              st.PasswordAlgorithm,
		KeyPasswordSeed:                   st.PasswordSeed,
		KeyPasswordEmail:                  st.PasswordEmail,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range values {
		if err := setJSON(ctx, s.kv, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the raw JSON value of key, or its default. Keys with neither
// a stored value nor a default return JSON null.
func (s *Service) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if !Known(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	raw, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, store.ErrNotFound):
		if def, ok := defaultValue(key); ok {
			return def, nil
		}
		return json.RawMessage("null"), nil
	default:
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
}

// Set validates raw and stores it under key.
func (s *Service) Set(ctx context.Context, key string, raw json.RawMessage) error {
	if err := ValidateValue(key, raw); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Service) Theme(ctx context.Context) (string, error) {
	theme := domain.ThemeSystem
	if _, err := getJSON(ctx, s.kv, KeyTheme, &theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if err := domain.ValidateTheme(theme); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return setJSON(ctx, s.kv, KeyTheme, theme)
}

// ─────────────────────────────
// Recent searches
// ─────────────────────────────

// RecentSearches returns the list most-recent-first.
func (s *Service) RecentSearches(ctx context.Context) ([]string, error) {
	var list []string
	if _, err := getJSON(ctx, s.kv, KeyRecentSearches, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddRecentSearch moves term to the front of the list and applies the cap.
func (s *Service) AddRecentSearch(ctx context.Context, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.RecentSearches(ctx)
	if err != nil {
		return err
	}
	return setJSON(ctx, s.kv, KeyRecentSearches, domain.PushRecent(list, term, s.opts.MaxRecentSearches))
}

func (s *Service) ClearRecentSearches(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, KeyRecentSearches); err != nil {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return nil
}

// ─────────────────────────────
// helpers
// ─────────────────────────────

// getJSON decodes key into dst. A missing key leaves dst untouched and
// reports found=false.
func getJSON(ctx context.Context, kv store.KV, key string, dst any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, kv store.KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
