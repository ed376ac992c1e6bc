package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/password"
)

// Storage keys. Each value is stored JSON-encoded under its own key.
const (
	KeyTheme                          = "theme"
	KeySearchEngine                   = "searchEngine"
	KeySuggestionProvider             = "suggestionProvider"
	KeyMaxSuggestions                 = "maxSuggestions"
	KeyMaxRecentSearchesInSuggestions = "maxRecentSearchesInSuggestions"
	KeyRecentSearches                 = "recentSearches"
	KeyBookmarks                      = "bookmarks"
	KeyBackgroundImage                = "backgroundImage"
	KeyPasswordLength                 = "passwordLength"
	KeyPasswordCharset                = "passwordCharset"
	KeyPasswordAlgorithm              = "passwordAlgorithm"
	KeyPasswordSeed                   = "passwordSeed"
	KeyPasswordEmail                  = "passwordEmail"
	KeyChatHistory                    = "chatHistory"
	KeyGraphHistory                   = "graphHistory"
)

// Defaults
const (
	DefaultSearchEngine       = "https://www.google.com/search?q={searchTerms}"
	DefaultSuggestionProvider = "https://suggestqueries.google.com/complete/search?client=firefox&q={searchTerms}"
	DefaultMaxSuggestions     = 8
	DefaultMaxRecentInSuggest = 3
	DefaultMaxRecentSearches  = 10
)

var ErrUnknownKey = errors.New("unknown settings key")

// Keys lists every storage key in a stable order.
func Keys() []string {
	return []string{
		KeyTheme,
		KeySearchEngine,
		KeySuggestionProvider,
		KeyMaxSuggestions,
		KeyMaxRecentSearchesInSuggestions,
		KeyRecentSearches,
		KeyBookmarks,
		KeyBackgroundImage,
		KeyPasswordLength,
		KeyPasswordCharset,
		KeyPasswordAlgorithm,
		KeyPasswordSeed,
		KeyPasswordEmail,
		KeyChatHistory,
		KeyGraphHistory,
	}
}

// Known reports whether key is a storage key.
func Known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// DefaultSettings returns the preferences of a fresh install.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Theme:                          domain.ThemeSystem,
		SearchEngine:                   DefaultSearchEngine,
		SuggestionProvider:             DefaultSuggestionProvider,
		MaxSuggestions:                 DefaultMaxSuggestions,
		MaxRecentSearchesInSuggestions: DefaultMaxRecentInSuggest,
		PasswordLength:                 password.DefaultLength,
		PasswordCharset:                password.DefaultCharset,
		PasswordAlgorithm:              password.DefaultAlgorithm,
	}
}

// defaultValue returns the JSON encoding of the default for key. Keys with
// no default (lists, free text) report ok=false.
func defaultValue(key string) (json.RawMessage, bool) {
	d := DefaultSettings()
	var v any
	switch key {
	case KeyTheme:
		v = d.Theme
	case KeySearchEngine:
		v = d.SearchEngine
	case KeySuggestionProvider:
		v = d.SuggestionProvider
	case KeyMaxSuggestions:
		v = d.MaxSuggestions
	case KeyMaxRecentSearchesInSuggestions:
		v = d.MaxRecentSearchesInSuggestions
	case KeyPasswordLength:
		v = d.PasswordLength
	case KeyPasswordCharset:
		v = d.PasswordCharset
	case KeyPasswordAlgorithm:
		v = d.PasswordAlgorithm
	default:
		return nil, false
	}
	raw, _ := json.Marshal(v)
	return raw, true
}

// ValidateValue decodes raw into the type expected for key and applies the
// key's domain rules.
func ValidateValue(key string, raw json.RawMessage) error {
	switch key {
	case KeyTheme:
		var v string
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		return domain.ValidateTheme(v)

	case KeySearchEngine, KeySuggestionProvider:
		var v string
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		return domain.ValidateTemplate(key, v)

	case KeyMaxSuggestions, KeyMaxRecentSearchesInSuggestions:
		var v int
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0", domain.ErrInvalidSettings, key)
		}
		return nil

	case KeyPasswordLength:
		var v int
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		if v < domain.MinPasswordLength || v > domain.MaxPasswordLength {
			return fmt.Errorf("%w: %s must be between %d and %d",
				domain.ErrInvalidSettings, key, domain.MinPasswordLength, domain.MaxPasswordLength)
		}
		return nil

	case KeyPasswordCharset:
		var v string
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidSettings, key)
		}
		return nil

	case KeyPasswordAlgorithm:
		var v string
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		if !password.Supported(v) {
			return fmt.Errorf("%w: %w %q", domain.ErrInvalidSettings, password.ErrUnsupportedAlgorithm, v)
		}
		return nil

	case KeyBackgroundImage, KeyPasswordSeed, KeyPasswordEmail:
		var v string
		return decode(key, raw, &v)

	case KeyRecentSearches:
		var v []string
		return decode(key, raw, &v)

	case KeyBookmarks:
		var v []domain.Bookmark
		if err := decode(key, raw, &v); err != nil {
			return err
		}
		for i := range v {
			if err := v[i].Validate(); err != nil {
				return fmt.Errorf("bookmark %d: %w", i, err)
			}
		}
		return nil

	case KeyChatHistory:
		var v []domain.ChatMessage
		return decode(key, raw, &v)

	case KeyGraphHistory:
		var v []domain.GraphHistoryEntry
		return decode(key, raw, &v)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

func decode(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidSettings, key, err)
	}
	return nil
}
