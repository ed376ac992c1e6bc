package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Themes
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// SearchTermsPlaceholder is substituted with the escaped query in engine
// and suggestion provider templates.
const SearchTermsPlaceholder = "{searchTerms}"

// Bounds of the password body length.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 1024
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the flat start page preferences. JSON names are the
// storage keys.
type Settings struct {
	Theme string `json:"theme"`

	// ─────────────────────────────
	// Search
	// ─────────────────────────────

	SearchEngine                   string `json:"searchEngine"`
	SuggestionProvider             string `json:"suggestionProvider"`
	MaxSuggestions                 int    `json:"maxSuggestions"`
	MaxRecentSearchesInSuggestions int    `json:"maxRecentSearchesInSuggestions"`

	BackgroundImage string `json:"backgroundImage"`

	// ─────────────────────────────
	// Password generator defaults
	// ─────────────────────────────

	PasswordLength    int    `json:"passwordLength"`
	PasswordCharset   string `json:"passwordCharset"`
	PasswordAlgorithm string `json:"passwordAlgorithm"`
	PasswordSeed      string `json:"passwordSeed"`
	PasswordEmail     string `json:"passwordEmail"`
}

// ValidateTheme accepts light, dark and system.
func ValidateTheme(theme string) error {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return nil
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, theme)
	}
}

// ValidateTemplate requires the {searchTerms} placeholder.
func ValidateTemplate(name, tmpl string) error {
	if !strings.Contains(tmpl, SearchTermsPlaceholder) {
		return fmt.Errorf("%w: %s must contain %s", ErrInvalidSettings, name, SearchTermsPlaceholder)
	}
	return nil
}

// Validate checks every field that has a constrained domain. The password
// algorithm is checked by the settings service, which knows the registry.
func (s Settings) Validate() error {
	if err := ValidateTheme(s.Theme); err != nil {
		return err
	}
	if err := ValidateTemplate("searchEngine", s.SearchEngine); err != nil {
		return err
	}
	if err := ValidateTemplate("suggestionProvider", s.SuggestionProvider); err != nil {
		return err
	}
	if s.MaxSuggestions < 0 {
		return fmt.Errorf("%w: maxSuggestions must be >= 0", ErrInvalidSettings)
	}
	if s.MaxRecentSearchesInSuggestions < 0 {
		return fmt.Errorf("%w: maxRecentSearchesInSuggestions must be >= 0", ErrInvalidSettings)
	}
	if s.PasswordLength < MinPasswordLength || s.PasswordLength > MaxPasswordLength {
		return fmt.Errorf("%w: passwordLength must be between %d and %d",
			ErrInvalidSettings, MinPasswordLength, MaxPasswordLength)
	}
	if s.PasswordCharset == "" {
		return fmt.Errorf("%w: passwordCharset must not be empty", ErrInvalidSettings)
	}
	return nil
}
