package domain

import (
	"errors"
	"testing"
)

func validSettings() Settings {
	return Settings{
		Theme:              ThemeSystem,
		SearchEngine:       "https://www.google.com/search?q={searchTerms}",
		SuggestionProvider: "https://suggest.example/?q={searchTerms}",
		MaxSuggestions:     8,
		PasswordLength:     16,
		PasswordCharset:    "abc",
		PasswordAlgorithm:  "blake3",
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Settings) {}},
		{name: "bad theme", mutate: func(s *Settings) { s.Theme = "neon" }, wantErr: true},
		{name: "engine without placeholder", mutate: func(s *Settings) { s.SearchEngine = "https://x.example/" }, wantErr: true},
		{name: "provider without placeholder", mutate: func(s *Settings) { s.SuggestionProvider = "" }, wantErr: true},
		{name: "negative max suggestions", mutate: func(s *Settings) { s.MaxSuggestions = -1 }, wantErr: true},
		{name: "short password", mutate: func(s *Settings) { s.PasswordLength = 7 }, wantErr: true},
		{name: "minimum password", mutate: func(s *Settings) { s.PasswordLength = MinPasswordLength }},
		{name: "maximum password", mutate: func(s *Settings) { s.PasswordLength = MaxPasswordLength }},
		{name: "long password", mutate: func(s *Settings) { s.PasswordLength = MaxPasswordLength + 1 }, wantErr: true},
		{name: "empty charset", mutate: func(s *Settings) { s.PasswordCharset = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() error = %v, want ErrInvalidSettings", err)
			}
		})
	}
}
