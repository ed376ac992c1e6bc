package redis

import (
	"strings"
	"testing"
)

func TestExtractKVKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "valid key", key: KVKey("theme"), want: "theme"},
		{name: "prefix only", key: KeyPrefixKV, wantErr: true},
		{name: "foreign key", key: "jump:service:adguard", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractKVKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractKVKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractKVKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuggestKey(t *testing.T) {
	a := SuggestKey("https://a.example/?q={searchTerms}", "Golang")
	b := SuggestKey("https://a.example/?q={searchTerms}", "golang")
	c := SuggestKey("https://b.example/?q={searchTerms}", "golang")

	if a != b {
		t.Errorf("SuggestKey() should be case-insensitive on query: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("SuggestKey() should differ per provider: %s", a)
	}
	if !strings.HasPrefix(a, KeyPrefixSuggest) {
		t.Errorf("SuggestKey() = %s, want prefix %s", a, KeyPrefixSuggest)
	}
}
