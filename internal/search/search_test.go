package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/index/internal/domain"
)

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://www.google.com/search?q={searchTerms}", "go & rust")
	assert.Equal(t, "https://www.google.com/search?q=go+%26+rust", got)
}

func TestBookmarkQuery(t *testing.T) {
	q, ok := BookmarkQuery("!b github")
	assert.True(t, ok)
	assert.Equal(t, "github", q)

	_, ok = BookmarkQuery("!B   ")
	assert.False(t, ok)
	_, ok = BookmarkQuery("github")
	assert.False(t, ok)
}

func TestParseResponse(t *testing.T) {
	got, err := ParseResponse([]byte(`["go",["golang","go maps",42,"go generics"],[],{}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "go maps", "go generics"}, got)

	for _, body := range []string{`{}`, `["go"]`, `["go","nope"]`, `<html>`} {
		_, err := ParseResponse([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestMerge(t *testing.T) {
	got := Merge([]string{"Go", "golang"}, []string{"go", "gopher", "gofmt"}, 4)
	assert.Equal(t, []string{"Go", "golang", "gopher", "gofmt"}, got)

	assert.Empty(t, Merge([]string{"a"}, []string{"b"}, 0))
	assert.Equal(t, []string{"a"}, Merge([]string{"a"}, nil, 5))
}

func testSettings(provider string) domain.Settings {
	return domain.Settings{
		SuggestionProvider:             provider,
		MaxSuggestions:                 4,
		MaxRecentSearchesInSuggestions: 2,
	}
}

func TestSuggestMergesRecentFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`["go",["go tour","golang tutorial","go modules","go vet"]]`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{})
	recent := []string{"golang tutorial", "python", "go tour", "gopher"}
	resp := c.Suggest(context.Background(), "go", testSettings(srv.URL+"/?q={searchTerms}"), recent)

	assert.Equal(t, "go", resp.Query)
	assert.Equal(t, SourceRemote, resp.Source)
	assert.Equal(t, []string{"golang tutorial", "go tour", "go modules", "go vet"}, resp.Suggestions)
}

func TestSuggestFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("not json")) }},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}},
	}

	recent := []string{"golang", "rust", "go tour"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(ClientOptions{Timeout: 50 * time.Millisecond})
			resp := c.Suggest(context.Background(), "go", testSettings(srv.URL+"/?q={searchTerms}"), recent)

			assert.Equal(t, SourceLocal, resp.Source)
			assert.ElementsMatch(t, []string{"golang", "go tour"}, resp.Suggestions)
		})
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	c := NewClient(ClientOptions{})
	resp := c.Suggest(context.Background(), "  ", testSettings("http://127.0.0.1:1/?q={searchTerms}"), []string{"go"})
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, SourceLocal, resp.Source)
}

func TestFetchHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["go",["golang"]]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewClient(ClientOptions{}).Fetch(ctx, srv.URL+"/?q={searchTerms}", "go")
	assert.Error(t, err)
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string][]string
}

func (f *fakeCache) CachedSuggestions(_ context.Context, provider, query string) ([]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[provider+"|"+query]
	return s, ok, nil
}

func (f *fakeCache) CacheSuggestions(_ context.Context, provider, query string, s []string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[provider+"|"+query] = s
	return nil
}

func TestFetchUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`["go",["golang"]]`))
	}))
	defer srv.Close()

	cache := &fakeCache{items: map[string][]string{}}
	c := NewClient(ClientOptions{Cache: cache})
	provider := srv.URL + "/?q={searchTerms}"

	got, source, err := c.Fetch(context.Background(), provider, "go")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, source)
	assert.Equal(t, []string{"golang"}, got)

	got, source, err = c.Fetch(context.Background(), provider, "go")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, source)
	assert.Equal(t, []string{"golang"}, got)
	assert.Equal(t, 1, hits)
}
