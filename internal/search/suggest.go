package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
)

// Suggestion sources
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceCache  = "cache"
)

const (
	DefaultTimeout = 2 * time.Second
	maxBodyBytes   = 1 << 20
	userAgent      = "Mozilla/5.0 (compatible; index/1.0)"
)

var ErrMalformedResponse = errors.New("malformed suggestion response")

// Cache keeps remote suggestion lists per provider and query.
type Cache interface {
	CachedSuggestions(ctx context.Context, provider, query string) ([]string, bool, error)
	CacheSuggestions(ctx context.Context, provider, query string, suggestions []string, ttl time.Duration) error
}

type ClientOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Cache      Cache // optional
	CacheTTL   time.Duration
	Logger     logger.Logger
}

// Client fetches suggestions from an OpenSearch-style provider.
type Client struct {
	http     *http.Client
	timeout  time.Duration
	cache    Cache
	cacheTTL time.Duration
	log      logger.Logger
}

func NewClient(opts ClientOptions) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Client{
		http:     opts.HTTPClient,
		timeout:  opts.Timeout,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		log:      opts.Logger,
	}
}

// Fetch returns the provider's suggestions for query. ctx bounds the
// request together with the client timeout.
func (c *Client) Fetch(ctx context.Context, provider, query string) ([]string, string, error) {
	if c.cache != nil {
		cached, ok, err := c.cache.CachedSuggestions(ctx, provider, query)
		if err != nil {
			c.log.Warn("suggestion cache read failed", logger.Error(err))
		} else if ok {
			return cached, SourceCache, nil
		}
	}

	suggestions, err := c.fetchRemote(ctx, provider, query)
	if err != nil {
		return nil, "", err
	}

	if c.cache != nil {
		if err := c.cache.CacheSuggestions(ctx, provider, query, suggestions, c.cacheTTL); err != nil {
			c.log.Warn("suggestion cache write failed", logger.Error(err))
		}
	}
	return suggestions, SourceRemote, nil
}

func (c *Client) fetchRemote(ctx context.Context, provider, query string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(provider, query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch suggestions: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	return ParseResponse(body)
}

// ParseResponse reads the [query, [s1, s2, ...], ...] format. Non-string
// entries in the suggestion list are ignored.
func ParseResponse(body []byte) ([]string, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(doc) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 elements, got %d", ErrMalformedResponse, len(doc))
	}

	var items []any
	if err := json.Unmarshal(doc[1], &items); err != nil {
		return nil, fmt.Errorf("%w: second element is not an array", ErrMalformedResponse)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Response is what the suggestion endpoint returns. Query is echoed so a
// client can discard answers to queries it has since replaced.
type Response struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Source      string   `json:"source"`
}

// Suggest merges recent-search matches with remote suggestions. When the
// provider fails, only local matches are returned.
func (c *Client) Suggest(ctx context.Context, query string, st domain.Settings, recent []string) Response {
	query = strings.TrimSpace(query)
	resp := Response{Query: query, Suggestions: []string{}, Source: SourceLocal}
	if query == "" {
		return resp
	}

	remote, source, err := c.Fetch(ctx, st.SuggestionProvider, query)
	if err != nil {
		c.log.Debug("falling back to local suggestions",
			logger.String("query", query),
			logger.Error(err))
		resp.Suggestions = Merge(domain.MatchRecent(recent, query, st.MaxSuggestions), nil, st.MaxSuggestions)
		return resp
	}

	local := domain.MatchRecent(recent, query, st.MaxRecentSearchesInSuggestions)
	resp.Suggestions = Merge(local, remote, st.MaxSuggestions)
	resp.Source = source
	return resp
}

// Merge concatenates local then remote, dropping case-insensitive
// duplicates, and caps the result at max.
func Merge(local, remote []string, max int) []string {
	out := make([]string, 0, len(local)+len(remote))
	if max <= 0 {
		return out
	}
	seen := make(map[string]bool, cap(out))
	for _, list := range [][]string{local, remote} {
		for _, s := range list {
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
			if len(out) == max {
				return out
			}
		}
	}
	return out
}
