package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><head>
<title>
  The Go   Programming Language
</title>
<meta name="description" content="Go is an open source language.">
</head><body></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", page.Title)
	assert.Equal(t, "Go is an open source language.", page.Description)
}

func TestParseOpenGraphFallback(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><head>
<meta property="og:title" content="Gopher">
<meta property="og:description" content="A friendly mascot">
</head></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Gopher", page.Title)
	assert.Equal(t, "A friendly mascot", page.Description)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<title>Hello</title>`))
	}))
	defer srv.Close()

	page, err := NewFetcher(nil, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Hello", page.Title)
}

func TestFetchErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	_, err := NewFetcher(nil, 0).Fetch(context.Background(), notFound.URL)
	assert.EqualError(t, err, "HTTP 404")

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer slow.Close()

	_, err = NewFetcher(nil, 20*time.Millisecond).Fetch(context.Background(), slow.URL)
	assert.Error(t, err)
}
