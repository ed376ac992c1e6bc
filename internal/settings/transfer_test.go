package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/index/internal/domain"
)

func TestExportFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "INDEX_1700000000123_settings.json", ExportFilename(ts))
}

func TestExportOnlyStoredKeys(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.SetTheme(ctx, domain.ThemeDark))
	require.NoError(t, svc.AddRecentSearch(ctx, "golang"))

	out, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.JSONEq(t, `"dark"`, string(out[KeyTheme]))
	assert.JSONEq(t, `["golang"]`, string(out[KeyRecentSearches]))
}

func TestImportPartialOnlyTouchesPresentKeys(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	st := DefaultSettings()
	st.SearchEngine = "https://duckduckgo.com/?q={searchTerms}"
	require.NoError(t, svc.Save(ctx, st))
	require.NoError(t, svc.AddRecentSearch(ctx, "keep me"))

	before, err := svc.Export(ctx)
	require.NoError(t, err)

	keys, err := svc.Import(ctx, strings.NewReader(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTheme}, keys)

	after, err := svc.Export(ctx)
	require.NoError(t, err)
	for key, raw := range before {
		if key == KeyTheme {
			continue
		}
		assert.JSONEq(t, string(raw), string(after[key]), key)
	}
	assert.JSONEq(t, `"dark"`, string(after[KeyTheme]))
}

func TestImportSkipsUnknownAndNull(t *testing.T) {
	ctx := context.Background()
	svc, kv := newTestService(t)

	keys, err := svc.Import(ctx, strings.NewReader(`{"colour":"red","bookmarks":null,"maxSuggestions":5}`))
	require.NoError(t, err)
	assert.Equal(t, []string{KeyMaxSuggestions}, keys)
	assert.Equal(t, 1, kv.Count())
}

func TestImportRejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{theme`},
		{"array", `["theme"]`},
		{"null document", `null`},
		{"wrong type", `{"theme":"dark","passwordLength":"long"}`},
		{"bad theme", `{"theme":"neon","maxSuggestions":5}`},
		{"bad bookmark", `{"bookmarks":[{"url":"javascript:alert(1)"}]}`},
		{"bad algorithm", `{"passwordAlgorithm":"md5"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, kv := newTestService(t)
			_, err := svc.Import(ctx, strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidImport)
			assert.Zero(t, kv.Count())
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestService(t)

	_, err := src.AddBookmark(ctx, domain.Bookmark{URL: "https://go.dev", Title: "Go"})
	require.NoError(t, err)
	require.NoError(t, src.SetTheme(ctx, domain.ThemeLight))

	exported, err := src.Export(ctx)
	require.NoError(t, err)

	doc, err := json.Marshal(exported)
	require.NoError(t, err)

	dst, _ := newTestService(t)
	keys, err := dst.Import(ctx, bytes.NewReader(doc))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyBookmarks, KeyTheme}, keys)

	list, err := dst.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go", list[0].Title)
}
