package bookmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/index/internal/domain"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoadAndMap(t *testing.T) {
	path := writeSeed(t, `---
- Developer:
    - Go:
        href: https://go.dev
        description: The Go language
    - Gitea:
        - abbr: GT
          href: https://git.example.org
- Social:
    - Broken:
        icon: broken.svg
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := Map(file)
	if len(got) != 2 {
		t.Fatalf("Map() returned %v bookmarks, want 2", len(got))
	}

	if got[0].Title != "Go" || got[0].URL != "https://go.dev" || got[0].Description != "The Go language" {
		t.Errorf("first bookmark = %+v", got[0])
	}
	if got[1].Title != "Gitea" || got[1].Description != "Developer" {
		t.Errorf("second bookmark = %+v", got[1])
	}
	for _, b := range got {
		if b.Source != domain.SourceFile {
			t.Errorf("bookmark %s Source = %v, want %v", b.Title, b.Source, domain.SourceFile)
		}
		if b.ID != domain.BookmarkID(b.URL) {
			t.Errorf("bookmark %s ID = %v, want %v", b.Title, b.ID, domain.BookmarkID(b.URL))
		}
	}
}

func TestLoadWithTemplateVariables(t *testing.T) {
	path := writeSeed(t, `---
- Home:
    - Router:
        href: {{HOMEPAGE_VAR_ROUTER_URL}}
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := Map(file); len(got) != 0 {
		t.Errorf("Map() = %v, want no bookmarks for a blank href", got)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := NewLoader("/nonexistent/path/bookmarks.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoadRejectsScalarEntry(t *testing.T) {
	path := writeSeed(t, `---
- Developer:
    - Go: https://go.dev
`)
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() with scalar bookmark should return error")
	}
}

func TestStripTemplateVariables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single", `href: {{HOMEPAGE_VAR_URL}}`, `href: ""`},
		{"several", `a: {{A}} b: {{B}}`, `a: "" b: ""`},
		{"none", `href: https://go.dev`, `href: https://go.dev`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripTemplateVariables([]byte(tt.input))); got != tt.expected {
				t.Errorf("stripTemplateVariables() = %v, want %v", got, tt.expected)
			}
		})
	}
}
