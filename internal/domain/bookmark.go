package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Bookmark sources
const (
	SourceUser = "user"
	SourceFile = "file"
)

// Bookmark is one tile of the start page grid.
type Bookmark struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is derived from the URL, see BookmarkID.
	ID string `json:"id"`

	// URL is the absolute http(s) target.
	URL string `json:"url"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// Source is SourceUser for bookmarks edited through the API and
	// SourceFile for entries seeded from the bookmark file.
	Source string `json:"source,omitempty"`
}

var ErrInvalidBookmark = errors.New("invalid bookmark")

// BookmarkID returns a stable identifier for a URL. The same URL always
// produces the same ID, even if the title changes.
func BookmarkID(rawURL string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(rawURL)))
	return hex.EncodeToString(hash[:])[:16]
}

// Normalize trims fields, fills the ID and defaults the source and title.
func (b *Bookmark) Normalize() {
	b.URL = strings.TrimSpace(b.URL)
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	if b.ID == "" {
		b.ID = BookmarkID(b.URL)
	}
	if b.Source == "" {
		b.Source = SourceUser
	}
	if b.Title == "" {
		if u, err := url.Parse(b.URL); err == nil {
			b.Title = u.Hostname()
		}
	}
}

// Validate requires an absolute http or https URL.
func (b *Bookmark) Validate() error {
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookmark, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: url scheme must be http or https", ErrInvalidBookmark)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url must be absolute", ErrInvalidBookmark)
	}
	return nil
}

// Host returns the bookmark hostname, or "" when the URL does not parse.
func (b *Bookmark) Host() string {
	u, err := url.Parse(b.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
