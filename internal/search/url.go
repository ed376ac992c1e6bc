package search

import (
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/index/internal/domain"
)

// BuildURL substitutes the query-escaped term into template.
func BuildURL(template, term string) string {
	return strings.ReplaceAll(template, domain.SearchTermsPlaceholder, url.QueryEscape(term))
}

// BookmarkPrefix marks a query that searches stored bookmarks instead of
// the web, e.g. "!b github".
const BookmarkPrefix = "!b "

// BookmarkQuery reports whether q asks for a bookmark and returns the rest
// of the query.
func BookmarkQuery(q string) (string, bool) {
	if len(q) < len(BookmarkPrefix) || !strings.EqualFold(q[:len(BookmarkPrefix)], BookmarkPrefix) {
		return "", false
	}
	rest := strings.TrimSpace(q[len(BookmarkPrefix):])
	return rest, rest != ""
}
