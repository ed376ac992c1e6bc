package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/settings"
)

type bookmarksResponse struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

type addBookmarkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Settings.Bookmarks(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		writeBookmarks(w, http.StatusOK, list)
	}
}

// AddBookmark stores a user bookmark. A missing title or description is
// filled from the page itself when it can be fetched.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBookmarkRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}

		b := domain.Bookmark{
			URL:         strings.TrimSpace(req.URL),
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
		}
		if err := b.Validate(); err != nil {
			fail(w, d, err)
			return
		}
		fillFromPage(r.Context(), d, &b)

		saved, err := d.Settings.AddBookmark(r.Context(), b)
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func fillFromPage(ctx context.Context, d deps.Deps, b *domain.Bookmark) {
	if d.Metadata == nil || (b.Title != "" && b.Description != "") {
		return
	}
	page, err := d.Metadata.Fetch(ctx, b.URL)
	if err != nil {
		d.Logger.Debug("bookmark metadata unavailable",
			logger.String("url", b.URL),
			logger.Error(err))
		return
	}
	if b.Title == "" {
		b.Title = page.Title
	}
	if b.Description == "" {
		b.Description = page.Description
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch settings.BookmarkPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			fail(w, d, err)
			return
		}
		updated, err := d.Settings.UpdateBookmark(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Settings.DeleteBookmark(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReorderBookmarks takes the complete list of ids in the new order.
func ReorderBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}
		list, err := d.Settings.ReorderBookmarks(r.Context(), req.IDs)
		if err != nil {
			fail(w, d, err)
			return
		}
		writeBookmarks(w, http.StatusOK, list)
	}
}

func writeBookmarks(w http.ResponseWriter, status int, list []domain.Bookmark) {
	if list == nil {
		list = []domain.Bookmark{}
	}
	writeJSON(w, status, bookmarksResponse{Bookmarks: list})
}
