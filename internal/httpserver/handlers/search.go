package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/search"
)

// Search records the term in the recent-search list and redirects to the
// configured engine. "!b <query>" jumps to the best matching bookmark.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		if query == "" {
			http.Redirect(w, r, d.HomepageURL, http.StatusFound)
			return
		}

		if term, ok := search.BookmarkQuery(query); ok {
			handleBookmarkSearch(w, r, term, d)
			return
		}

		st, err := d.Settings.Load(ctx)
		if err != nil {
			fail(w, d, err)
			return
		}

		// Recording is best effort, the redirect matters more.
		if err := d.Settings.AddRecentSearch(ctx, query); err != nil {
			d.Logger.Warn("failed to record recent search", logger.Error(err))
		}

		target := search.BuildURL(st.SearchEngine, query)
		d.Logger.Debug("search redirect",
			logger.String("query", query),
			logger.String("target", target))
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func handleBookmarkSearch(w http.ResponseWriter, r *http.Request, term string, d deps.Deps) {
	bookmarks, err := d.Settings.Bookmarks(r.Context())
	if err != nil {
		fail(w, d, err)
		return
	}

	candidates := domain.RankBookmarkCandidates(term, bookmarks)
	if len(candidates) == 0 {
		d.Logger.Info("no matching bookmark", logger.String("query", term))
		http.Redirect(w, r, d.HomepageURL, http.StatusFound)
		return
	}

	best := candidates[0]
	d.Logger.Info("resolved bookmark",
		logger.String("query", term),
		logger.String("url", best.Bookmark.URL),
		logger.String("score", fmt.Sprintf("%.2f", best.Score)))
	http.Redirect(w, r, best.Bookmark.URL, http.StatusFound)
}

// Suggest answers autocomplete requests. The upstream fetch is bound to
// the request, so a client that moves on cancels it.
func Suggest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		st, err := d.Settings.Load(ctx)
		if err != nil {
			fail(w, d, err)
			return
		}
		recent, err := d.Settings.RecentSearches(ctx)
		if err != nil {
			fail(w, d, err)
			return
		}

		writeJSON(w, http.StatusOK, d.Suggester.Suggest(ctx, r.URL.Query().Get("q"), st, recent))
	}
}

// FlushSuggestCache drops cached provider answers (redis backend only).
func FlushSuggestCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SuggestCache == nil {
			writeError(w, http.StatusNotFound, "suggestion cache is disabled")
			return
		}
		if err := d.SuggestCache.FlushSuggestions(r.Context()); err != nil {
			fail(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type recentResponse struct {
	Searches []string `json:"searches"`
}

func RecentSearches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Settings.RecentSearches(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		if list == nil {
			list = []string{}
		}
		writeJSON(w, http.StatusOK, recentResponse{Searches: list})
	}
}

func ClearRecentSearches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Settings.ClearRecentSearches(r.Context()); err != nil {
			fail(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
