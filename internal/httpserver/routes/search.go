package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/index/internal/httpserver/mw"
)

func init() { Register("search", registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Get("/search", handlers.Search(d))

	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRefill,
		TrustProxy:        d.TrustProxy,
	}, d.Logger)).Get("/api/suggest", handlers.Suggest(d))

	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	).Delete("/api/suggest/cache", handlers.FlushSuggestCache(d))

	r.Get("/api/recent-searches", handlers.RecentSearches(d))
	r.Delete("/api/recent-searches", handlers.ClearRecentSearches(d))
}
