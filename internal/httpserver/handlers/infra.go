package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Mode      string `json:"mode,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Bookmarks *int   `json:"bookmarks,omitempty"`
	Source    string `json:"source,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each backing component. The overall mode is
// "critical" when the store is down, "degraded" when an optional component
// is, and "optimal" otherwise.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"store":         checkStore(ctx, d),
			"bookmarks":     checkBookmarks(ctx, d),
			"suggest_cache": checkSuggestCache(ctx, d),
			"assistant":     checkAssistant(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if s, ok := components["store"]; ok && !s.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK && c.Mode != "disabled" {
			return "degraded"
		}
	}
	return "optimal"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.Settings.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: d.StoreBackend, Impact: "settings-unavailable", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}

func checkBookmarks(ctx context.Context, d deps.Deps) componentStatus {
	list, err := d.Settings.Bookmarks(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	n := len(list)
	status := componentStatus{OK: true, Bookmarks: &n, Mode: "manual"}
	if d.BookmarkFile != "" {
		status.Mode = "seeded"
		status.Source = d.BookmarkFile
	}
	return status
}

func checkSuggestCache(ctx context.Context, d deps.Deps) componentStatus {
	if d.SuggestCache == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "every-suggestion-hits-provider"}
	}
	if err := d.SuggestCache.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "redis", Impact: "every-suggestion-hits-provider", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}

func checkAssistant(d deps.Deps) componentStatus {
	if d.Assistant == nil || !d.Assistant.Enabled() {
		return componentStatus{OK: false, Mode: "disabled", Impact: "chat-history-only"}
	}
	return componentStatus{OK: true, Mode: d.Assistant.Model()}
}
