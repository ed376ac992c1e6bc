package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
)

const readyzTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz answers 503 until the settings store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		if err := d.Settings.Ping(ctx); err != nil {
			d.Logger.Warn("store not ready", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "store unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
