package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload asks the bookmark reloader to re-read the seed file. The trigger
// holds at most one pending request.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BookmarkReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "no bookmark file configured")
			return
		}

		select {
		case d.BookmarkReloadTrigger <- struct{}{}:
			d.Logger.Info("manual bookmark reload triggered",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "reload triggered"})
		default:
			d.Logger.Warn("bookmark reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Status: "reload already pending"})
		}
	}
}
