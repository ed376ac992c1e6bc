package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Store         string  `json:"store,omitempty"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

// Healthz reports liveness only; it never touches the store.
func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: d.Now().Sub(d.StartTime).Seconds(),
			Store:         d.StoreBackend,
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		})
	}
}
