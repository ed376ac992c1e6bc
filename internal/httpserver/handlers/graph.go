package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/graph"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
)

type graphRequest struct {
	Type       string `json:"type"`
	Data       string `json:"data"` // JSON text as typed in the explorer
	StartAtOne bool   `json:"start_at_one"`
}

type graphResponse struct {
	ID    string      `json:"id"`
	Graph graph.Graph `json:"graph"`
}

type graphHistoryResponse struct {
	Entries []domain.GraphHistoryEntry `json:"entries"`
}

// Graph validates explorer input and converts it to nodes and links.
// Accepted inputs are appended to the graph history.
func Graph(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req graphRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}

		g, err := graph.Validate(req.Type, []byte(req.Data), req.StartAtOne)
		if err != nil {
			fail(w, d, err)
			return
		}

		entry := domain.GraphHistoryEntry{
			ID:        uuid.NewString(),
			Type:      req.Type,
			Data:      req.Data,
			Timestamp: d.Now().UTC(),
		}
		if err := d.Settings.AppendGraph(r.Context(), entry); err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, graphResponse{ID: entry.ID, Graph: g})
	}
}

func GraphHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := d.Settings.GraphHistory(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		if entries == nil {
			entries = []domain.GraphHistoryEntry{}
		}
		writeJSON(w, http.StatusOK, graphHistoryResponse{Entries: entries})
	}
}

func DeleteGraphEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Settings.DeleteGraph(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
