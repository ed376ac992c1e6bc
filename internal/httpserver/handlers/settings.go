package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/settings"
)

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := d.Settings.Load(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// PutSettings replaces every flat setting. Fields missing from the body
// reset to their zero value, so clients send the whole struct.
func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var st domain.Settings
		if err := decodeJSON(w, r, &st); err != nil {
			fail(w, d, err)
			return
		}
		if err := d.Settings.Save(r.Context(), st); err != nil {
			fail(w, d, err)
			return
		}
		saved, err := d.Settings.Load(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

// GetSetting returns the raw stored value of one key (or its default).
func GetSetting(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Settings.Get(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			fail(w, d, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(raw)
	}
}

// PutSetting stores the JSON body as the value of one key.
func PutSetting(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		raw, err := readBody(w, r, uploadLimit(d))
		if err != nil {
			fail(w, d, err)
			return
		}
		if !json.Valid(raw) {
			fail(w, d, badRequest("value for %s is not valid JSON", key))
			return
		}
		if err := d.Settings.Set(r.Context(), key, raw); err != nil {
			fail(w, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportSettings downloads every stored key as one JSON document.
func ExportSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := d.Settings.Export(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fail(w, d, fmt.Errorf("failed to encode export: %w", err))
			return
		}
		name := settings.ExportFilename(d.Now())
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

type importResponse struct {
	Imported []string `json:"imported"`
}

// ImportSettings accepts a previously exported document. Only the keys it
// contains are written.
func ImportSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, uploadLimit(d))
		keys, err := d.Settings.Import(r.Context(), body)
		if err != nil {
			fail(w, d, err)
			return
		}
		if keys == nil {
			keys = []string{}
		}
		d.Logger.Info("settings imported", logger.Strings("keys", keys))
		writeJSON(w, http.StatusOK, importResponse{Imported: keys})
	}
}
