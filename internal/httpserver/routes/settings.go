package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
)

func init() { Register("settings", registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", handlers.GetSettings(d))
		r.Put("/", handlers.PutSettings(d))
		r.Get("/export", handlers.ExportSettings(d))
		r.Post("/import", handlers.ImportSettings(d))
		r.Get("/{key}", handlers.GetSetting(d))
		r.Put("/{key}", handlers.PutSetting(d))
	})
}
