package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
)

func init() { Register("tools", registerTools) }

func registerTools(r chi.Router, d deps.Deps) {
	r.Post("/api/password", handlers.Password(d))
	r.Post("/api/calendar", handlers.Calendar(d))
	r.Get("/api/generate/{kind}", handlers.Generate(d))

	r.Post("/api/qr/encode", handlers.QREncode(d))
	r.Post("/api/qr/decode", handlers.QRDecode(d))

	r.Post("/api/graph", handlers.Graph(d))
	r.Get("/api/graph/history", handlers.GraphHistory(d))
	r.Delete("/api/graph/history/{id}", handlers.DeleteGraphEntry(d))
}
