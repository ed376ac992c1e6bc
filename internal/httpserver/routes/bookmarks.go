package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.AddBookmark(d))
		r.Put("/order", handlers.ReorderBookmarks(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
