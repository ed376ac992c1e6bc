package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
)

func init() { Register("chat", registerChat) }

func registerChat(r chi.Router, d deps.Deps) {
	r.Get("/api/chat", handlers.ChatMessages(d))
	r.Post("/api/chat", handlers.ChatSend(d))
	r.Get("/api/chat/conversations", handlers.ChatConversations(d))
}
