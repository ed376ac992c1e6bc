package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/index/internal/chat"
	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
)

type chatRequest struct {
	Content string `json:"content"`
	Topic   string `json:"topic"`
}

// chatResponse carries the stored exchange. Error is set when the user
// message was kept but no reply could be produced.
type chatResponse struct {
	chat.Exchange
	Error string `json:"error,omitempty"`
}

type messagesResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type conversationsResponse struct {
	Conversations []domain.ConversationSummary `json:"conversations"`
}

// ChatMessages lists stored messages, optionally only those of ?topic=.
func ChatMessages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := d.History.Messages(r.Context(), r.URL.Query().Get("topic"))
		if err != nil {
			fail(w, d, err)
			return
		}
		if msgs == nil {
			msgs = []domain.ChatMessage{}
		}
		writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs})
	}
}

func ChatConversations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		convos, err := d.History.Conversations(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		if convos == nil {
			convos = []domain.ConversationSummary{}
		}
		writeJSON(w, http.StatusOK, conversationsResponse{Conversations: convos})
	}
}

// ChatSend stores the message and asks the assistant for a reply. Without
// an assistant the message is still stored and 202 is returned; an
// upstream failure after storing returns 502 with the stored message.
func ChatSend(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}

		ex, err := d.Assistant.Send(r.Context(), req.Content, req.Topic)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, chatResponse{Exchange: ex})
		case errors.Is(err, chat.ErrAssistantDisabled):
			writeJSON(w, http.StatusAccepted, chatResponse{Exchange: ex, Error: err.Error()})
		case ex.Message.ID != 0:
			writeJSON(w, http.StatusBadGateway, chatResponse{Exchange: ex, Error: "assistant did not reply"})
		default:
			fail(w, d, err)
		}
	}
}
