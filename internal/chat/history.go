package chat

import (
	"context"
	"strings"
	"time"

	"github.com/MrSnakeDoc/index/internal/domain"
)

// Store persists the chat history.
type Store interface {
	ChatHistory(ctx context.Context) ([]domain.ChatMessage, error)
	AppendChat(ctx context.Context, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error)
	PruneChat(ctx context.Context, cutoff time.Time) (int, error)
}

// History groups stored messages into conversations by topic.
type History struct {
	store Store
	now   func() time.Time
}

func NewHistory(store Store) *History {
	return &History{store: store, now: time.Now}
}

// Append stores one message. A user message without a topic starts a new
// conversation named after its content.
func (h *History) Append(ctx context.Context, content, sender, topic string) (domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if topic == "" && sender == domain.SenderUser {
		topic = domain.TopicFromContent(content)
	}
	stored, err := h.store.AppendChat(ctx, domain.ChatMessage{
		ID:      h.now().UnixMilli(),
		Content: content,
		Sender:  sender,
		Topic:   topic,
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return stored[0], nil
}

// Messages returns the messages of topic in order. An empty topic returns
// everything.
func (h *History) Messages(ctx context.Context, topic string) ([]domain.ChatMessage, error) {
	msgs, err := h.store.ChatHistory(ctx)
	if err != nil {
		return nil, err
	}
	if topic == "" {
		return msgs, nil
	}
	out := make([]domain.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if domain.MessageTopic(m) == topic {
			out = append(out, m)
		}
	}
	return out, nil
}

// Conversations lists topics active within the last week.
func (h *History) Conversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	msgs, err := h.store.ChatHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Conversations(msgs, h.now(), domain.ConversationWindow), nil
}

// Prune removes messages older than retention.
func (h *History) Prune(ctx context.Context, retention time.Duration) (int, error) {
	return h.store.PruneChat(ctx, h.now().Add(-retention))
}
