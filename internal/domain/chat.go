package domain

import (
	"sort"
	"time"
	"unicode/utf8"
)

// Chat senders
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

const (
	// topicTitleLimit is how many characters of the first message name a conversation
	topicTitleLimit = 20

	// ConversationWindow limits the conversation list to recent activity
	ConversationWindow = 7 * 24 * time.Hour
)

// ChatMessage is one entry of the append-only chat history.
type ChatMessage struct {
	// ID is the creation time in unix milliseconds.
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
	Topic   string `json:"topic,omitempty"`
}

// Time returns the creation time encoded in the ID.
func (m ChatMessage) Time() time.Time {
	return time.UnixMilli(m.ID)
}

// ConversationSummary is one row of the conversation sidebar.
type ConversationSummary struct {
	Topic      string    `json:"topic"`
	Title      string    `json:"title"`
	LastActive time.Time `json:"last_active"`
	Messages   int       `json:"messages"`
}

// TopicFromContent names a new conversation after its first message.
func TopicFromContent(content string) string {
	if utf8.RuneCountInString(content) <= topicTitleLimit {
		return content
	}
	runes := []rune(content)
	return string(runes[:topicTitleLimit]) + "..."
}

// MessageTopic returns the topic of m, falling back to its creation date.
func MessageTopic(m ChatMessage) string {
	if m.Topic != "" {
		return m.Topic
	}
	return m.Time().Format("2006-01-02")
}

// Conversations groups messages newer than window by topic, most recently
// active first.
func Conversations(msgs []ChatMessage, now time.Time, window time.Duration) []ConversationSummary {
	byTopic := make(map[string]*ConversationSummary)
	for _, m := range msgs {
		t := m.Time()
		if now.Sub(t) > window {
			continue
		}
		topic := MessageTopic(m)
		s, ok := byTopic[topic]
		if !ok {
			s = &ConversationSummary{Topic: topic, Title: TopicFromContent(topic)}
			byTopic[topic] = s
		}
		s.Messages++
		if t.After(s.LastActive) {
			s.LastActive = t
		}
	}

	out := make([]ConversationSummary, 0, len(byTopic))
	for _, s := range byTopic {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastActive.Equal(out[j].LastActive) {
			return out[i].Topic < out[j].Topic
		}
		return out[i].LastActive.After(out[j].LastActive)
	})
	return out
}

// PruneMessages drops messages created before cutoff and reports how many were removed.
func PruneMessages(msgs []ChatMessage, cutoff time.Time) ([]ChatMessage, int) {
	kept := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Time().Before(cutoff) {
			continue
		}
		kept = append(kept, m)
	}
	return kept, len(msgs) - len(kept)
}
