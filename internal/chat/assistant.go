package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
)

const (
	DefaultModel = "gpt-4o-mini"

	// maxContextMessages bounds how much of a conversation is sent along.
	maxContextMessages = 20
	maxReplyTokens     = 1024

	systemPrompt = "You are a concise assistant embedded in a personal start page."
)

var (
	ErrAssistantDisabled = errors.New("chat assistant is not configured")
	ErrEmptyMessage      = errors.New("message is empty")
)

// Completer is the subset of the OpenAI client the assistant uses.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AssistantOptions struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible endpoints
	Model   string
}

type Assistant struct {
	client  Completer
	model   string
	history *History
	log     logger.Logger
}

// NewAssistant builds an assistant over history. Without an API key the
// assistant only records user messages.
func NewAssistant(history *History, opts AssistantOptions, log logger.Logger) *Assistant {
	var client Completer
	if opts.APIKey != "" {
		cfg := openai.DefaultConfig(opts.APIKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = opts.BaseURL
		}
		client = openai.NewClientWithConfig(cfg)
	}
	return newAssistant(history, client, opts.Model, log)
}

func newAssistant(history *History, client Completer, model string, log logger.Logger) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	return &Assistant{client: client, model: model, history: history, log: log}
}

func (a *Assistant) Enabled() bool { return a.client != nil }

func (a *Assistant) Model() string { return a.model }

// Exchange is the result of one Send: the stored user message and, when
// the assistant answered, its reply.
type Exchange struct {
	Message domain.ChatMessage  `json:"message"`
	Reply   *domain.ChatMessage `json:"reply,omitempty"`
}

// Send stores the user's message, asks the model for a reply using the
// conversation so far, and stores the reply under the same topic. The user
// message is kept even when the model cannot be reached.
func (a *Assistant) Send(ctx context.Context, content, topic string) (Exchange, error) {
	if strings.TrimSpace(content) == "" {
		return Exchange{}, ErrEmptyMessage
	}

	msg, err := a.history.Append(ctx, content, domain.SenderUser, topic)
	if err != nil {
		return Exchange{}, err
	}
	ex := Exchange{Message: msg}
	if !a.Enabled() {
		return ex, ErrAssistantDisabled
	}

	convo, err := a.history.Messages(ctx, domain.MessageTopic(msg))
	if err != nil {
		return ex, err
	}
	if len(convo) > maxContextMessages {
		convo = convo[len(convo)-maxContextMessages:]
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(convo)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range convo {
		role := openai.ChatMessageRoleUser
		if m.Sender == domain.SenderAI {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		Messages:  messages,
		MaxTokens: maxReplyTokens,
	})
	if err != nil {
		a.log.Warn("chat completion failed",
			logger.String("model", a.model),
			logger.Error(err))
		return ex, fmt.Errorf("failed to get reply: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ex, errors.New("failed to get reply: empty response")
	}

	reply, err := a.history.Append(ctx, resp.Choices[0].Message.Content, domain.SenderAI, msg.Topic)
	if err != nil {
		return ex, err
	}
	ex.Reply = &reply
	return ex, nil
}
