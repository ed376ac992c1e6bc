package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/index/internal/domain"
)

var ErrGraphEntryNotFound = errors.New("graph history entry not found")

func (s *Service) ChatHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	if _, err := getJSON(ctx, s.kv, KeyChatHistory, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendChat adds msgs to the history. IDs are bumped when needed so they
// stay strictly increasing, and the stored messages are returned.
func (s *Service) AppendChat(ctx context.Context, msgs ...domain.ChatMessage) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.ChatHistory(ctx)
	if err != nil {
		return nil, err
	}

	var last int64
	if n := len(history); n > 0 {
		last = history[n-1].ID
	}
	out := make([]domain.ChatMessage, len(msgs))
	for i, m := range msgs {
		if m.ID <= last {
			m.ID = last + 1
		}
		last = m.ID
		out[i] = m
	}

	if err := setJSON(ctx, s.kv, KeyChatHistory, append(history, out...)); err != nil {
		return nil, err
	}
	return out, nil
}

// PruneChat drops messages created before cutoff.
func (s *Service) PruneChat(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.ChatHistory(ctx)
	if err != nil {
		return 0, err
	}
	kept, removed := domain.PruneMessages(history, cutoff)
	if removed == 0 {
		return 0, nil
	}
	if err := setJSON(ctx, s.kv, KeyChatHistory, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Service) GraphHistory(ctx context.Context) ([]domain.GraphHistoryEntry, error) {
	var entries []domain.GraphHistoryEntry
	if _, err := getJSON(ctx, s.kv, KeyGraphHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendGraph records entry and drops the oldest entries past the limit.
func (s *Service) AppendGraph(ctx context.Context, entry domain.GraphHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.GraphHistory(ctx)
	if err != nil {
		return err
	}
	entries = domain.TrimGraphHistory(append(entries, entry), s.opts.GraphHistoryLimit)
	return setJSON(ctx, s.kv, KeyGraphHistory, entries)
}

func (s *Service) DeleteGraph(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.GraphHistory(ctx)
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == id {
			return setJSON(ctx, s.kv, KeyGraphHistory, append(entries[:i], entries[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s", ErrGraphEntryNotFound, id)
}

// TrimGraphHistory applies the configured limit and reports how many
// entries were dropped.
func (s *Service) TrimGraphHistory(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.GraphHistory(ctx)
	if err != nil {
		return 0, err
	}
	trimmed := domain.TrimGraphHistory(entries, s.opts.GraphHistoryLimit)
	dropped := len(entries) - len(trimmed)
	if dropped == 0 {
		return 0, nil
	}
	if err := setJSON(ctx, s.kv, KeyGraphHistory, trimmed); err != nil {
		return 0, err
	}
	return dropped, nil
}
