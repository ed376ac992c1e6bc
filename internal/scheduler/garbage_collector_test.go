package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/index/internal/chat"
	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/settings"
	"github.com/MrSnakeDoc/index/internal/store/memory"
)

func TestGarbageCollector_Collect(t *testing.T) {
	ctx := context.Background()
	log := logger.New("error", false)
	svc := settings.NewService(memory.NewStore(), log, settings.Options{GraphHistoryLimit: 2})

	now := time.Now()
	_, err := svc.AppendChat(ctx,
		domain.ChatMessage{ID: now.Add(-35 * 24 * time.Hour).UnixMilli(), Content: "old", Sender: domain.SenderUser},
		domain.ChatMessage{ID: now.Add(-10 * 24 * time.Hour).UnixMilli(), Content: "recent", Sender: domain.SenderUser},
		domain.ChatMessage{ID: now.UnixMilli(), Content: "new", Sender: domain.SenderUser},
	)
	if err != nil {
		t.Fatalf("AppendChat failed: %v", err)
	}

	// bypass the limit by writing the key directly
	if err := svc.Set(ctx, settings.KeyGraphHistory, []byte(`[{"id":"a"},{"id":"b"},{"id":"c"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	gc := NewGarbageCollector(
		chat.NewHistory(svc),
		svc,
		log,
		24*time.Hour,
		30*24*time.Hour,
	)

	if err := gc.Collect(ctx); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	msgs, err := svc.ChatHistory(ctx)
	if err != nil {
		t.Fatalf("ChatHistory failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("Expected 2 messages after GC, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.Content == "old" {
			t.Error("Old message was not removed")
		}
	}

	graphs, err := svc.GraphHistory(ctx)
	if err != nil {
		t.Fatalf("GraphHistory failed: %v", err)
	}
	if len(graphs) != 2 || graphs[0].ID != "b" {
		t.Errorf("Expected graph history [b c], got %+v", graphs)
	}
}

func TestGarbageCollector_DefaultRetention(t *testing.T) {
	gc := NewGarbageCollector(nil, nil, logger.Nop(), time.Hour, 0)
	if gc.retention != DefaultChatRetention {
		t.Errorf("retention = %v, want %v", gc.retention, DefaultChatRetention)
	}
	if err := gc.Collect(context.Background()); err != nil {
		t.Errorf("Collect() with nothing wired error = %v", err)
	}
}

type failingPruner struct{}

func (failingPruner) Prune(context.Context, time.Duration) (int, error) {
	return 0, errors.New("store offline")
}

type countingTrimmer struct{ calls int }

func (c *countingTrimmer) TrimGraphHistory(context.Context) (int, error) {
	c.calls++
	return 0, nil
}

func TestGarbageCollector_ContinuesAfterFailure(t *testing.T) {
	trimmer := &countingTrimmer{}
	gc := NewGarbageCollector(failingPruner{}, trimmer, logger.Nop(), time.Hour, time.Hour)

	if err := gc.Collect(context.Background()); err == nil {
		t.Error("Collect() should report the chat failure")
	}
	if trimmer.calls != 1 {
		t.Errorf("graph trimmer called %d times, want 1", trimmer.calls)
	}
}

func TestGarbageCollector_StartStop(t *testing.T) {
	trimmer := &countingTrimmer{}
	gc := NewGarbageCollector(nil, trimmer, logger.Nop(), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := gc.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	gc.Stop()

	if trimmer.calls != 1 {
		t.Errorf("Start() should collect once immediately, got %d", trimmer.calls)
	}
}
