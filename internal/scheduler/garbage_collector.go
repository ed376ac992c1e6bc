package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/index/internal/logger"
)

const (
	// DefaultChatRetention is how long chat messages are kept
	DefaultChatRetention = 30 * 24 * time.Hour // 30 days
)

// ChatPruner drops chat messages older than a retention period.
type ChatPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int, error)
}

// GraphTrimmer caps the graph explorer history.
type GraphTrimmer interface {
	TrimGraphHistory(ctx context.Context) (int, error)
}

// GarbageCollector handles cleanup of old chat messages and graph history
type GarbageCollector struct {
	chat      ChatPruner
	graphs    GraphTrimmer
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	chat ChatPruner,
	graphs GraphTrimmer,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *GarbageCollector {
	if retention == 0 {
		retention = DefaultChatRetention
	}

	return &GarbageCollector{
		chat:      chat,
		graphs:    graphs,
		logger:    log,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect prunes expired chat messages and trims graph history. Both steps
// run even if one fails.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	gc.logger.Debug("running garbage collection")

	var errs []error

	messagesDeleted := 0
	if gc.chat != nil {
		n, err := gc.chat.Prune(ctx, gc.retention)
		if err != nil {
			errs = append(errs, fmt.Errorf("chat: %w", err))
		}
		messagesDeleted = n
	}

	graphsDeleted := 0
	if gc.graphs != nil {
		n, err := gc.graphs.TrimGraphHistory(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("graph history: %w", err))
		}
		graphsDeleted = n
	}

	if total := messagesDeleted + graphsDeleted; total > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("messages_deleted", messagesDeleted),
			logger.Int("graphs_deleted", graphsDeleted),
			logger.Int("total_deleted", total))
	} else {
		gc.logger.Debug("no items to garbage collect")
	}

	return errors.Join(errs...)
}
