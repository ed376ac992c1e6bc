package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/settings"
	"github.com/MrSnakeDoc/index/internal/sources/bookmarks"
)

// BookmarkMerger reconciles seeded bookmarks with the stored list.
type BookmarkMerger interface {
	MergeFileBookmarks(ctx context.Context, seeds []domain.Bookmark) (settings.MergeResult, error)
}

// BookmarkReloader handles periodic reloading of the bookmark seed file
type BookmarkReloader struct {
	loader        *bookmarks.Loader
	merger        BookmarkMerger
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBookmarkReloader creates a new bookmark reloader
func NewBookmarkReloader(
	bookmarkFile string,
	merger BookmarkMerger,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BookmarkReloader {
	return &BookmarkReloader{
		loader:        bookmarks.NewLoader(bookmarkFile),
		merger:        merger,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (br *BookmarkReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := br.Reload(ctx); err != nil {
		return fmt.Errorf("initial bookmark reload failed: %w", err)
	}

	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload bookmarks",
						logger.Error(err))
				}
			case <-br.manualTrigger:
				br.logger.Info("manual bookmark reload triggered")
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload bookmarks",
						logger.Error(err))
				}
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (br *BookmarkReloader) Stop() {
	close(br.stopCh)
}

// Reload reads the seed file and merges it into the stored bookmarks
func (br *BookmarkReloader) Reload(ctx context.Context) error {
	br.logger.Info("reloading bookmarks from seed file",
		logger.String("file", br.loader.Path()))

	file, err := br.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	seeds := bookmarks.Map(file)
	br.logger.Info("loaded bookmarks from seed file",
		logger.Int("count", len(seeds)))

	res, err := br.merger.MergeFileBookmarks(ctx, seeds)
	if err != nil {
		return fmt.Errorf("failed to merge bookmarks: %w", err)
	}

	if res != (settings.MergeResult{}) {
		br.logger.Info("bookmarks merged",
			logger.Int("added", res.Added),
			logger.Int("updated", res.Updated),
			logger.Int("removed", res.Removed))
	} else {
		br.logger.Debug("bookmarks unchanged")
	}

	return nil
}
