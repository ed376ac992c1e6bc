package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/logger"
)

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrDuplicateBookmark = errors.New("bookmark already exists")
	ErrInvalidOrder      = errors.New("order must list every bookmark id exactly once")
)

// BookmarkPatch carries the editable bookmark fields. Nil means unchanged.
type BookmarkPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

func (s *Service) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	var list []domain.Bookmark
	if _, err := getJSON(ctx, s.kv, KeyBookmarks, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetBookmarks replaces the whole list after validating every entry.
func (s *Service) SetBookmarks(ctx context.Context, list []domain.Bookmark) error {
	for i := range list {
		list[i].Normalize()
		if err := list[i].Validate(); err != nil {
			return fmt.Errorf("bookmark %d: %w", i, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return setJSON(ctx, s.kv, KeyBookmarks, list)
}

// AddBookmark appends b. A bookmark with the same URL is rejected.
func (s *Service) AddBookmark(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	b.ID = ""
	b.Source = domain.SourceUser
	b.Normalize()
	if err := b.Validate(); err != nil {
		return domain.Bookmark{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Bookmarks(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}
	for _, existing := range list {
		if existing.ID == b.ID {
			return domain.Bookmark{}, fmt.Errorf("%w: %s", ErrDuplicateBookmark, b.URL)
		}
	}
	if err := setJSON(ctx, s.kv, KeyBookmarks, append(list, b)); err != nil {
		return domain.Bookmark{}, err
	}
	return b, nil
}

// UpdateBookmark applies patch to the bookmark with id. Changing the URL
// changes the ID.
func (s *Service) UpdateBookmark(ctx context.Context, id string, patch BookmarkPatch) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Bookmarks(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}
	idx := indexOfBookmark(list, id)
	if idx < 0 {
		return domain.Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}

	b := list[idx]
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.URL != nil && *patch.URL != b.URL {
		b.URL = *patch.URL
		b.ID = ""
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return domain.Bookmark{}, err
	}
	if other := indexOfBookmark(list, b.ID); other >= 0 && other != idx {
		return domain.Bookmark{}, fmt.Errorf("%w: %s", ErrDuplicateBookmark, b.URL)
	}

	list[idx] = b
	if err := setJSON(ctx, s.kv, KeyBookmarks, list); err != nil {
		return domain.Bookmark{}, err
	}
	return b, nil
}

func (s *Service) DeleteBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Bookmarks(ctx)
	if err != nil {
		return err
	}
	idx := indexOfBookmark(list, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	list = append(list[:idx], list[idx+1:]...)
	return setJSON(ctx, s.kv, KeyBookmarks, list)
}

// ReorderBookmarks rearranges the list to follow ids.
func (s *Service) ReorderBookmarks(ctx context.Context, ids []string) ([]domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(list) {
		return nil, ErrInvalidOrder
	}

	byID := make(map[string]domain.Bookmark, len(list))
	for _, b := range list {
		byID[b.ID] = b
	}
	ordered := make([]domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return nil, ErrInvalidOrder
		}
		delete(byID, id)
		ordered = append(ordered, b)
	}

	if err := setJSON(ctx, s.kv, KeyBookmarks, ordered); err != nil {
		return nil, err
	}
	return ordered, nil
}

// MergeResult summarises a seed file merge.
type MergeResult struct {
	Added   int
	Updated int
	Removed int
}

// MergeFileBookmarks reconciles file-sourced bookmarks with seeds. Existing
// file entries are refreshed in place, new seeds are appended, and file
// entries missing from seeds are removed. User bookmarks are never changed;
// a seed whose URL a user bookmark already holds is skipped.
func (s *Service) MergeFileBookmarks(ctx context.Context, seeds []domain.Bookmark) (MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Bookmarks(ctx)
	if err != nil {
		return MergeResult{}, err
	}

	wanted := make(map[string]domain.Bookmark, len(seeds))
	order := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		seed.ID = ""
		seed.Source = domain.SourceFile
		seed.Normalize()
		if err := seed.Validate(); err != nil {
			s.log.Warn("skipping invalid seed bookmark",
				logger.String("url", seed.URL),
				logger.Error(err))
			continue
		}
		if _, dup := wanted[seed.ID]; dup {
			continue
		}
		wanted[seed.ID] = seed
		order = append(order, seed.ID)
	}

	var res MergeResult
	merged := make([]domain.Bookmark, 0, len(list)+len(seeds))
	present := make(map[string]bool, len(list))
	for _, b := range list {
		present[b.ID] = true
		if b.Source != domain.SourceFile {
			merged = append(merged, b)
			continue
		}
		seed, ok := wanted[b.ID]
		if !ok {
			res.Removed++
			continue
		}
		if seed.Title != b.Title || seed.Description != b.Description {
			res.Updated++
		}
		merged = append(merged, seed)
	}
	for _, id := range order {
		if present[id] {
			continue
		}
		merged = append(merged, wanted[id])
		res.Added++
	}

	if res == (MergeResult{}) {
		return res, nil
	}
	if err := setJSON(ctx, s.kv, KeyBookmarks, merged); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

func indexOfBookmark(list []domain.Bookmark, id string) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}
