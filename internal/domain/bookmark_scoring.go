package domain

import (
	"sort"
	"strings"
)

// hostWeight scales matches on the hostname below matches on the title
const hostWeight = 0.8

// BookmarkCandidate represents a bookmark candidate with its match score
type BookmarkCandidate struct {
	Bookmark *Bookmark
	Score    float64
}

// ScoreBookmark calculates the match score for a bookmark against a query string.
// The title wins over the hostname; the description only breaks ties.
func ScoreBookmark(queryStr string, bookmark *Bookmark) float64 {
	if bookmark == nil || strings.TrimSpace(queryStr) == "" {
		return 0.0
	}

	score := ScoreText(queryStr, bookmark.Title)

	host := strings.TrimPrefix(bookmark.Host(), "www.")
	if hs := ScoreText(queryStr, host) * hostWeight; hs > score {
		score = hs
	}

	if score > 0 && strings.Contains(strings.ToLower(bookmark.Description), strings.ToLower(strings.TrimSpace(queryStr))) {
		score += 1.0
	}

	return score
}

// RankBookmarkCandidates ranks bookmark candidates by score, keeping the
// user's ordering for equal scores.
func RankBookmarkCandidates(queryStr string, bookmarks []Bookmark) []BookmarkCandidate {
	candidates := make([]BookmarkCandidate, 0, len(bookmarks))

	for i := range bookmarks {
		score := ScoreBookmark(queryStr, &bookmarks[i])
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, BookmarkCandidate{
			Bookmark: &bookmarks[i],
			Score:    score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// FindBestBookmark finds the best matching bookmark for a query
func FindBestBookmark(queryStr string, bookmarks []Bookmark) *Bookmark {
	candidates := RankBookmarkCandidates(queryStr, bookmarks)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0].Bookmark
}
