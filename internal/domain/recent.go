package domain

import (
	"sort"
	"strings"
)

// PushRecent returns a new list with term at the front. An existing equal
// entry (case-insensitive) is moved rather than duplicated, and the result
// is capped at max entries. max <= 0 means no cap.
func PushRecent(list []string, term string, max int) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]string(nil), list...)
	}

	out := make([]string, 0, len(list)+1)
	out = append(out, term)
	for _, existing := range list {
		if strings.EqualFold(existing, term) {
			continue
		}
		out = append(out, existing)
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// MatchRecent returns up to limit recent searches containing query
// (case-insensitive), best first. Equal scores keep the most-recent-first
// order of the list.
func MatchRecent(list []string, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		term  string
		score float64
	}
	lowered := strings.ToLower(query)
	matches := make([]scored, 0, len(list))
	for _, term := range list {
		if !strings.Contains(strings.ToLower(term), lowered) {
			continue
		}
		if s := ScoreText(query, term); s > 0 {
			matches = append(matches, scored{term: term, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.term
	}
	return out
}
