package domain

import (
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Exact match bonus (huge boost)
	ScoreExactBonus = 200.0

	// similarityThreshold is the minimum character overlap for a fuzzy hit
	similarityThreshold = 0.5
)

// ScoreText scores how well query matches text. Both are compared
// case-insensitively; 0 means no match.
func ScoreText(query, text string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	text = strings.ToLower(strings.TrimSpace(text))
	if query == "" || text == "" {
		return 0.0
	}

	// Exact match (highest score)
	if query == text {
		return ScoreExactMatch + ScoreExactBonus
	}

	// Prefix match
	if strings.HasPrefix(text, query) {
		return ScorePrefixMatch
	}

	// Substring match, earlier is better
	if index := strings.Index(text, query); index >= 0 {
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(text)))
		return ScoreSubstringMatch + substringBonus
	}

	// Every query word appears somewhere in text
	queryWords := strings.Fields(query)
	if len(queryWords) > 1 {
		allMatch := true
		for _, word := range queryWords {
			if !strings.Contains(text, word) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return ScoreFuzzyMatch
		}
	}

	// Character similarity
	similarity := calculateSimilarity(query, text)
	if similarity > similarityThreshold {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculateSimilarity calculates fuzzy similarity between two strings
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Simple similarity: ratio of matching characters
	matches := 0
	total := 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}
