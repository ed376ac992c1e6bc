package domain

import "time"

// GraphHistoryEntry records one graph the user rendered in the explorer.
type GraphHistoryEntry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Data      string    `json:"data"` // raw JSON text as typed
	Timestamp time.Time `json:"timestamp"`
}

// TrimGraphHistory keeps the newest limit entries. limit <= 0 keeps everything.
func TrimGraphHistory(entries []GraphHistoryEntry, limit int) []GraphHistoryEntry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return append([]GraphHistoryEntry(nil), entries[len(entries)-limit:]...)
}
