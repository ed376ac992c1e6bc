package bookmarks

import (
	"sort"

	"github.com/MrSnakeDoc/index/internal/domain"
)

// Map converts the seed file into file-sourced bookmarks in file order.
// Entries without href are skipped. The bookmark name becomes the title,
// and the category is kept as description when none is given.
func Map(file File) []domain.Bookmark {
	out := make([]domain.Bookmark, 0)
	for _, category := range file {
		// a category item is a single-key map; sort for a stable order
		// when someone writes several keys in one item
		names := make([]string, 0, len(category))
		for name := range category {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, categoryName := range names {
			for _, item := range category[categoryName] {
				for _, name := range sortedKeys(item) {
					entry := item[name]
					if entry.Href == "" {
						continue
					}
					desc := entry.Description
					if desc == "" {
						desc = categoryName
					}
					b := domain.Bookmark{
						URL:         entry.Href,
						Title:       name,
						Description: desc,
						Source:      domain.SourceFile,
					}
					b.Normalize()
					out = append(out, b)
				}
			}
		}
	}
	return out
}

func sortedKeys(m map[string]Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
