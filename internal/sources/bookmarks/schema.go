package bookmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry represents the properties of one bookmark in the seed file.
type Entry struct {
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
	Abbr        string `yaml:"abbr"`
	Icon        string `yaml:"icon"`
}

// UnmarshalYAML accepts both the mapping form
//
//	- Go: {href: https://go.dev}
//
// and the Homepage bookmarks.yaml form, where the properties sit in a
// single-element list
//
//	- Go: [{href: https://go.dev}]
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	type plain Entry

	switch value.Kind {
	case yaml.MappingNode:
		return value.Decode((*plain)(e))
	case yaml.SequenceNode:
		if len(value.Content) == 0 {
			return nil
		}
		return value.Content[0].Decode((*plain)(e))
	default:
		return fmt.Errorf("line %d: bookmark must be a mapping or a list", value.Line)
	}
}

// Category maps a category name to its bookmarks, each a single-key map
// from bookmark name to its entry.
// The YAML structure is: - CategoryName: [ - BookmarkName: { href, description } ]
type Category map[string][]map[string]Entry

// File is the root structure of the seed file.
type File []Category
