package bookmarks

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVarRe = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads the bookmark seed file.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the seed file location.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the seed file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark file: %w", err)
	}

	data = stripTemplateVariables(data)

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bookmark yaml: %w", err)
	}
	return file, nil
}

// stripTemplateVariables blanks Homepage-style template variables so a
// Homepage bookmarks.yaml can be used as is.
// Example: {{HOMEPAGE_VAR_GITEA_URL}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVarRe.ReplaceAll(data, []byte(`""`))
}
