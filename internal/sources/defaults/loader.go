package defaults

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the default navigation tree file.
type Loader struct {
	filePath string
}

// NewLoader creates a new defaults loader. An empty path means no file is
// configured and the built-in seed is used instead.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the defaults file, falling back to the built-in
// seed when no file is configured.
func (l *Loader) Load() (*Config, error) {
	if l.filePath == "" {
		return builtin(), nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse defaults yaml: %w", err)
	}
	return &config, nil
}

// builtin is the seed tree served (and persisted) when neither a stored
// document nor a defaults file exists.
func builtin() *Config {
	return &Config{
		Profile: ProfileConfig{
			Title:    "navdock",
			Subtitle: "personal link directory",
		},
		Categories: []CategoryConfig{
			{
				ID:    "getting-started",
				Title: "Getting Started",
				Icon:  "🚀",
				Sites: []SiteConfig{
					{
						Title:       "Go",
						URL:         "https://go.dev",
						Description: "The Go programming language",
					},
					{
						Title:       "Redis",
						URL:         "https://redis.io",
						Description: "In-memory data store",
					},
				},
			},
		},
	}
}
