package ingest

import (
	"embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/david/grant-tracker/internal/models"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configuration for all scraped data sources. The
// static catalog is not listed here; it ships in code (see catalog.go).
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines a single scraped source.
type SourceConfig struct {
	ID         string            `yaml:"id"`
	Agency     string            `yaml:"agency"`
	SourceType models.SourceType `yaml:"source_type"`
	BaseURL    string            `yaml:"base_url"`

	// Agency pages: regex selecting candidate links on the index page,
	// and a cap on how many matched links get visited.
	LinkPattern string `yaml:"link_pattern,omitempty"`
	MaxLinks    int    `yaml:"max_links,omitempty"`

	// Foundation pages: keyword hints and a cap on inspected sections.
	Keywords    []string `yaml:"keywords,omitempty"`
	MaxSections int      `yaml:"max_sections,omitempty"`

	DelaySeconds   int `yaml:"delay_seconds,omitempty"`   // inter-request politeness delay
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"` // per-fetch timeout
}

// LoadRegistry returns the source registry. A non-empty path overrides
// the embedded sources.yaml, which is how local development points the
// tracker at a modified source list.
func LoadRegistry(path string) (*Registry, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
	}
	if err != nil {
		return nil, err
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, err
	}

	for _, src := range reg.Sources {
		if src.LinkPattern != "" {
			if _, err := regexp.Compile(src.LinkPattern); err != nil {
				return nil, fmt.Errorf("source %q: bad link_pattern: %w", src.ID, err)
			}
		}
	}

	return &reg, nil
}
