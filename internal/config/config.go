package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config is the run configuration consumed at pipeline start. All values
// come from the environment; how they are loaded is not core logic.
type Config struct {
	ResearchAreas   []string
	CareerStage     string
	InstitutionType string
	ForceRefresh    bool

	DocsDir     string // snapshot + generated site output
	ArchivePath string // sqlite run history, empty disables
	BaseURL     string // public base URL used in feed links
}

// FromEnv builds a Config from environment variables, applying the
// defaults the tracker has always shipped with.
func FromEnv() Config {
	cfg := Config{
		ResearchAreas:   parseList(getenv("RESEARCH_AREAS", "neuroscience,cognitive science,brain imaging")),
		CareerStage:     strings.ToLower(getenv("CAREER_STAGE", "postdoc")),
		InstitutionType: strings.ToLower(getenv("INSTITUTION_TYPE", "university")),
		ForceRefresh:    strings.EqualFold(os.Getenv("FORCE_REFRESH"), "true"),
		DocsDir:         getenv("GRANT_DOCS_DIR", "grant_docs"),
		ArchivePath:     os.Getenv("GRANT_ARCHIVE_PATH"),
		BaseURL:         getenv("BASE_URL", "http://localhost:8081"),
	}
	return cfg
}

// SnapshotPath is where the grants snapshot lives, inside the docs dir so
// the generated site and its data travel together.
func (c Config) SnapshotPath() string {
	return filepath.Join(c.DocsDir, "grants.json")
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
