package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/david/grant-tracker/internal/models"
)

func TestLoadRegistry_Embedded(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("embedded registry failed to load: %v", err)
	}
	if len(reg.Sources) == 0 {
		t.Fatal("expected at least one configured source")
	}

	seen := make(map[string]bool)
	for _, src := range reg.Sources {
		if src.ID == "" || src.BaseURL == "" {
			t.Fatalf("source missing required fields: %+v", src)
		}
		if seen[src.ID] {
			t.Fatalf("duplicate source id %q", src.ID)
		}
		seen[src.ID] = true

		switch src.SourceType {
		case models.SourceNIH, models.SourceNSF:
			if src.LinkPattern == "" {
				t.Fatalf("agency source %q needs a link pattern", src.ID)
			}
		case models.SourceFoundation:
		default:
			t.Fatalf("source %q has unexpected type %q", src.ID, src.SourceType)
		}
	}
}

func TestLoadRegistry_PathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	yaml := `sources:
  - id: custom
    agency: Custom Agency
    source_type: nih
    base_url: https://example.org/
    link_pattern: "notice.*\\.html"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("override load failed: %v", err)
	}
	if len(reg.Sources) != 1 || reg.Sources[0].ID != "custom" {
		t.Fatalf("expected override sources, got %+v", reg.Sources)
	}
}

func TestLoadRegistry_BadLinkPatternRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	yaml := `sources:
  - id: broken
    agency: X
    source_type: nih
    base_url: https://example.org/
    link_pattern: "["
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatal("expected error for invalid link pattern")
	}
}
