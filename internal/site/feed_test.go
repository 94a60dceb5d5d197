package site

import (
	"strings"
	"testing"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

func TestBuildFeed_StableGUIDsAcrossRuns(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	grants := []models.Grant{{
		Title:       "NIH F32 Postdoctoral Fellowship",
		Agency:      "NIH",
		URL:         "https://grants.nih.gov/f32",
		LastUpdated: now,
	}}

	first := BuildFeed(grants, "http://localhost:8081", now)
	grants[0].LastUpdated = now.Add(24 * time.Hour)
	second := BuildFeed(grants, "http://localhost:8081", now.Add(24*time.Hour))

	if first.Items[0].Id == "" {
		t.Fatal("expected non-empty GUID")
	}
	if first.Items[0].Id != second.Items[0].Id {
		t.Fatal("GUID must be stable across runs for the same grant")
	}
}

func TestBuildFeed_ItemLimit(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	var grants []models.Grant
	for i := 0; i < 40; i++ {
		grants = append(grants, models.Grant{
			Title:  strings.Repeat("x", i+1),
			Agency: "NIH",
		})
	}

	feed := BuildFeed(grants, "http://localhost:8081", now)
	if len(feed.Items) != feedItemLimit {
		t.Fatalf("expected %d items, got %d", feedItemLimit, len(feed.Items))
	}
}

func TestBuildFeed_DeadlineInDescription(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	grants := []models.Grant{{
		Title:       "Young Investigator Grant",
		Agency:      "BBRF",
		Description: "Early career support.",
		Deadlines:   []time.Time{time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
	}}

	feed := BuildFeed(grants, "http://localhost:8081", now)
	if !strings.Contains(feed.Items[0].Description, "September 15, 2026") {
		t.Fatalf("expected deadline in description, got %q", feed.Items[0].Description)
	}
}

func TestBuildFeed_RendersValidRSS(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	feed := BuildFeed([]models.Grant{{Title: "t", Agency: "a", URL: "https://x.example"}}, "http://localhost:8081", now)

	rss, err := feed.ToRss()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(rss, "<rss") || !strings.Contains(rss, "t (a)") {
		t.Fatalf("unexpected rss output: %s", rss)
	}
}
