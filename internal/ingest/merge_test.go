package ingest

import (
	"testing"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

func TestFilterBaseline_WindowBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	baseline := []models.Grant{
		{Title: "fresh", LastUpdated: now.Add(-6 * 24 * time.Hour)},
		{Title: "boundary", LastUpdated: now.Add(-StalenessWindow)},
		{Title: "stale", LastUpdated: now.Add(-8 * 24 * time.Hour)},
	}

	got := FilterBaseline(baseline, now)
	if len(got) != 1 {
		t.Fatalf("expected only the fresh record, got %d", len(got))
	}
	if got[0].Title != "fresh" {
		t.Fatalf("expected fresh record kept, got %q", got[0].Title)
	}
}

func TestMerge_FresherRecordWins(t *testing.T) {
	older := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	baseline := []models.Grant{{Title: "NIH F32", Agency: "NIH", Description: "old", LastUpdated: older}}
	fresh := []models.Grant{{Title: "NIH F32", Agency: "NIH", Description: "new", LastUpdated: newer}}

	got := Merge(baseline, fresh)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged record, got %d", len(got))
	}
	if got[0].Description != "new" {
		t.Fatalf("expected fresher record to win, got %q", got[0].Description)
	}
}

func TestMerge_TieKeepsFirstSeen(t *testing.T) {
	ts := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	baseline := []models.Grant{{Title: "NIH F32", Agency: "NIH", Description: "baseline", LastUpdated: ts}}
	fresh := []models.Grant{{Title: "NIH F32", Agency: "NIH", Description: "fresh", LastUpdated: ts}}

	got := Merge(baseline, fresh)
	if len(got) != 1 || got[0].Description != "baseline" {
		t.Fatalf("expected tie to keep first-seen record, got %+v", got)
	}
}

func TestMerge_IdentityKeyNormalization(t *testing.T) {
	ts := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	baseline := []models.Grant{{Title: "  NIH F32 ", Agency: "NIH", LastUpdated: ts}}
	fresh := []models.Grant{{Title: "nih f32", Agency: "nih", LastUpdated: ts}}

	got := Merge(baseline, fresh)
	if len(got) != 1 {
		t.Fatalf("expected case/whitespace variants to collapse, got %d records", len(got))
	}
}

func TestMerge_DistinctAgenciesStaySeparate(t *testing.T) {
	ts := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	got := Merge(
		[]models.Grant{{Title: "Young Investigator Grant", Agency: "BBRF", LastUpdated: ts}},
		[]models.Grant{{Title: "Young Investigator Grant", Agency: "Simons Foundation", LastUpdated: ts}},
	)
	if len(got) != 2 {
		t.Fatalf("expected same title under different agencies to stay separate, got %d", len(got))
	}
}

func TestMerge_PreservesFirstSeenOrder(t *testing.T) {
	ts := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	baseline := []models.Grant{
		{Title: "a", Agency: "x", LastUpdated: ts},
		{Title: "b", Agency: "x", LastUpdated: ts},
	}
	fresh := []models.Grant{
		{Title: "c", Agency: "x", LastUpdated: ts},
		{Title: "a", Agency: "x", LastUpdated: ts.Add(time.Hour)}, // replaces in place
	}

	got := Merge(baseline, fresh)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, got[i].Title)
		}
	}
	if !got[0].LastUpdated.After(ts) {
		t.Fatal("expected replaced record to carry the fresher timestamp")
	}
}
