package ingest

import (
	"testing"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

func grantDueIn(days int, now time.Time) models.Grant {
	return models.Grant{Deadlines: []time.Time{now.AddDate(0, 0, days)}}
}

func TestClassify_TierBoundaries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		days int
		want int
	}{
		{1, UrgencyCritical},
		{30, UrgencyCritical},
		{31, UrgencyHigh},
		{90, UrgencyHigh},
		{91, UrgencyMedium},
		{180, UrgencyMedium},
		{181, UrgencyLow},
		{365, UrgencyLow},
		{366, UrgencyVeryLow},
		{500, UrgencyVeryLow},
	}
	for _, tc := range cases {
		if got := Classify(grantDueIn(tc.days, now), now); got != tc.want {
			t.Errorf("days=%d: expected tier %d, got %d", tc.days, tc.want, got)
		}
	}
}

func TestClassify_NoDeadlines(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Classify(models.Grant{}, now); got != UrgencyNone {
		t.Fatalf("expected tier 0 without deadlines, got %d", got)
	}
}

func TestClassify_UsesNearestDeadline(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := models.Grant{Deadlines: []time.Time{
		now.AddDate(0, 0, 200),
		now.AddDate(0, 0, 10),
	}}
	if got := Classify(g, now); got != UrgencyCritical {
		t.Fatalf("expected nearest deadline to drive the tier, got %d", got)
	}
}

func TestRank_OrderAndStability(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	grants := []models.Grant{
		{Title: "no deadline"},
		{Title: "late", Deadlines: []time.Time{now.AddDate(0, 0, 120)}},
		{Title: "soon", Deadlines: []time.Time{now.AddDate(0, 0, 10)}},
		{Title: "sooner", Deadlines: []time.Time{now.AddDate(0, 0, 5)}},
	}

	ranked := Rank(grants, now)
	want := []string{"sooner", "soon", "late", "no deadline"}
	for i, title := range want {
		if ranked[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, ranked[i].Title)
		}
	}
	if ranked[0].Urgency != UrgencyCritical {
		t.Fatalf("expected urgency recomputed during ranking, got %d", ranked[0].Urgency)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	grants := []models.Grant{
		{Title: "b", Deadlines: []time.Time{now.AddDate(0, 0, 100)}},
		{Title: "a", Deadlines: []time.Time{now.AddDate(0, 0, 10)}},
	}

	Rank(grants, now)
	if grants[0].Title != "b" || grants[0].Urgency != 0 {
		t.Fatal("expected input slice untouched")
	}
}

func TestGroup_BucketCutoffs(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ranked := Rank([]models.Grant{
		grantDueIn(10, now),  // urgent
		grantDueIn(60, now),  // urgent (tier 4)
		grantDueIn(120, now), // upcoming
		grantDueIn(300, now), // upcoming
		grantDueIn(400, now), // future
		{},                   // future, no deadline
	}, now)

	b := Group(ranked)
	if len(b.Urgent) != 2 || len(b.Upcoming) != 2 || len(b.Future) != 2 {
		t.Fatalf("expected 2/2/2 split, got %d/%d/%d",
			len(b.Urgent), len(b.Upcoming), len(b.Future))
	}
}
