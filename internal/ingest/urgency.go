package ingest

import (
	"sort"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

// Urgency tiers. Boundaries are inclusive on the lower tier: exactly 30
// days out is still Critical, exactly 90 still High, and so on.
const (
	UrgencyNone     = 0 // no deadlines
	UrgencyVeryLow  = 1 // > 365 days
	UrgencyLow      = 2 // <= 365 days
	UrgencyMedium   = 3 // <= 180 days
	UrgencyHigh     = 4 // <= 90 days
	UrgencyCritical = 5 // <= 30 days
)

// Classify maps a grant's nearest future deadline to an urgency tier.
func Classify(g models.Grant, now time.Time) int {
	nearest, ok := g.NearestDeadline()
	if !ok {
		return UrgencyNone
	}

	daysUntil := int(nearest.Sub(now).Hours() / 24)
	switch {
	case daysUntil <= 30:
		return UrgencyCritical
	case daysUntil <= 90:
		return UrgencyHigh
	case daysUntil <= 180:
		return UrgencyMedium
	case daysUntil <= 365:
		return UrgencyLow
	default:
		return UrgencyVeryLow
	}
}

// Rank recomputes urgency for every grant and sorts by (urgency
// descending, nearest deadline ascending). Grants without deadlines sort
// last within their tier.
func Rank(grants []models.Grant, now time.Time) []models.Grant {
	out := make([]models.Grant, len(grants))
	copy(out, grants)

	for i := range out {
		out[i].Urgency = Classify(out[i], now)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Urgency != out[j].Urgency {
			return out[i].Urgency > out[j].Urgency
		}
		di, okI := out[i].NearestDeadline()
		dj, okJ := out[j].NearestDeadline()
		if okI != okJ {
			return okI // deadline-bearing records first
		}
		if !okI {
			return false
		}
		return di.Before(dj)
	})

	return out
}

// Buckets partitions a ranked sequence into the three presentation
// groups.
type Buckets struct {
	Urgent   []models.Grant `json:"urgent"`   // tier >= 4
	Upcoming []models.Grant `json:"upcoming"` // 2 <= tier < 4
	Future   []models.Grant `json:"future"`   // tier < 2, including no-deadline
}

// Group partitions ranked grants into urgency buckets.
func Group(ranked []models.Grant) Buckets {
	var b Buckets
	for _, g := range ranked {
		switch {
		case g.Urgency >= UrgencyHigh:
			b.Urgent = append(b.Urgent, g)
		case g.Urgency >= UrgencyLow:
			b.Upcoming = append(b.Upcoming, g)
		default:
			b.Future = append(b.Future, g)
		}
	}
	return b
}
