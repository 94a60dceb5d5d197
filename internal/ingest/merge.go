package ingest

import (
	"time"

	"github.com/david/grant-tracker/internal/models"
)

// StalenessWindow is the trailing span within which a persisted record
// may be reused as merge baseline without being re-collected.
const StalenessWindow = 7 * 24 * time.Hour

// FilterBaseline keeps only baseline records updated strictly within the
// staleness window. A record exactly at the boundary is pruned.
func FilterBaseline(baseline []models.Grant, now time.Time) []models.Grant {
	cutoff := now.Add(-StalenessWindow)
	out := make([]models.Grant, 0, len(baseline))
	for _, g := range baseline {
		if g.LastUpdated.After(cutoff) {
			out = append(out, g)
		}
	}
	return out
}

// Merge deduplicates baseline ∪ fresh by identity key. Within a key the
// record with the greater LastUpdated wins; ties keep the first-seen
// record (baseline before fresh, in original order). Output preserves
// first-seen order, so the result is deterministic.
func Merge(baseline, fresh []models.Grant) []models.Grant {
	byKey := make(map[models.Key]int)
	var out []models.Grant

	for _, g := range append(append([]models.Grant{}, baseline...), fresh...) {
		key := g.Key()
		if idx, ok := byKey[key]; ok {
			if g.LastUpdated.After(out[idx].LastUpdated) {
				out[idx] = g
			}
			continue
		}
		byKey[key] = len(out)
		out = append(out, g)
	}

	return out
}
