package ingest

import (
	"fmt"
	"time"
)

// NextOccurrences resolves a list of annually recurring "Month Day"
// strings to their next future occurrence relative to now: this year's
// date if still ahead, otherwise the same date next year. Unparsable
// entries are skipped.
func NextOccurrences(dates []string, now time.Time) []time.Time {
	out := make([]time.Time, 0, len(dates))
	year := now.Year()

	for _, ds := range dates {
		deadline, err := time.Parse("January 2 2006", fmt.Sprintf("%s %d", ds, year))
		if err != nil {
			continue
		}
		if !deadline.After(now) {
			deadline, err = time.Parse("January 2 2006", fmt.Sprintf("%s %d", ds, year+1))
			if err != nil {
				continue
			}
		}
		out = append(out, deadline)
	}

	return out
}
