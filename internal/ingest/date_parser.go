package ingest

import (
	"strings"
	"time"
)

var deadlineDateFormats = []string{
	"January 2, 2006",
	"January 2 2006",
}

// parseDeadlineToken parses a captured date token against the supported
// formats. A token that fails both formats is simply not a deadline;
// absence is the normal outcome, not an error.
func parseDeadlineToken(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	for _, layout := range deadlineDateFormats {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractDeadlines applies the profile's deadline patterns in order and
// returns the union of parsed dates that lie strictly in the future
// relative to now. Past and unparsable tokens are dropped, never
// substituted.
func ExtractDeadlines(text string, profile ExtractionProfile, now time.Time) []time.Time {
	var out []time.Time
	seen := make(map[time.Time]struct{})

	for _, pattern := range profile.DeadlinePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			parsed, ok := parseDeadlineToken(match[1])
			if !ok {
				continue
			}
			if !parsed.After(now) {
				continue
			}
			if _, dup := seen[parsed]; dup {
				continue
			}
			seen[parsed] = struct{}{}
			out = append(out, parsed)
		}
	}

	return out
}
