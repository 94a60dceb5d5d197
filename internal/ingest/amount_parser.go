package ingest

import (
	"strconv"
	"strings"
)

// parseAmountToken strips thousands separators and the currency symbol
// from a captured token and parses it as an integer dollar amount.
func parseAmountToken(token string) (int, bool) {
	clean := strings.ReplaceAll(token, ",", "")
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.TrimSpace(clean)
	// drop a cents suffix; amounts are whole dollars
	if idx := strings.IndexByte(clean, '.'); idx >= 0 {
		clean = clean[:idx]
	}
	if clean == "" {
		return 0, false
	}
	v, err := strconv.Atoi(clean)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractAmounts applies the profile's amount patterns in order and
// returns every distinct parsed value inside the profile's plausible
// range. Values outside the range are discarded silently.
func ExtractAmounts(text string, profile ExtractionProfile) []int {
	var out []int
	seen := make(map[int]struct{})

	for _, pattern := range profile.AmountPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			v, ok := parseAmountToken(match[1])
			if !ok {
				continue
			}
			if v < profile.MinAmount || v > profile.MaxAmount {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
