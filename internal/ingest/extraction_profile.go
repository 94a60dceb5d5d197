package ingest

import (
	"regexp"

	"github.com/david/grant-tracker/internal/models"
)

// dateToken matches a trailing "Month Day(,) Year" token.
const dateToken = `([A-Za-z]+\s+\d{1,2},?\s+\d{4})`

// ExtractionProfile is the ordered pattern table for one source type.
// Deadline patterns are evaluated in order with union-of-matches
// semantics; amount patterns likewise, bounded by the plausible range.
type ExtractionProfile struct {
	DeadlinePatterns []*regexp.Regexp
	AmountPatterns   []*regexp.Regexp
	MinAmount        int
	MaxAmount        int
	DescriptionLimit int
}

var nihProfile = ExtractionProfile{
	DeadlinePatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)application.*due.*?` + dateToken),
		regexp.MustCompile(`(?i)deadline.*?` + dateToken),
		regexp.MustCompile(`(?i)submit.*by.*?` + dateToken),
		regexp.MustCompile(`(?i)due\s+date.*?` + dateToken),
	},
	AmountPatterns: []*regexp.Regexp{
		regexp.MustCompile(`\$([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)award.*?([0-9,]+)`),
		regexp.MustCompile(`(?i)budget.*?([0-9,]+)`),
	},
	MinAmount:        1_000,
	MaxAmount:        10_000_000,
	DescriptionLimit: 500,
}

var nsfProfile = ExtractionProfile{
	DeadlinePatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)proposal.*due.*?` + dateToken),
		regexp.MustCompile(`(?i)deadline.*?` + dateToken),
		regexp.MustCompile(`(?i)submit.*by.*?` + dateToken),
		regexp.MustCompile(`(?i)full proposal.*?` + dateToken),
	},
	AmountPatterns: []*regexp.Regexp{
		regexp.MustCompile(`\$([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)award.*?([0-9,]+)`),
		regexp.MustCompile(`(?i)maximum.*?([0-9,]+)`),
	},
	// NSF awards sit in a narrower band than the generic range.
	MinAmount:        5_000,
	MaxAmount:        5_000_000,
	DescriptionLimit: 500,
}

var foundationProfile = ExtractionProfile{
	DeadlinePatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)deadline.*?` + dateToken),
		regexp.MustCompile(`(?i)due.*?` + dateToken),
		regexp.MustCompile(`(?i)apply.*by.*?` + dateToken),
		regexp.MustCompile(`(?i)submission.*?` + dateToken),
	},
	AmountPatterns: []*regexp.Regexp{
		regexp.MustCompile(`\$([0-9,]+)`),
	},
	MinAmount:        1_000,
	MaxAmount:        10_000_000,
	DescriptionLimit: 300,
}

var profiles = map[models.SourceType]ExtractionProfile{
	models.SourceNIH:        nihProfile,
	models.SourceNSF:        nsfProfile,
	models.SourceFoundation: foundationProfile,
}

// ProfileFor returns the extraction profile for a source type. Unknown
// types get the generic (NIH-shaped) profile.
func ProfileFor(st models.SourceType) ExtractionProfile {
	if p, ok := profiles[st]; ok {
		return p
	}
	return nihProfile
}
