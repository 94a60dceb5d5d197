package ingest

import (
	"strings"

	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/models"
)

// neuroKeywords is the fixed broad-domain vocabulary a grant can match
// even when no configured research area appears in its text.
var neuroKeywords = []string{
	"brain", "neural", "neuroscience", "cognitive", "behavior",
	"fmri", "eeg", "imaging", "psychology", "psychiatry", "mental health",
}

// IsRelevant decides whether a grant matches the configured research
// profile: (area match OR domain-keyword match) AND career match.
// A grant with no eligibility tags is open to all career stages;
// otherwise the configured stage must overlap a tag as a substring in
// either direction. The career AND is intentionally strict and can
// over-filter topically relevant grants whose tags use different wording.
func IsRelevant(g models.Grant, cfg config.Config) bool {
	text := strings.ToLower(g.Title + " " + g.Description)

	areaMatch := false
	for _, area := range cfg.ResearchAreas {
		if area != "" && strings.Contains(text, area) {
			areaMatch = true
			break
		}
	}

	neuroMatch := false
	for _, kw := range neuroKeywords {
		if strings.Contains(text, kw) {
			neuroMatch = true
			break
		}
	}

	careerMatch := true
	if len(g.Eligibility) > 0 {
		careerMatch = false
		stage := strings.ToLower(cfg.CareerStage)
		for _, tag := range g.Eligibility {
			t := strings.ToLower(tag)
			if strings.Contains(stage, t) || strings.Contains(t, stage) {
				careerMatch = true
				break
			}
		}
	}

	return (areaMatch || neuroMatch) && careerMatch
}
