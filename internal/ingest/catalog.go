package ingest

import (
	"time"

	"github.com/david/grant-tracker/internal/models"
)

// catalogEntry is one known recurring program. Deadlines are "Month Day"
// strings resolved to their next occurrence at run time, so the catalog
// never emits past dates.
type catalogEntry struct {
	Title       string
	Agency      string
	URL         string
	Deadlines   []string
	Amounts     []int
	Description string
	Eligibility []string
}

var staticCatalog = []catalogEntry{
	{
		Title:       "NIH F31 Predoctoral Fellowship",
		Agency:      "NIH",
		URL:         "https://grants.nih.gov/grants/guide/pa-files/PA-23-271.html",
		Deadlines:   []string{"April 8", "August 8", "December 8"},
		Amounts:     []int{25000, 30000},
		Description: "Predoctoral fellowships for graduate students conducting dissertation research.",
		Eligibility: []string{"graduate student", "phd"},
	},
	{
		Title:       "NIH F32 Postdoctoral Fellowship",
		Agency:      "NIH",
		URL:         "https://grants.nih.gov/grants/guide/pa-files/PA-23-272.html",
		Deadlines:   []string{"April 8", "August 8", "December 8"},
		Amounts:     []int{50000, 60000},
		Description: "Postdoctoral fellowships for recent PhD recipients.",
		Eligibility: []string{"postdoc", "recent phd"},
	},
	{
		Title:       "NIH K01 Career Development Award",
		Agency:      "NIH",
		URL:         "https://grants.nih.gov/grants/guide/pa-files/PA-23-273.html",
		Deadlines:   []string{"February 12", "June 12", "October 12"},
		Amounts:     []int{100000, 150000},
		Description: "Career development awards for early-career investigators.",
		Eligibility: []string{"assistant professor", "early career"},
	},
	{
		Title:       "NSF Graduate Research Fellowship",
		Agency:      "NSF",
		URL:         "https://www.nsfgrfp.org/",
		Deadlines:   []string{"October 15"},
		Amounts:     []int{37000, 46000},
		Description: "Fellowship for outstanding graduate students in STEM fields.",
		Eligibility: []string{"graduate student", "early graduate"},
	},
	{
		Title:       "Brain & Behavior Research Foundation Young Investigator Grant",
		Agency:      "Brain & Behavior Research Foundation",
		URL:         "https://www.bbrfoundation.org/grants-prizes/young-investigator-grants",
		Deadlines:   []string{"September 15"},
		Amounts:     []int{70000},
		Description: "Grants for early-career investigators in brain and behavior research.",
		Eligibility: []string{"postdoc", "assistant professor"},
	},
	{
		Title:       "Simons Foundation Autism Research Initiative (SFARI)",
		Agency:      "Simons Foundation",
		URL:         "https://www.sfari.org/grant-opportunities/",
		Deadlines:   []string{"January 15", "July 15"},
		Amounts:     []int{100000, 300000},
		Description: "Research grants focused on autism spectrum disorders.",
		Eligibility: []string{"assistant professor", "associate professor", "professor"},
	},
}

// StaticGrants materializes the fixed catalog for this run. Amounts are
// authored data and skip the scraped-bound validation; deadlines are
// resolved through the recurrence generator.
func StaticGrants(now time.Time) []models.Grant {
	out := make([]models.Grant, 0, len(staticCatalog))
	for _, e := range staticCatalog {
		out = append(out, models.Grant{
			Title:       e.Title,
			Agency:      e.Agency,
			URL:         e.URL,
			SourceType:  models.SourceStatic,
			Deadlines:   NextOccurrences(e.Deadlines, now),
			Amounts:     e.Amounts,
			Description: e.Description,
			Eligibility: e.Eligibility,
			LastUpdated: now,
		})
	}
	return out
}
