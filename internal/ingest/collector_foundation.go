package ingest

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var sectionClassPattern = regexp.MustCompile(`(?i)grant|funding|opportunity`)

// FoundationCollector scrapes a single foundation page and slices it into
// candidate sections. Foundation sites rarely follow a common structure, so
// the heuristic looks for div/section blocks whose class hints at grant
// content, keeping the first MaxSections matches.
type FoundationCollector struct {
	Config  SourceConfig
	Fetcher Fetcher
}

func (c *FoundationCollector) Collect(ctx context.Context, stats *SourceStats) []Candidate {
	res, err := c.Fetcher.Fetch(ctx, c.Config.BaseURL)
	if err != nil {
		log.Printf("[%s] fetch error for %s: %v", c.Config.ID, c.Config.BaseURL, err)
		stats.Errors++
		return nil
	}

	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		log.Printf("[%s] parse error for %s: %v", c.Config.ID, c.Config.BaseURL, err)
		stats.Errors++
		return nil
	}

	maxSections := c.Config.MaxSections
	if maxSections == 0 {
		maxSections = 5
	}

	var candidates []Candidate
	doc.Find("div,section").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !sectionClassPattern.MatchString(class) {
			return true
		}

		title := cleanText(sel.Find("h1,h2,h3,h4").First().Text())
		if title == "" {
			return true
		}

		text := sel.Text()
		if !c.matchesKeywords(text) {
			return true
		}

		candidates = append(candidates, Candidate{
			Title:       title,
			Agency:      c.Config.Agency,
			URL:         c.Config.BaseURL,
			SourceType:  c.Config.SourceType,
			Text:        text,
			Description: TruncateText(sanitizeText(text), ProfileFor(c.Config.SourceType).DescriptionLimit),
		})
		stats.Found++
		return len(candidates) < maxSections
	})

	return candidates
}

// matchesKeywords applies the source's optional keyword filter. Sources
// without keywords accept every section.
func (c *FoundationCollector) matchesKeywords(text string) bool {
	if len(c.Config.Keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range c.Config.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
