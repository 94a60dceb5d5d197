package ingest

import (
	"bytes"
	"context"
	"log"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// AgencyCollector scrapes an agency index page (NIH guide, NSF funding
// search), follows links matching the configured pattern, and yields one
// candidate per detail page. Link inspection is capped by MaxLinks and
// requests to the origin are spaced by the configured delay.
type AgencyCollector struct {
	Config SourceConfig
}

func (c *AgencyCollector) Collect(ctx context.Context, stats *SourceStats) []Candidate {
	pattern, err := regexp.Compile(c.Config.LinkPattern)
	if err != nil {
		log.Printf("[%s] bad link pattern %q: %v", c.Config.ID, c.Config.LinkPattern, err)
		stats.Errors++
		return nil
	}

	base, err := url.Parse(c.Config.BaseURL)
	if err != nil {
		log.Printf("[%s] bad base URL %q: %v", c.Config.ID, c.Config.BaseURL, err)
		stats.Errors++
		return nil
	}

	maxLinks := c.Config.MaxLinks
	if maxLinks == 0 {
		maxLinks = 20
	}
	delay := time.Duration(c.Config.DelaySeconds) * time.Second
	if delay == 0 {
		delay = time.Second
	}
	timeout := time.Duration(c.Config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(base.Host),
		colly.UserAgent(defaultUserAgent),
		colly.DetectCharset(),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1, // sequential for politeness
		Delay:       delay,
	})
	collector.SetRequestTimeout(timeout)

	detail := collector.Clone()

	var links []string
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if len(links) >= maxLinks || !pattern.MatchString(href) {
			return
		}
		links = appendUnique(links, e.Request.AbsoluteURL(href))
	})
	collector.OnError(func(r *colly.Response, err error) {
		log.Printf("[%s] error fetching %s: %v", c.Config.ID, r.Request.URL, err)
		stats.Errors++
	})

	profile := ProfileFor(c.Config.SourceType)
	var candidates []Candidate
	detail.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			log.Printf("[%s] parse error for %s: %v", c.Config.ID, r.Request.URL, err)
			stats.Errors++
			return
		}

		candidates = append(candidates, Candidate{
			Title:       ExtractTitle(doc),
			Agency:      c.Config.Agency,
			URL:         r.Request.URL.String(),
			SourceType:  c.Config.SourceType,
			Text:        doc.Text(),
			Description: ExtractDescription(doc, profile.DescriptionLimit),
			PDFLinks:    collectPDFLinks(doc, r.Request.AbsoluteURL),
		})
		stats.Found++
	})
	detail.OnError(func(r *colly.Response, err error) {
		log.Printf("[%s] error fetching %s: %v", c.Config.ID, r.Request.URL, err)
		stats.Errors++
	})

	if err := collector.Visit(c.Config.BaseURL); err != nil {
		log.Printf("[%s] fetch error for index %s: %v", c.Config.ID, c.Config.BaseURL, err)
		stats.Errors++
		return nil
	}
	collector.Wait()

	for _, link := range links {
		if ctx.Err() != nil {
			break
		}
		if err := detail.Visit(link); err != nil {
			log.Printf("[%s] fetch error for %s: %v", c.Config.ID, link, err)
			stats.Errors++
		}
	}
	detail.Wait()

	return candidates
}
