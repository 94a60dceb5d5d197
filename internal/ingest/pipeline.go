package ingest

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/models"
)

// Pipeline runs one full aggregation pass: static catalog plus every
// configured source, extraction, relevance filtering, merge against the
// previous snapshot, urgency classification, and ranking.
type Pipeline struct {
	Config   config.Config
	Registry *Registry
	Fetcher  Fetcher

	// Now pins the run timestamp; zero means time.Now(). Tests use it to
	// make deadline arithmetic deterministic.
	Now time.Time

	// CollectorFactory overrides collector construction, letting tests
	// substitute canned candidates for live scraping.
	CollectorFactory func(SourceConfig) Collector
}

// Result is the outcome of a single pipeline run.
type Result struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Grants    []models.Grant // merged and ranked, urgency populated
	Buckets   Buckets
	Stats     []SourceStats
}

func New(cfg config.Config, reg *Registry, fetcher Fetcher) *Pipeline {
	return &Pipeline{Config: cfg, Registry: reg, Fetcher: fetcher}
}

// Run executes the pipeline against a baseline snapshot from the previous
// run. Source failures are absorbed into per-source stats; the only error
// returned is context cancellation.
func (p *Pipeline) Run(ctx context.Context, baseline []models.Grant) (Result, error) {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	runID := uuid.NewString()
	start := time.Now()

	log.Printf("[run %s] starting aggregation, baseline=%d grants", runID, len(baseline))

	if p.Config.ForceRefresh {
		baseline = nil
	} else {
		baseline = FilterBaseline(baseline, now)
	}

	var fresh []models.Grant
	var statsList []SourceStats

	catalogStats := SourceStats{SourceID: "static_catalog"}
	for _, g := range StaticGrants(now) {
		catalogStats.Found++
		if !IsRelevant(g, p.Config) {
			continue
		}
		catalogStats.Kept++
		fresh = append(fresh, g)
	}
	statsList = append(statsList, catalogStats)

	for i, src := range p.Registry.Sources {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		stats := SourceStats{SourceID: src.ID}
		candidates := p.collectorFor(src).Collect(ctx, &stats)
		for _, c := range candidates {
			g, ok := p.buildGrant(ctx, c, now, &stats)
			if !ok {
				continue
			}
			if !IsRelevant(g, p.Config) {
				continue
			}
			stats.Kept++
			fresh = append(fresh, g)
		}
		log.Printf("[run %s] source %s: found=%d kept=%d errors=%d",
			runID, stats.SourceID, stats.Found, stats.Kept, stats.Errors)
		statsList = append(statsList, stats)

		// politeness gap between sources on shared origins
		if i < len(p.Registry.Sources)-1 && src.DelaySeconds > 0 {
			time.Sleep(time.Duration(src.DelaySeconds) * time.Second)
		}
	}

	merged := Merge(baseline, fresh)
	ranked := Rank(merged, now)

	log.Printf("[run %s] done: fresh=%d merged=%d elapsed=%s",
		runID, len(fresh), len(ranked), time.Since(start).Round(time.Millisecond))

	return Result{
		RunID:     runID,
		StartedAt: now,
		Duration:  time.Since(start),
		Grants:    ranked,
		Buckets:   Group(ranked),
		Stats:     statsList,
	}, nil
}

func (p *Pipeline) collectorFor(src SourceConfig) Collector {
	if p.CollectorFactory != nil {
		return p.CollectorFactory(src)
	}
	if src.SourceType == models.SourceFoundation {
		return &FoundationCollector{Config: src, Fetcher: p.Fetcher}
	}
	return &AgencyCollector{Config: src}
}

// buildGrant turns a raw candidate into a grant record. Foundation
// candidates must carry at least one deadline or the word "grant" in
// their title; agency pages are kept even when sparse since relevance
// filtering still applies.
func (p *Pipeline) buildGrant(ctx context.Context, c Candidate, now time.Time, stats *SourceStats) (models.Grant, bool) {
	profile := ProfileFor(c.SourceType)

	deadlines := ExtractDeadlines(c.Text, profile, now)
	if len(deadlines) == 0 && len(c.PDFLinks) > 0 {
		fromPDF, err := DeadlinesFromPDF(ctx, p.Fetcher, c.PDFLinks[0], profile, now)
		if err != nil {
			log.Printf("pdf deadline extraction failed for %s: %v", c.PDFLinks[0], err)
			stats.Errors++
		} else {
			deadlines = fromPDF
		}
	}

	title := c.Title
	if title == "" {
		title = UnknownTitle
	}
	if c.SourceType == models.SourceFoundation &&
		len(deadlines) == 0 && !strings.Contains(strings.ToLower(title), "grant") {
		return models.Grant{}, false
	}

	// An empty description is a valid outcome; pages yielding neither a
	// meta description nor a long paragraph stay without one.
	return models.Grant{
		Title:       title,
		Agency:      c.Agency,
		URL:         c.URL,
		SourceType:  c.SourceType,
		Deadlines:   deadlines,
		Amounts:     ExtractAmounts(c.Text, profile),
		Description: c.Description,
		LastUpdated: now,
	}, true
}
