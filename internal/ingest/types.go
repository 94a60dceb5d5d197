package ingest

import (
	"context"
	"io"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

// Candidate represents the untrusted raw output of a collector: a page or
// page section that may describe a funding opportunity. Field extraction
// and relevance filtering happen downstream.
type Candidate struct {
	Title       string
	Agency      string
	URL         string
	SourceType  models.SourceType
	Text        string // plain page/section text used for pattern extraction
	Description string // best-effort short description, already truncated
	PDFLinks    []string
}

// FetchedDocument represents the raw result of a fetch operation.
type FetchedDocument struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
	FetchedAt   time.Time
}

// Fetcher retrieves raw content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedDocument, error)
}

// Collector produces candidates from one configured source. It is a
// finite, single-pass operation; fetch failures inside a collector are
// logged and reduce the candidate count, never abort the run.
type Collector interface {
	Collect(ctx context.Context, stats *SourceStats) []Candidate
}

// SourceStats holds per-source metrics for a run.
type SourceStats struct {
	SourceID string
	Found    int // candidates produced
	Kept     int // candidates that survived extraction + relevance
	Errors   int
}
