package ingest

import (
	"context"
	"testing"
	"time"
)

func TestExtractPDFText_GarbageInputErrorsNotPanics(t *testing.T) {
	if _, err := extractPDFText([]byte("this is not a pdf")); err == nil {
		t.Fatal("expected error for non-pdf content")
	}
	if _, err := extractPDFText([]byte("%PDF-1.4 truncated garbage")); err == nil {
		t.Fatal("expected error for truncated pdf")
	}
}

func TestDeadlinesFromPDF_FetchFailurePropagates(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := DeadlinesFromPDF(context.Background(), &MockFetcher{}, "https://example.org/missing.pdf", nihProfile, now)
	if err == nil {
		t.Fatal("expected error when the pdf cannot be fetched")
	}
}
