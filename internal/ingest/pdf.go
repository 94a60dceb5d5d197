package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	rpdf "rsc.io/pdf"
)

// maxPDFBytes caps how much of a linked PDF is read for deadline
// supplementation.
const maxPDFBytes = 10 << 20

// extractPDFText pulls the plain text out of a PDF document. The parser
// panics on some malformed files, so recover and report it as an error.
func extractPDFText(content []byte) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			text = ""
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		for _, fragment := range page.Content().Text {
			builder.WriteString(fragment.S)
			builder.WriteString(" ")
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// DeadlinesFromPDF fetches a linked PDF and runs the profile's deadline
// patterns over its text. Best effort: any failure returns an error the
// caller logs and moves past.
func DeadlinesFromPDF(ctx context.Context, fetcher Fetcher, pdfURL string, profile ExtractionProfile, now time.Time) ([]time.Time, error) {
	doc, err := fetcher.Fetch(ctx, pdfURL)
	if err != nil {
		return nil, err
	}
	defer doc.Body.Close()

	content, err := io.ReadAll(io.LimitReader(doc.Body, maxPDFBytes))
	if err != nil {
		return nil, fmt.Errorf("pdf read failed: %w", err)
	}

	text, err := extractPDFText(content)
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", err)
	}

	return ExtractDeadlines(text, profile, now), nil
}
