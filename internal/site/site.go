// Package site renders the static output of a run: an HTML dashboard, a
// deadline calendar, and an RSS feed.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/david/grant-tracker/internal/ingest"
	"github.com/david/grant-tracker/internal/models"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"formatAmounts": formatAmounts,
	"nearestDeadline": func(g models.Grant) string {
		d, ok := g.NearestDeadline()
		if !ok {
			return "No deadline listed"
		}
		return d.Format("January 2, 2006")
	},
}

var pageTemplates = template.Must(
	template.New("site").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl"))

type indexData struct {
	GeneratedAt time.Time
	Total       int
	Buckets     ingest.Buckets
}

type calendarData struct {
	GeneratedAt time.Time
	Months      []Month
}

// Generate writes index.html, calendar.html and grants_feed.xml under dir.
func Generate(dir, baseURL string, res ingest.Result, now time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := renderPage(dir, "index.html", "index.html.tmpl", indexData{
		GeneratedAt: now,
		Total:       len(res.Grants),
		Buckets:     res.Buckets,
	}); err != nil {
		return err
	}

	if err := renderPage(dir, "calendar.html", "calendar.html.tmpl", calendarData{
		GeneratedAt: now,
		Months:      BuildCalendar(res.Grants, now),
	}); err != nil {
		return err
	}

	return writeFeed(filepath.Join(dir, "grants_feed.xml"), res.Grants, baseURL, now)
}

func renderPage(dir, name, tmpl string, data any) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if err := pageTemplates.ExecuteTemplate(f, tmpl, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

func formatAmounts(g models.Grant) string {
	min, max, ok := g.AmountRange()
	if !ok {
		return "Amount not listed"
	}
	if min == max {
		return fmt.Sprintf("$%s", groupDigits(min))
	}
	return fmt.Sprintf("$%s - $%s", groupDigits(min), groupDigits(max))
}

func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
