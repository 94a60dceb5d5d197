package site

import (
	"sort"
	"time"

	"github.com/david/grant-tracker/internal/models"
)

// Month is one calendar bucket of upcoming deadlines.
type Month struct {
	Label   string // e.g. "September 2026"
	Entries []Entry
}

// Entry is one deadline occurrence within a month.
type Entry struct {
	Date   time.Time
	Title  string
	Agency string
	URL    string
}

// BuildCalendar groups every deadline within the next twelve months by
// month, in chronological order. A grant with several deadlines appears
// once per deadline.
func BuildCalendar(grants []models.Grant, now time.Time) []Month {
	horizon := now.AddDate(1, 0, 0)

	var entries []Entry
	for _, g := range grants {
		for _, d := range g.Deadlines {
			if d.Before(now) || d.After(horizon) {
				continue
			}
			entries = append(entries, Entry{
				Date:   d,
				Title:  g.Title,
				Agency: g.Agency,
				URL:    g.URL,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	var months []Month
	for _, e := range entries {
		label := e.Date.Format("January 2006")
		if len(months) == 0 || months[len(months)-1].Label != label {
			months = append(months, Month{Label: label})
		}
		last := &months[len(months)-1]
		last.Entries = append(last.Entries, e)
	}
	return months
}
