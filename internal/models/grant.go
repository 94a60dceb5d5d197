package models

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"
)

// SourceType identifies which extraction profile produced a grant.
type SourceType string

const (
	SourceStatic     SourceType = "static"
	SourceNIH        SourceType = "nih"
	SourceNSF        SourceType = "nsf"
	SourceFoundation SourceType = "foundation"
)

// Grant is one funding opportunity tracked across runs.
type Grant struct {
	Title       string      `json:"title"`
	Agency      string      `json:"agency"`
	URL         string      `json:"url"`
	SourceType  SourceType  `json:"source_type"`
	Deadlines   []time.Time `json:"deadlines"`
	Amounts     []int       `json:"amounts"`
	Description string      `json:"description"`
	Eligibility []string    `json:"eligibility,omitempty"`
	LastUpdated time.Time   `json:"last_updated"`
	// Urgency is derived from Deadlines and recomputed every run; the
	// persisted value is informational only.
	Urgency int `json:"urgency"`
}

// Key is the deduplication identity: normalized title + agency.
type Key struct {
	Title  string
	Agency string
}

func (g Grant) Key() Key {
	return Key{
		Title:  strings.ToLower(strings.TrimSpace(g.Title)),
		Agency: strings.ToLower(g.Agency),
	}
}

// GUID returns a stable identifier for feed items, derived from the
// identity key rather than a per-process hash.
func (g Grant) GUID() string {
	k := g.Key()
	sum := sha1.Sum([]byte(k.Title + "|" + k.Agency))
	return hex.EncodeToString(sum[:])
}

// NearestDeadline returns the earliest deadline, if any.
func (g Grant) NearestDeadline() (time.Time, bool) {
	if len(g.Deadlines) == 0 {
		return time.Time{}, false
	}
	min := g.Deadlines[0]
	for _, d := range g.Deadlines[1:] {
		if d.Before(min) {
			min = d
		}
	}
	return min, true
}

// AmountRange returns the min and max award amounts, if any.
func (g Grant) AmountRange() (int, int, bool) {
	if len(g.Amounts) == 0 {
		return 0, 0, false
	}
	min, max := g.Amounts[0], g.Amounts[0]
	for _, a := range g.Amounts[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return min, max, true
}
