package site

import (
	"fmt"
	"os"
	"time"

	"github.com/gorilla/feeds"

	"github.com/david/grant-tracker/internal/models"
)

const feedItemLimit = 30

// BuildFeed produces the RSS feed for the top ranked grants. Item GUIDs
// derive from the grant identity key, so re-running the pipeline does not
// re-surface unchanged grants as new items in feed readers.
func BuildFeed(grants []models.Grant, baseURL string, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       "Grant Tracker - Funding Opportunities",
		Link:        &feeds.Link{Href: baseURL},
		Description: "Aggregated research funding opportunities, ranked by deadline urgency",
		Created:     now,
	}

	for i, g := range grants {
		if i >= feedItemLimit {
			break
		}

		desc := g.Description
		if d, ok := g.NearestDeadline(); ok {
			desc = fmt.Sprintf("Deadline: %s. %s", d.Format("January 2, 2006"), desc)
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          g.GUID(),
			Title:       fmt.Sprintf("%s (%s)", g.Title, g.Agency),
			Link:        &feeds.Link{Href: g.URL},
			Description: desc,
			Created:     g.LastUpdated,
		})
	}
	return feed
}

func writeFeed(path string, grants []models.Grant, baseURL string, now time.Time) error {
	rss, err := BuildFeed(grants, baseURL, now).ToRss()
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}
	if err := os.WriteFile(path, []byte(rss), 0o644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	return nil
}
