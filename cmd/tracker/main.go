package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/ingest"
	"github.com/david/grant-tracker/internal/site"
	"github.com/david/grant-tracker/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.FromEnv()

	registry, err := ingest.LoadRegistry(os.Getenv("SOURCES_FILE"))
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	baseline, err := store.Load(cfg.SnapshotPath())
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	pipeline := ingest.New(cfg, registry, ingest.NewHTTPFetcher(0))
	res, err := pipeline.Run(ctx, baseline)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}

	if err := store.Save(cfg.SnapshotPath(), res.Grants); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	if err := site.Generate(cfg.DocsDir, cfg.BaseURL, res, res.StartedAt); err != nil {
		log.Fatalf("Failed to generate site: %v", err)
	}

	if cfg.ArchivePath != "" {
		archive, err := store.OpenArchive(cfg.ArchivePath)
		if err != nil {
			log.Printf("Failed to open run archive: %v", err)
		} else {
			if err := archive.RecordRun(ctx, res); err != nil {
				log.Printf("Failed to archive run: %v", err)
			}
			archive.Close()
		}
	}

	printSummary(res)
	log.Printf("Run %s complete: %d grants tracked, output in %s", res.RunID, len(res.Grants), cfg.DocsDir)
}

func printSummary(res ingest.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Source", "Found", "Kept", "Errors"})
	for _, st := range res.Stats {
		t.AppendRow(table.Row{st.SourceID, st.Found, st.Kept, st.Errors})
	}
	t.AppendFooter(table.Row{
		"urgent/upcoming/future",
		len(res.Buckets.Urgent),
		len(res.Buckets.Upcoming),
		len(res.Buckets.Future),
	})
	t.Render()

	log.Printf("Elapsed: %s", res.Duration.Round(time.Millisecond))
}
