package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/david/grant-tracker/internal/api"
	"github.com/david/grant-tracker/internal/auth"
	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/ingest"
	"github.com/david/grant-tracker/internal/store"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	cfg := config.FromEnv()

	registry, err := ingest.LoadRegistry(os.Getenv("SOURCES_FILE"))
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	var archive *store.Archive
	if cfg.ArchivePath != "" {
		archive, err = store.OpenArchive(cfg.ArchivePath)
		if err != nil {
			log.Fatalf("Failed to open run archive: %v", err)
		}
		defer archive.Close()
	}

	srv := api.NewServer(cfg, registry, authService, archive)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
