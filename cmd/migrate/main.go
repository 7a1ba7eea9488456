package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/internal/store"
)

// CLI flags
var (
	input     = flag.String("input", "portfolio-data.json", "Path to an exported content document")
	backend   = flag.String("backend", "file", "Target store backend: file or redis")
	dataDir   = flag.String("data-dir", "data", "Data directory for the file backend")
	redisHost = flag.String("redis-host", "localhost", "Redis host")
	redisPort = flag.Int("redis-port", 6379, "Redis port")
	redisPass = flag.String("redis-pass", "", "Redis password")
	redisDB   = flag.Int("redis-db", 0, "Redis database")
	dryRun    = flag.Bool("dry-run", false, "Validate the document without writing to the store")
)

// Imports a legacy content export into the store. Documents from older
// exports carry a single image per project; decoding migrates that field
// into the image list, so a migrated store is always in the current shape.
func main() {
	flag.Parse()

	log.Println("=============================")
	log.Println("Content Export Migration")
	log.Println("=============================")

	if *dryRun {
		log.Println("[DRY RUN MODE] No store changes will be made")
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *input, err)
	}

	content, err := domain.DecodeContent(data)
	if err != nil {
		log.Fatalf("Document validation failed: %v", err)
	}

	migrated := 0
	for _, p := range content.Projects {
		if len(p.Images) == 1 {
			migrated++
		}
	}

	log.Printf("✓ Loaded document: %d projects, %d skill categories", len(content.Projects), len(content.Skills))
	log.Printf("✓ Validation passed (%d single-image projects normalized)", migrated)

	if *dryRun {
		log.Println("✓ Dry-run completed successfully")
		return
	}

	logger := zap.NewNop()

	var kv store.KV
	switch *backend {
	case "redis":
		kv, err = store.NewRedisKV(store.RedisConfig{
			Host:     *redisHost,
			Port:     *redisPort,
			Password: *redisPass,
			DB:       *redisDB,
		}, logger)
	default:
		kv, err = store.NewFileKV(*dataDir, logger)
	}
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", *backend, err)
	}
	defer kv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := store.NewContentRepository(kv, logger)
	if _, err := repo.LoadAll(ctx); err != nil {
		log.Fatalf("Failed to inspect existing store: %v", err)
	}

	if err := repo.ReplaceAll(ctx, content); err != nil {
		log.Fatalf("Failed to write content: %v", err)
	}

	log.Println("✓ Migration completed successfully")
}
