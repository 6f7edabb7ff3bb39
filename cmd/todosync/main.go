package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayhub-backend/internal/aiclient"
	"stayhub-backend/internal/config"
	"stayhub-backend/internal/tracker"
	"stayhub-backend/pkg/logger"
)

func main() {
	root := flag.String("root", ".", "directory tree to scan for TODO comments")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing to the tracker")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Tracker.BaseURL == "" || cfg.Tracker.ProjectID == "" {
		log.Fatal("TRACKER_BASE_URL and TRACKER_PROJECT_ID must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := tracker.NewClient(cfg.Tracker)
	ai := aiclient.NewClient(cfg.AI)

	syncer := tracker.NewSyncer(client, ai)
	result, err := syncer.Run(ctx, *root, *dryRun)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	mode := "sync"
	if *dryRun {
		mode = "dry-run"
	}
	fmt.Printf("TODO %s complete: scanned=%d created=%d updated=%d skipped=%d resolved=%d\n",
		mode, result.Scanned, result.Created, result.Updated, result.Skipped, result.Resolved)
}
