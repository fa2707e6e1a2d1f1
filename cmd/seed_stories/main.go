// Command seed_stories loads client stories into the database.
//
// Without -replace it only writes to an empty table, so it is safe to run on
// every deploy. With -replace the stored stories are swapped for the file's.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fyno/internal/cache"
	"fyno/internal/config"
	"fyno/internal/database"
	"fyno/internal/logging"
	"fyno/internal/repository"
	"fyno/internal/seed"
	"fyno/internal/services"
)

func main() {
	file := flag.String("file", "", "YAML stories file (default: embedded stories)")
	replace := flag.Bool("replace", false, "replace every stored story")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New("development", cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	n, err := run(ctx, cfg, logger, *file, *replace)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	fmt.Printf("%d stories written\n", n)
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger, file string, replace bool) (int, error) {
	stories, err := seed.Stories(file)
	if err != nil {
		return 0, err
	}

	db, err := database.Open(&cfg.Database, logger.Named("db"))
	if err != nil {
		return 0, err
	}
	defer database.Close(db)

	var storyCache services.StoryCache
	if cfg.Cache.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("cache unreachable, cached stories expire on their own", "error", err)
		} else {
			defer client.Close()
			storyCache = cache.NewStoryCache(client, cfg.Cache.StoryTTL)
		}
	}

	svc := services.NewStoryService(repository.NewStore(db), storyCache, logger)
	return svc.Seed(ctx, stories, replace)
}
