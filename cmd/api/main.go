package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyno/internal/cache"
	"fyno/internal/config"
	"fyno/internal/database"
	"fyno/internal/logging"
	"fyno/internal/notify"
	"fyno/internal/repository"
	"fyno/internal/seed"
	"fyno/internal/server"
	"fyno/internal/services"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	startupTimeout    = 10 * time.Second
	dbStatsInterval   = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	logger.Info("starting", "app", cfg.App.Name, "version", cfg.App.Version, "port", cfg.App.Port, "debug", cfg.App.Debug)

	db, err := database.Open(&cfg.Database, logger.Named("db"))
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		logger.Info("closing database connections")
		if err := database.Close(db); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()
	store := repository.NewStore(db)

	var storyCache services.StoryCache
	if cfg.Cache.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		cancel()
		if err != nil {
			logger.Warn("story cache disabled", "error", err)
		} else {
			defer client.Close()
			storyCache = cache.NewStoryCache(client, cfg.Cache.StoryTTL)
			logger.Info("story cache enabled", "ttl", cfg.Cache.StoryTTL)
		}
	}

	sender, err := notify.NewSender(cfg, logger)
	if err != nil {
		return err
	}
	notifier := notify.NewInquiryNotifier(sender, cfg.Notify.InquiryEmail, logger)

	storySvc := services.NewStoryService(store, storyCache, logger)
	if cfg.Seed.Stories {
		if err := seedStories(storySvc, cfg.Seed.StoriesFile); err != nil {
			return err
		}
	}

	catalog, err := seed.Catalog()
	if err != nil {
		return err
	}

	handler := server.New(cfg, server.Services{
		Contact:    services.NewContactService(store, notifier, logger),
		Newsletter: services.NewNewsletterService(store, logger),
		Stories:    storySvc,
		Catalog:    services.NewCatalogService(catalog),
		Health:     services.NewHealthService(cfg.App.Name, store),
	}, logger)

	errorLog, err := zap.NewStdLogAt(logger.SugaredLogger.Desugar().Named("http"), zap.WarnLevel)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          errorLog,
	}

	statsCtx, stopStats := context.WithCancel(context.Background())
	defer stopStats()
	go recordDBStats(statsCtx, db, logger)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("starting graceful shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("error during graceful shutdown", "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			_ = httpServer.Close()
		}
	}
	if err := notifier.Wait(ctx); err != nil {
		logger.Warn("pending inquiry notifications abandoned", "error", err)
	}

	logger.Info("server shutdown complete")
	return nil
}

func seedStories(svc *services.StoryService, path string) error {
	stories, err := seed.Stories(path)
	if err != nil {
		return fmt.Errorf("load seed stories: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if _, err := svc.Seed(ctx, stories, false); err != nil {
		return fmt.Errorf("seed stories: %w", err)
	}
	return nil
}

func recordDBStats(ctx context.Context, db *gorm.DB, logger *logging.Logger) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := database.RecordStats(db); err != nil {
				logger.Debug("db stats unavailable", "error", err)
			}
		}
	}
}
