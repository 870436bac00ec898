// cmd/dinebot-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dinebot/internal/catalog"
	"dinebot/internal/common/config"
	"dinebot/internal/common/database"
	"dinebot/internal/common/logger"
	"dinebot/internal/common/observability"
	"dinebot/internal/models"
	"dinebot/internal/nlp/entity"
	"dinebot/internal/nlp/phrase"
	"dinebot/internal/query"
	"dinebot/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dinebot server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("dinebot-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Build the catalog store chain ---
	var store catalog.Store

	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		store = catalog.NewPostgresStore(pg, log)
	} else {
		items, err := catalog.LoadMenuFile(cfg.Menu.SeedPath)
		if err != nil {
			zapLog.Fatal("menu seed load failed", zap.Error(err))
		}
		zapLog.Info("Menu loaded from seed file",
			zap.String("path", cfg.Menu.SeedPath),
			zap.Int("items", len(items)),
		)
		store = catalog.NewMemoryStore(items)
	}

	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		searchStore := catalog.NewSearchStore(store, esClient, cfg.Menu.SearchIndex, log)
		if items, err := store.GetAllItems(ctx); err == nil {
			if err := searchStore.IndexMenu(ctx, items); err != nil {
				zapLog.Warn("menu indexing failed, search degrades to backing store", zap.Error(err))
			}
		}
		store = searchStore
	}

	if cfg.Database.Redis.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		store = catalog.NewCachedStore(store, redisClient, config.GetDuration(cfg.Menu.CacheTTL), log)
	}

	// --- Build the NLP pipeline ---
	var entityOpts []entity.Option
	if len(cfg.NLP.FoodWords) > 0 {
		entityOpts = append(entityOpts, entity.WithLexicon(phrase.NewLexiconExtractor(cfg.NLP.FoodWords...)))
	}
	if cfg.NLP.PhraseService.Enabled {
		entityOpts = append(entityOpts, entity.WithPhraseExtractor(phrase.NewModelExtractor(&phrase.ModelConfig{
			BaseURL:    cfg.NLP.PhraseService.BaseURL,
			Timeout:    config.GetDuration(cfg.NLP.PhraseService.Timeout),
			MaxRetries: cfg.NLP.PhraseService.MaxRetries,
		}, log)))
	}
	extractor := entity.New(log, entityOpts...)

	orch := query.NewOrchestrator(store, extractor, &query.Config{
		FuzzyCutoff: cfg.NLP.FuzzyCutoff,
		Greetings:   cfg.Responses.Greetings,
		Fallbacks:   cfg.Responses.Fallbacks,
		Restaurant:  restaurantOrDefault(cfg.Restaurant),
	}, log)

	// --- HTTP Server ---
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.New(cfg, orch, store, obs, log).Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}

// restaurantOrDefault fills the profile with sensible demo values when the
// config omits it entirely.
func restaurantOrDefault(r models.RestaurantInfo) models.RestaurantInfo {
	if r.Name != "" {
		return r
	}
	return models.RestaurantInfo{
		Name:    "The Golden Spoon",
		Address: "42 MG Road, Bengaluru",
		Phone:   "+91 80 4000 1234",
		Email:   "hello@goldenspoon.example",
		OpeningHours: models.OpeningHours{
			Weekday: "11:00 AM - 10:00 PM",
			Weekend: "10:00 AM - 11:00 PM",
			Closed:  "Monday",
		},
		CuisineTypes:    []string{"Indian", "Continental"},
		SeatingCapacity: 60,
		Facilities:      []string{"WiFi", "Parking", "Outdoor Seating"},
	}
}
