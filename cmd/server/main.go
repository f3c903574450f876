package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mindpulse/internal/analysis"
	"github.com/pscheid92/mindpulse/internal/app"
	"github.com/pscheid92/mindpulse/internal/config"
	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/pscheid92/mindpulse/internal/dynamo"
	"github.com/pscheid92/mindpulse/internal/logging"
	"github.com/pscheid92/mindpulse/internal/redis"
	"github.com/pscheid92/mindpulse/internal/sentiment"
	"github.com/pscheid92/mindpulse/internal/server"
)

func setupConfig() *config.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupModel picks the classifier backing: the exported training artifact
// when configured, otherwise the lexicon-based stand-in.
func setupModel(cfg *config.Config) domain.SentimentModel {
	if cfg.ModelPath == "" {
		slog.Info("No model artifact configured, using lexicon-based sentiment model")
		return sentiment.NewVaderModel()
	}

	model, err := sentiment.LoadLinearModel(cfg.ModelPath)
	if err != nil {
		slog.Error("Failed to load model artifact", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded sentiment model artifact", "path", cfg.ModelPath)
	return model
}

func setupKeywords(cfg *config.Config) analysis.KeywordConfig {
	keywords, err := analysis.LoadKeywords(cfg.KeywordsPath)
	if err != nil {
		slog.Error("Failed to load keyword config", "path", cfg.KeywordsPath, "error", err)
		os.Exit(1)
	}
	return keywords
}

func setupCache(cfg *config.Config) *redis.ResultCache {
	if cfg.RedisURL == "" {
		slog.Info("No Redis configured, result caching disabled")
		return nil
	}

	cache, err := redis.NewResultCache(cfg.RedisURL, cfg.ResultCacheTTL)
	if err != nil {
		slog.Error("Failed to create result cache", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return cache
}

func runGracefulShutdown(srv *server.Server, cache *redis.ResultCache) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if cache != nil {
			if err := cache.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	clock := clockwork.NewRealClock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbClient, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	cancel()
	if err != nil {
		slog.Error("Failed to create DynamoDB client", "error", err)
		os.Exit(1)
	}

	entryStore := dynamo.NewEntryStore(dbClient, cfg.JournalsTable, cfg.MessagesTable)
	resultStore := dynamo.NewResultStore(dbClient, cfg.ResultsTable, cfg.ResultTTL, clock)
	cache := setupCache(cfg)

	oracle := sentiment.NewOracle(setupModel(cfg))
	engine := analysis.NewEngine(oracle, setupKeywords(cfg), clock)

	var entries domain.EntryStore = dynamo.NewBreakerStore(entryStore)
	var resultCache domain.ResultCache
	if cache != nil {
		resultCache = cache
	}
	svc := app.NewService(entries, resultStore, resultCache, engine, clock)

	var cacheHealth interface {
		Ping(ctx context.Context) error
	}
	if cache != nil {
		cacheHealth = cache
	}
	srv := server.NewServer(cfg, svc, entryStore, cacheHealth)

	done := runGracefulShutdown(srv, cache)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Server stopped")
}
