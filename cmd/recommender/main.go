// cmd/recommender/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mentorlink-engine/internal/api"
	"mentorlink-engine/internal/cache"
	"mentorlink-engine/internal/common/config"
	"mentorlink-engine/internal/common/database"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/common/observability"
	"mentorlink-engine/internal/recommend"
	"mentorlink-engine/internal/source"
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
			delay *= 2 // Exponential backoff
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

	zapLog.Info("Starting recommendation engine...",
		zap.String("environment", cfg.App.Environment),
		zap.String("cacheBackend", cfg.Engine.CacheBackend),
		zap.String("candidateSource", cfg.Engine.CandidateSource),
	)

	obs := observability.New("recommender")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Postgres with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pg.Ping(pingCtx)
	}, 10, 2*time.Second, zapLog, "Postgres initialization")
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()

	// --- Cache store ---
	var store cache.Store
	var sweeper *cache.Sweeper
	switch cfg.Engine.CacheBackend {
	case "redis":
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			zapLog.Fatal("redis ping failed", zap.Error(err))
		}
		store = cache.NewRedisStore(rdb.Client, log)
	default:
		pgStore := cache.NewPostgresStore(pg.DB, log)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("cache schema init failed", zap.Error(err))
		}
		store = pgStore
		sweeper = cache.NewSweeper(pgStore, cfg.Engine.SweepInterval, log)
		sweeper.Start(ctx)
		defer sweeper.Stop()
	}

	// --- Upstream sources ---
	pgSource := source.NewPostgresSource(pg.DB, log)
	var candidates source.CandidateSource = pgSource
	if cfg.Engine.CandidateSource == "elasticsearch" {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch init failed", zap.Error(err))
		}
		if err := es.Ping(); err != nil {
			zapLog.Warn("elasticsearch ping failed", zap.Error(err))
		}
		candidates = source.NewElasticsearchSource(es.Client, cfg.Database.Elasticsearch.Index, log)
	}

	// --- Engine + API ---
	service := recommend.NewService(
		recommend.Config{
			CacheTTL:          cfg.Engine.CacheTTL,
			CacheBackendLabel: cfg.Engine.CacheBackend,
			DefaultLimit:      cfg.Engine.DefaultLimit,
			ScoringTimeout:    time.Duration(cfg.Engine.ScoringTimeout) * time.Millisecond,
		},
		candidates,
		pgSource,
		store,
		obs,
		log,
	)

	mux := http.NewServeMux()
	api.NewServer(service, log).Routes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}
