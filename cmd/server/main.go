package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington/internal/activity"
	"mergington/internal/activity/metrics"
	"mergington/internal/activity/service"
	"mergington/internal/activity/store"
	"mergington/internal/platform/config"
	"mergington/internal/platform/httpserver"
	"mergington/internal/platform/logger"
	platformpg "mergington/internal/platform/postgres"
	platformredis "mergington/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the activity packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()
	rosters, health, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store setup failed", "backend", cfg.Store, "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	m := metrics.New()
	svc := activity.NewService(rosters, service.WithLogger(log), service.WithMetrics(m))
	h := activity.NewHandler(svc, log, m)

	router := chi.NewRouter()
	router.Get("/healthz", healthHandler(health))
	router.Handle("/metrics", promhttp.Handler())
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting activities service", "addr", cfg.Addr, "store", cfg.Store)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// buildStore selects the roster backend from config. The returned health
// check reports backend connectivity; the memory backend is always healthy.
func buildStore(ctx context.Context, cfg config.Server) (service.RosterStore, func(context.Context) error, func(), error) {
	noopHealth := func(context.Context) error { return nil }
	noopCleanup := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		var opts []store.Option
		if cfg.SnapshotFile != "" {
			opts = append(opts, store.WithSnapshot(store.NewFileSnapshot(cfg.SnapshotFile)))
		}
		return store.NewInMemory(opts...), noopHealth, noopCleanup, nil

	case config.StoreRedis:
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		if client == nil {
			return nil, nil, nil, fmt.Errorf("redis backend selected but REDIS_URL is empty")
		}
		s, err := store.NewRedis(ctx, client.Client)
		if err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		return s, client.Health, func() { client.Close() }, nil

	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, nil, fmt.Errorf("postgres backend selected but DATABASE_URL is empty")
		}
		pool, err := platformpg.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		s := store.NewPostgres(pool)
		if err := s.InitSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		if err := s.Seed(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return s, pool.Ping, pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

func healthHandler(health func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
