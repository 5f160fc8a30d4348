package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Store backend identifiers accepted in ACTIVITIES_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Server captures process-level configuration.
type Server struct {
	Addr         string
	Store        string
	DatabaseURL  string
	SnapshotFile string
	LogLevel     slog.Level
	Redis        RedisConfig
}

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ACTIVITIES_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	backend := strings.ToLower(os.Getenv("ACTIVITIES_STORE"))
	if backend == "" {
		backend = StoreMemory
	}

	return Server{
		Addr:         addr,
		Store:        backend,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SnapshotFile: os.Getenv("ACTIVITIES_SNAPSHOT_FILE"),
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
