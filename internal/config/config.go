package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	PlacesAPIBaseURL string
	PlacesAPIKey     string

	// AllowAllTasks bypasses weekly selection and assigns every eligible
	// template. Debug aid for catalog review, never enabled in production.
	AllowAllTasks bool

	SnapshotCacheTTL   time.Duration
	GenerationLockTTL  time.Duration
	AuditSweepInterval time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		PlacesAPIBaseURL: getEnv("PLACES_API_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesAPIKey:     os.Getenv("PLACES_API_KEY"),

		AllowAllTasks: getEnv("ALLOW_ALL_TASKS", "false") == "true",
	}

	var err error
	cfg.SnapshotCacheTTL, err = time.ParseDuration(getEnv("SNAPSHOT_CACHE_TTL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_CACHE_TTL: %w", err)
	}
	cfg.GenerationLockTTL, err = time.ParseDuration(getEnv("GENERATION_LOCK_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_LOCK_TTL: %w", err)
	}
	cfg.AuditSweepInterval, err = time.ParseDuration(getEnv("AUDIT_SWEEP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_SWEEP_INTERVAL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
