package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"lokalpulse.com/gbpdashboard/internal/bootstrap"
	"lokalpulse.com/gbpdashboard/internal/config"
	"lokalpulse.com/gbpdashboard/internal/server"
	"lokalpulse.com/gbpdashboard/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, db, redisClient)
	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when redis is unreachable; the app degrades
// (no generation lock, no live notifications) instead of refusing to start.
func connectRedis(url string) *redis.Client {
	opts := &redis.Options{Addr: "localhost:6379"}
	if url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			log.Printf("invalid REDIS_URL, falling back to localhost: %v", err)
		} else {
			opts = parsed
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, continuing without it: %v", err)
		return nil
	}
	return client
}
