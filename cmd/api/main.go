package main

import (
	"context"
	"fmt"
	"log"

	"minibank-api/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	if cfg.TokenSecret == core.DefaultTokenSecret {
		log.Printf("WARNING: TOKEN_SECRET is unset, falling back to the development default; do not deploy like this")
	}

	var store core.UserStore
	if cfg.DatabaseURL != "" {
		pool, err := core.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()
		store = core.NewPgUserStore(pool)
	} else {
		log.Printf("DATABASE_URL not set; using in-memory store")
		store = core.NewMemoryStore()
	}

	var limiter *core.LoginLimiter
	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()
		limiter = core.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
	}

	seed := core.DefaultSeed()
	if cfg.SeedPath != "" {
		if seed, err = core.LoadSeedFile(cfg.SeedPath); err != nil {
			log.Fatalf("failed to load seed file: %v", err)
		}
	}
	if err := core.SeedStore(ctx, store, seed); err != nil {
		log.Fatalf("failed to seed store: %v", err)
	}

	authService := core.NewStoreAuthService(store)
	issuer := core.NewTokenIssuer([]byte(cfg.TokenSecret), cfg.TokenLifetime)

	router := core.NewRouter(cfg, authService, issuer, store, limiter)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
