package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/devmatch/devmatch/internal/app"
	"github.com/devmatch/devmatch/internal/auth"
	"github.com/devmatch/devmatch/internal/cache"
	"github.com/devmatch/devmatch/internal/config"
	"github.com/devmatch/devmatch/internal/db"
	"github.com/devmatch/devmatch/internal/logger"
	"github.com/devmatch/devmatch/internal/server"
	"github.com/devmatch/devmatch/internal/service/connect"
	"github.com/devmatch/devmatch/internal/service/identity"
)

func main() {
	_ = godotenv.Load()
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    time.Duration(cfg.JWT.TTLHours) * time.Hour,
	}

	appCtx := app.New(database, redisCache, log, jwter)

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	registrars := []server.Registrar{
		identity.NewRegistrar(appCtx),
		connect.NewRegistrar(appCtx),
	}

	router := server.BuildRouter(cfg, log, registrars...)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, router, log); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
