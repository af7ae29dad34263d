package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/auth"
	"github.com/devmatch/devmatch/internal/cache"
)

// AppContext holds shared dependencies (DB, Redis, Logger, JWT, etc.)
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	JWT        *auth.JWTer
}

// New creates a new AppContext
func New(db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, jwter *auth.JWTer) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		JWT:        jwter,
	}
}
