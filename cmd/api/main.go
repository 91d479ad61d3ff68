package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bricksy-web/bricksy-backend/internal/cache"
	"github.com/bricksy-web/bricksy-backend/internal/config"
	"github.com/bricksy-web/bricksy-backend/internal/db"
	apihttp "github.com/bricksy-web/bricksy-backend/internal/http"
	"github.com/bricksy-web/bricksy-backend/internal/repository"
	"github.com/bricksy-web/bricksy-backend/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.JWTSecret == "dev-secret-change" {
		logger.Warn("jwt secret por defecto; configura JWT_SECRET en producción")
	}

	gdb, err := db.Open(cfg, logger)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}

	var userRepo repository.UserRepository = repository.NewSQLiteUserRepository(gdb)

	// Redis opcional: caché de perfiles para /api/me.
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			userRepo = cache.NewCachedUserRepository(rdb, 5*time.Minute, userRepo, "users")
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(logger, userRepo, cfg.MinPasswordLength)
	authHandler := apihttp.NewAuthHandler(logger, authSvc, tokenSvc)
	router := apihttp.NewRouter(logger, authHandler, cfg.CORSOrigins())

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
