package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benarowo/circleconnect/internal/api"
	"github.com/benarowo/circleconnect/internal/config"
	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/benarowo/circleconnect/internal/repository/postgres"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()
	if cfg.Environment == "development" {
		logger, _ = zap.NewDevelopment()
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := postgres.Migrate(db, cfg.SessionTableName); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, cfg.SessionTableName)
	if err := postgres.SeedRoles(context.Background(), repos); err != nil {
		logger.Fatal("failed to seed roles", zap.Error(err))
	}

	var limiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis ping failed, login rate limiting disabled", zap.Error(err))
		} else {
			limiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
		}
		cancel()
	}

	hub := realtime.NewHub(logger)
	go hub.Run()

	services := service.NewServices(repos, cfg, hub, limiter, logger)
	router := api.NewRouter(services, hub, repos, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	hub.Stop()
	logger.Info("server stopped")
}
