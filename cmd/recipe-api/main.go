package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Varun5711/recipebook/internal/auth"
	"github.com/Varun5711/recipebook/internal/config"
	"github.com/Varun5711/recipebook/internal/database"
	"github.com/Varun5711/recipebook/internal/handlers"
	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/middleware"
	"github.com/Varun5711/recipebook/internal/redis"
	"github.com/Varun5711/recipebook/internal/service"
	"github.com/Varun5711/recipebook/internal/storage"
)

func main() {
	log := logger.New("recipe-api")
	log.SetStdLog()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	var (
		recipeStore storage.RecipeStore
		userStore   storage.UserStore
		storePinger storage.Pinger
	)

	switch cfg.Server.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		mem := storage.NewMemoryStorage()
		recipeStore, userStore, storePinger = mem, mem, mem

	case config.StorageDriverPostgres:
		dbManager, err := database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(ctx, logger.New("migrations")); err != nil {
			log.Fatal("Failed to migrate database: %v", err)
		}

		log.Info("Connected to Postgres with %d read replica(s)", len(cfg.Database.ReplicaDSNs))
		pg := storage.NewPostgresStorage(dbManager)
		recipeStore, userStore, storePinger = pg, storage.NewUserStorage(dbManager), pg

	default:
		log.Fatal("Unknown STORAGE_DRIVER %q", cfg.Server.StorageDriver)
	}

	healthChecks := map[string]storage.Pinger{"storage": storePinger}

	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		healthChecks["redis"] = redisClient
		limiter = middleware.NewRedisLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		log.Info("REDIS_ADDR not set, rate limiting per instance")
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = auth.GenerateSecret()
		if err != nil {
			log.Fatal("Failed to generate JWT secret: %v", err)
		}
		log.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	userService := service.NewUserService(
		userStore,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewJWTManager(jwtSecret, cfg.Auth.TokenTTL),
	)
	recipeService := service.NewRecipeService(recipeStore, userStore)

	router := handlers.NewRouter(handlers.RouterConfig{
		Recipes:        handlers.NewRecipeHandler(recipeService),
		Auth:           handlers.NewAuthHandler(userService),
		Health:         handlers.NewHealthHandler(healthChecks),
		AuthMiddleware: middleware.NewAuthMiddleware(userService),
		RateLimiter:    middleware.NewRateLimiter(limiter, cfg.RateLimit.Requests, cfg.RateLimit.TrustProxyHeaders),
		Log:            logger.New("http"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down recipe-api...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}

	log.Info("recipe-api stopped")
}
