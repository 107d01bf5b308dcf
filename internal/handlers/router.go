package handlers

import (
	"net/http"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/metrics"
	"github.com/Varun5711/recipebook/internal/middleware"
	"github.com/gorilla/mux"
)

type RouterConfig struct {
	Recipes        *RecipeHandler
	Auth           *AuthHandler
	Health         *HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
	Log         *logger.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Instrument)
	r.Use(middleware.AccessLog(cfg.Log))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.HandleFunc("/health", cfg.Health.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	NewDocsHandler().RegisterRoutes(r)

	r.HandleFunc("/api/register", cfg.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/login", cfg.Auth.Login).Methods(http.MethodPost)

	recipes := r.PathPrefix("/api/recipe").Subrouter()
	recipes.Use(cfg.AuthMiddleware.RequireAuth)
	recipes.HandleFunc("/new", cfg.Recipes.Create).Methods(http.MethodPost)
	recipes.HandleFunc("/search", cfg.Recipes.Search).Methods(http.MethodGet)
	recipes.HandleFunc("/{id:[0-9]+}", cfg.Recipes.Get).Methods(http.MethodGet)
	recipes.HandleFunc("/{id:[0-9]+}", cfg.Recipes.Update).Methods(http.MethodPut)
	recipes.HandleFunc("/{id:[0-9]+}", cfg.Recipes.Delete).Methods(http.MethodDelete)

	return middleware.Recovery(cfg.Log)(r)
}
