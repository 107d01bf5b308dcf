package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/storage"
)

type HealthHandler struct {
	checks map[string]storage.Pinger
	log    *logger.Logger
}

// NewHealthHandler reports healthy only when every named dependency answers
// a ping.
func NewHealthHandler(checks map[string]storage.Pinger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    logger.New("health"),
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := map[string]string{}
	for name, pinger := range h.checks {
		if err := pinger.Ping(ctx); err != nil {
			h.log.Warn("%s health check failed: %v", name, err)
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}

	respondJSON(w, status, result)
}
