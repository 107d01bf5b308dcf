package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/models"
	"github.com/Varun5711/recipebook/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	respondJSON(w, status, errResp)
}

// writeServiceError maps service sentinels to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without details.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrBadRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrUnknownUser):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isClientError(err error) bool {
	for _, sentinel := range []error{
		service.ErrValidation,
		service.ErrBadRequest,
		service.ErrNotFound,
		service.ErrForbidden,
		service.ErrConflict,
		service.ErrUnauthorized,
		service.ErrUnknownUser,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}
