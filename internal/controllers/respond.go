package controllers

import (
	"errors"
	"net/http"

	"codefolio/internal/providers"
	"codefolio/internal/services"
	"codefolio/internal/sources"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// statusFor maps service and source errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnknownPlatform),
		errors.Is(err, sources.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrPlatformNotLinked),
		errors.Is(err, sources.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrProfileExists):
		return http.StatusConflict
	case errors.Is(err, sources.ErrMalformed):
		return http.StatusBadGateway
	case errors.Is(err, sources.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondServiceError logs server-side failures and hides their detail.
func respondServiceError(w http.ResponseWriter, logger providers.Logger, t providers.TypeEnum, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf(t, "request failed: %s", err)
		respondError(w, status, "Internal Server Error")
		return
	}
	respondError(w, status, err.Error())
}
