package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Messages shared by several endpoints.
const (
	msgInvalidJSON     = "Invalid JSON in request body."
	msgBodyTooLarge    = "Request body too large."
	msgValidation      = "Validation failed"
	msgTooManyRequests = "Too many requests. Please try again later."
	msgInternal        = "An internal server error occurred. Please try again later."
)

// Pinger is a backend the health check pings (the cache).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	backend     Pinger
	frontendURL string
}

func New(backend Pinger, frontendURL string) *Handler {
	return &Handler{backend: backend, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-RateLimit-Remaining, Retry-After, X-Request-ID")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON sets the content type, writes status and encodes v.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
