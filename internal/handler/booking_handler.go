package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/pkg/ggleap"
)

// BookingProvider is the station booking portal (ggLeap).
type BookingProvider interface {
	BookingLink() model.BookingLink
	Stations(ctx context.Context) ([]model.Station, error)
}

// BookingHandler serves the booking portal link and station availability.
type BookingHandler struct {
	provider BookingProvider
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(p BookingProvider) *BookingHandler {
	return &BookingHandler{provider: p}
}

// Link handles GET /api/book-stations.
func (h *BookingHandler) Link(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.provider.BookingLink())
}

// Stations handles GET /api/stations.
func (h *BookingHandler) Stations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.provider.Stations(r.Context())
	if err != nil {
		if errors.Is(err, ggleap.ErrLiveUnavailable) {
			writeError(w, http.StatusNotImplemented, "Live station availability is not available yet.")
			return
		}
		slog.ErrorContext(r.Context(), "station availability failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": stations, "total": len(stations)})
}
