package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/pkg/startgg"
)

// revalidateSeconds is advertised to clients and CDNs.
var revalidateSeconds = int(service.TournamentCacheTTL.Seconds())

const (
	msgProviderFailed = "Failed to fetch events from tournament provider. Please try again later."
	msgProviderConfig = "Server configuration error: tournament provider is not configured."
	msgEventNotFound  = "Event not found."
)

// EventsHandler serves the tournament listing.
type EventsHandler struct {
	svc service.TournamentService
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(svc service.TournamentService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

type eventsResponse struct {
	Events            []model.Tournament `json:"events"`
	Total             int                `json:"total"`
	Cached            bool               `json:"cached"`
	RevalidateSeconds int                `json:"revalidateSeconds"`
}

// List handles GET /api/events?category=...
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeProviderError(w, r, err)
		return
	}

	setCacheControl(w)
	writeJSON(w, http.StatusOK, eventsResponse{
		Events:            list.Events,
		Total:             len(list.Events),
		Cached:            list.Cached,
		RevalidateSeconds: revalidateSeconds,
	})
}

// Get handles GET /api/events/{slug...}; slugs contain a slash
// ("tournament/bec-lol-1v1").
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeError(w, http.StatusNotFound, msgEventNotFound)
		return
	}

	t, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, startgg.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgEventNotFound)
			return
		}
		h.writeProviderError(w, r, err)
		return
	}

	setCacheControl(w)
	writeJSON(w, http.StatusOK, map[string]any{"event": t})
}

func (h *EventsHandler) writeProviderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, startgg.ErrNotConfigured) {
		slog.ErrorContext(r.Context(), "tournament provider misconfigured", "error", err)
		writeError(w, http.StatusInternalServerError, msgProviderConfig)
		return
	}
	slog.ErrorContext(r.Context(), "tournament provider failed", "error", err)
	writeError(w, http.StatusBadGateway, msgProviderFailed)
}

func setCacheControl(w http.ResponseWriter) {
	w.Header().Set("Cache-Control",
		"public, s-maxage="+strconv.Itoa(revalidateSeconds)+", stale-while-revalidate="+strconv.Itoa(2*revalidateSeconds))
}
