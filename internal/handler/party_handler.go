package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/becsite/backend/internal/ratelimit"
	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/internal/validation"
)

const (
	partySpamMessage    = "Party inquiry submitted successfully."
	partySuccessMessage = "Your party inquiry has been submitted! We will contact you within 24 hours to confirm availability and finalize details."
)

// PartyHandler handles party booking inquiries.
type PartyHandler struct {
	partyService service.PartyService
	validator    *validation.Validator
	guard        *ratelimit.Guard
}

// NewPartyHandler creates a PartyHandler.
func NewPartyHandler(partyService service.PartyService, v *validation.Validator, guard *ratelimit.Guard) *PartyHandler {
	return &PartyHandler{partyService: partyService, validator: v, guard: guard}
}

type ruleViolationResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Submit handles POST /api/party-inquiry.
func (h *PartyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raw, rl, ok := admitForm(w, r, h.guard, "party-inquiry")
	if !ok {
		return
	}

	inquiry, errs := h.validator.PartyInquiry(raw)
	if rejectInvalid(w, errs) {
		return
	}
	if inquiry.IsSpam() {
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: partySpamMessage})
		return
	}

	if err := h.partyService.Submit(r.Context(), inquiry); err != nil {
		var rv *service.RuleViolation
		if errors.As(err, &rv) {
			writeJSON(w, http.StatusUnprocessableEntity, ruleViolationResponse{Error: rv.Message, Code: rv.Code})
			return
		}
		slog.ErrorContext(r.Context(), "party inquiry submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeSuccess(w, rl, partySuccessMessage)
}
