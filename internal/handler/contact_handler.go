package handler

import (
	"log/slog"
	"net/http"

	"github.com/becsite/backend/internal/ratelimit"
	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/internal/validation"
)

const (
	contactSpamMessage    = "Message sent successfully."
	contactSuccessMessage = "Thank you for your message. We will get back to you within 24-48 hours."
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	validator      *validation.Validator
	guard          *ratelimit.Guard
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contactService service.ContactService, v *validation.Validator, guard *ratelimit.Guard) *ContactHandler {
	return &ContactHandler{contactService: contactService, validator: v, guard: guard}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raw, rl, ok := admitForm(w, r, h.guard, "contact")
	if !ok {
		return
	}

	msg, errs := h.validator.Contact(raw)
	if rejectInvalid(w, errs) {
		return
	}
	// Bots get the same answer as people so they don't retry.
	if msg.IsSpam() {
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: contactSpamMessage})
		return
	}

	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		slog.ErrorContext(r.Context(), "contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeSuccess(w, rl, contactSuccessMessage)
}
