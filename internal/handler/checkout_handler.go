package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/internal/validation"
	pkgstripe "github.com/becsite/backend/pkg/stripe"
)

const (
	msgPaymentService  = "Payment service error. Please try again later."
	msgMissingSig      = "Missing stripe-signature header."
	msgWebhookFailed   = "Webhook handler failed."
	msgSigFailedPrefix = "Webhook signature verification failed: "
)

// maxWebhookBytes matches Stripe's documented maximum event payload.
const maxWebhookBytes = 1 << 20

// CheckoutHandler serves the Stripe checkout endpoints.
type CheckoutHandler struct {
	svc       service.CheckoutService
	validator *validation.Validator
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(svc service.CheckoutService, v *validation.Validator) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, validator: v}
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Create handles POST /api/stripe/create-checkout-session
// It answers the new session's sessionId and url.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	raw, ok := readJSONBody(w, r)
	if !ok {
		return
	}

	req, errs := h.validator.Checkout(raw)
	if errs != nil {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: msgValidation, Details: errs})
		return
	}

	sess, err := h.svc.CreateCheckout(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, pkgstripe.ErrNotConfigured), errors.Is(err, service.ErrUnknownProduct):
			slog.ErrorContext(r.Context(), "checkout misconfigured", "error", err, "type", req.Type)
			writeError(w, http.StatusInternalServerError, msgInternal)
		default:
			slog.ErrorContext(r.Context(), "checkout session failed", "error", err, "type", req.Type)
			writeError(w, http.StatusBadGateway, msgPaymentService)
		}
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: sess.SessionID, URL: sess.URL})
}

// Webhook handles POST /api/stripe/webhook
// The raw body is verified against Stripe-Signature before dispatch.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		writeError(w, http.StatusBadRequest, msgMissingSig)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		slog.ErrorContext(r.Context(), "stripe webhook read failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgWebhookFailed)
		return
	}

	if err := h.svc.ProcessWebhook(r.Context(), payload, sigHeader); err != nil {
		var sigErr *service.WebhookSignatureError
		if errors.As(err, &sigErr) {
			slog.WarnContext(r.Context(), "stripe webhook rejected", "error", err)
			writeError(w, http.StatusBadRequest, msgSigFailedPrefix+sigErr.Error())
			return
		}
		slog.ErrorContext(r.Context(), "stripe webhook processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgWebhookFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
