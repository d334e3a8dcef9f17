package handler

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Base     *Handler
	Contact  *ContactHandler
	Party    *PartyHandler
	Checkout *CheckoutHandler
	Events   *EventsHandler
	Booking  *BookingHandler
}

// NewRouter registers every API route and wraps the mux with the shared
// middleware: request logging, security headers and CORS.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Base.Health)

	// Public forms; the handlers apply the rate limit.
	mux.HandleFunc("POST /api/contact", h.Contact.Submit)
	mux.HandleFunc("POST /api/party-inquiry", h.Party.Submit)

	// Stripe routes (no auth; the webhook is authenticated by its signature)
	mux.HandleFunc("POST /api/stripe/create-checkout-session", h.Checkout.Create)
	mux.HandleFunc("POST /api/stripe/webhook", h.Checkout.Webhook)

	mux.HandleFunc("GET /api/events", h.Events.List)
	mux.HandleFunc("GET /api/events/{slug...}", h.Events.Get)

	mux.HandleFunc("GET /api/book-stations", h.Booking.Link)
	mux.HandleFunc("GET /api/stations", h.Booking.Stations)

	return RequestLogger(SecurityHeaders(h.Base.CORS(mux)))
}
