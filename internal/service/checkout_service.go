package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/notify"
	pkgstripe "github.com/becsite/backend/pkg/stripe"
)

// PartyDepositCents is the fixed party deposit.
const PartyDepositCents = 10000

// ErrUnknownProduct is returned for a checkout type with no price.
var ErrUnknownProduct = errors.New("unknown checkout product")

// WebhookSignatureError means the webhook failed verification or parsing.
type WebhookSignatureError struct {
	Err error
}

func (e *WebhookSignatureError) Error() string { return e.Err.Error() }
func (e *WebhookSignatureError) Unwrap() error { return e.Err }

// CheckoutConfig holds the site URL and configurable prices.
type CheckoutConfig struct {
	SiteURL         string
	DayPassCents    int
	MembershipCents int
}

// CheckoutService handles Stripe payments.
type CheckoutService interface {
	// Product returns the price configuration for t.
	Product(t model.CheckoutType) (model.Product, error)
	// CreateCheckout starts a Stripe Checkout Session.
	CreateCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSession, error)
	// ProcessWebhook verifies a webhook and dispatches its event.
	ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

// CheckoutServiceImpl is the production CheckoutService.
type CheckoutServiceImpl struct {
	client   pkgstripe.Client
	notifier notify.Notifier
	siteURL  string
	products map[model.CheckoutType]model.Product
}

// NewCheckoutService creates a CheckoutServiceImpl.
func NewCheckoutService(client pkgstripe.Client, n notify.Notifier, cfg CheckoutConfig) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		client:   client,
		notifier: n,
		siteURL:  strings.TrimRight(cfg.SiteURL, "/"),
		products: map[model.CheckoutType]model.Product{
			model.CheckoutPartyDeposit: {AmountCents: PartyDepositCents, Name: "Party Deposit"},
			model.CheckoutDayPass:      {AmountCents: cfg.DayPassCents, Name: "Day Pass"},
			model.CheckoutMembership:   {AmountCents: cfg.MembershipCents, Name: "Unlimited Monthly Membership"},
		},
	}
}

var _ CheckoutService = (*CheckoutServiceImpl)(nil)

func (s *CheckoutServiceImpl) Product(t model.CheckoutType) (model.Product, error) {
	p, ok := s.products[t]
	if !ok {
		return model.Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, t)
	}
	return p, nil
}

// CreateCheckout resolves the product and creates the session.
// The checkout type always overwrites metadata["type"].
func (s *CheckoutServiceImpl) CreateCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSession, error) {
	product, err := s.Product(req.Type)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["type"] = string(req.Type)

	params := pkgstripe.CheckoutParams{
		AmountCents: product.AmountCents,
		Currency:    "usd",
		ProductName: product.Name,
		SuccessURL:  s.siteURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.siteURL + "/checkout/cancel",
		Metadata:    metadata,
	}
	if req.Email != nil {
		params.CustomerEmail = *req.Email
	}

	sess, err := s.client.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &model.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// ProcessWebhook verifies the signature, then notifies for known event types.
func (s *CheckoutServiceImpl) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if err := s.client.VerifyWebhookSignature(payload, sigHeader); err != nil {
		// A missing secret is a server fault, not a bad signature.
		if errors.Is(err, pkgstripe.ErrNotConfigured) {
			return fmt.Errorf("verify webhook: %w", err)
		}
		return &WebhookSignatureError{Err: err}
	}
	event, err := s.client.ParseWebhookEvent(payload)
	if err != nil {
		return &WebhookSignatureError{Err: err}
	}

	obj := event.Data.Object
	ev := notify.PaymentEvent{
		Kind:     event.Type,
		ObjectID: obj.ID,
		Currency: obj.Currency,
		Email:    obj.CustomerEmail,
		Metadata: obj.Metadata,
	}
	switch event.Type {
	case "checkout.session.completed":
		ev.AmountCents = obj.AmountTotal
	case "payment_intent.succeeded":
		ev.AmountCents = obj.Amount
	case "payment_intent.payment_failed":
		ev.AmountCents = obj.Amount
		ev.FailureCause = "unknown"
		if obj.LastPaymentError != nil && obj.LastPaymentError.Message != "" {
			ev.FailureCause = obj.LastPaymentError.Message
		}
	default:
		slog.InfoContext(ctx, "unhandled stripe event", "type", event.Type, "id", event.ID)
		return nil
	}

	if err := s.notifier.PaymentEvent(ctx, ev); err != nil {
		return fmt.Errorf("notify %s: %w", event.Type, err)
	}
	return nil
}
