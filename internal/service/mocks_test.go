package service

import (
	"context"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/notify"
	pkgstripe "github.com/becsite/backend/pkg/stripe"
)

// ---------------------------------------------------------------------------
// Mock Notifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	contactFunc func(ctx context.Context, msg *model.ContactMessage) error
	partyFunc   func(ctx context.Context, p *model.PartyInquiry) error
	paymentFunc func(ctx context.Context, ev notify.PaymentEvent) error
}

func (m *mockNotifier) ContactReceived(ctx context.Context, msg *model.ContactMessage) error {
	if m.contactFunc != nil {
		return m.contactFunc(ctx, msg)
	}
	return nil
}

func (m *mockNotifier) PartyInquiryReceived(ctx context.Context, p *model.PartyInquiry) error {
	if m.partyFunc != nil {
		return m.partyFunc(ctx, p)
	}
	return nil
}

func (m *mockNotifier) PaymentEvent(ctx context.Context, ev notify.PaymentEvent) error {
	if m.paymentFunc != nil {
		return m.paymentFunc(ctx, ev)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock StripeClient
// ---------------------------------------------------------------------------

type mockStripeClient struct {
	createCheckoutSessionFunc  func(ctx context.Context, params pkgstripe.CheckoutParams) (pkgstripe.Session, error)
	verifyWebhookSignatureFunc func(payload []byte, sigHeader string) error
	parseWebhookEventFunc      func(payload []byte) (pkgstripe.WebhookEvent, error)
}

func (m *mockStripeClient) CreateCheckoutSession(ctx context.Context, params pkgstripe.CheckoutParams) (pkgstripe.Session, error) {
	if m.createCheckoutSessionFunc != nil {
		return m.createCheckoutSessionFunc(ctx, params)
	}
	return pkgstripe.Session{}, nil
}

func (m *mockStripeClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	if m.verifyWebhookSignatureFunc != nil {
		return m.verifyWebhookSignatureFunc(payload, sigHeader)
	}
	return nil
}

func (m *mockStripeClient) ParseWebhookEvent(payload []byte) (pkgstripe.WebhookEvent, error) {
	if m.parseWebhookEventFunc != nil {
		return m.parseWebhookEventFunc(payload)
	}
	return pkgstripe.WebhookEvent{}, nil
}

// ---------------------------------------------------------------------------
// Mock TournamentSource
// ---------------------------------------------------------------------------

type mockTournamentSource struct {
	fetchAllFunc    func(ctx context.Context) ([]model.Tournament, error)
	fetchBySlugFunc func(ctx context.Context, slug string) (*model.Tournament, error)
}

func (m *mockTournamentSource) FetchAll(ctx context.Context) ([]model.Tournament, error) {
	if m.fetchAllFunc != nil {
		return m.fetchAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTournamentSource) FetchBySlug(ctx context.Context, slug string) (*model.Tournament, error) {
	if m.fetchBySlugFunc != nil {
		return m.fetchBySlugFunc(ctx, slug)
	}
	return nil, nil
}
