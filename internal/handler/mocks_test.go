package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/ratelimit"
	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/internal/validation"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// fixedNow is a Wednesday afternoon in the venue's zone.
var fixedNow = time.Date(2026, 3, 11, 15, 0, 0, 0, venueLoc(nil))

func venueLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		if t != nil {
			t.Fatalf("load location: %v", err)
		}
		panic(err)
	}
	return loc
}

func newTestValidator() *validation.Validator {
	return validation.New(venueLoc(nil), validation.WithClock(func() time.Time { return fixedNow }))
}

func newTestGuard() *ratelimit.Guard {
	return ratelimit.NewGuard(ratelimit.NewMemoryLimiter(), ratelimit.ClientKey(1), nil)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	return req
}

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc func(ctx context.Context, msg *model.ContactMessage) error
}

func (m *mockContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return nil
}

type mockPartyService struct {
	checkRulesFunc func(p *model.PartyInquiry) error
	submitFunc     func(ctx context.Context, p *model.PartyInquiry) error
}

func (m *mockPartyService) CheckRules(p *model.PartyInquiry) error {
	if m.checkRulesFunc != nil {
		return m.checkRulesFunc(p)
	}
	return nil
}

func (m *mockPartyService) Submit(ctx context.Context, p *model.PartyInquiry) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, p)
	}
	return nil
}

type mockCheckoutService struct {
	productFunc        func(t model.CheckoutType) (model.Product, error)
	createCheckoutFunc func(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSession, error)
	processWebhookFunc func(ctx context.Context, payload []byte, sigHeader string) error
}

func (m *mockCheckoutService) Product(t model.CheckoutType) (model.Product, error) {
	if m.productFunc != nil {
		return m.productFunc(t)
	}
	return model.Product{}, nil
}

func (m *mockCheckoutService) CreateCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSession, error) {
	if m.createCheckoutFunc != nil {
		return m.createCheckoutFunc(ctx, req)
	}
	return &model.CheckoutSession{}, nil
}

func (m *mockCheckoutService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if m.processWebhookFunc != nil {
		return m.processWebhookFunc(ctx, payload, sigHeader)
	}
	return nil
}

type mockTournamentService struct {
	listFunc func(ctx context.Context, category string) (service.TournamentList, error)
	getFunc  func(ctx context.Context, slug string) (*model.Tournament, error)
}

func (m *mockTournamentService) List(ctx context.Context, category string) (service.TournamentList, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, category)
	}
	return service.TournamentList{Events: []model.Tournament{}}, nil
}

func (m *mockTournamentService) Get(ctx context.Context, slug string) (*model.Tournament, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, slug)
	}
	return &model.Tournament{Slug: slug}, nil
}

type mockBookingProvider struct {
	link         model.BookingLink
	stationsFunc func(ctx context.Context) ([]model.Station, error)
}

func (m *mockBookingProvider) BookingLink() model.BookingLink { return m.link }

func (m *mockBookingProvider) Stations(ctx context.Context) ([]model.Station, error) {
	if m.stationsFunc != nil {
		return m.stationsFunc(ctx)
	}
	return []model.Station{}, nil
}
