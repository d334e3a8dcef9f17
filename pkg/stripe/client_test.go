package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRealClient_VerifyWebhookSignature_Valid(t *testing.T) {
	secret := "whsec_test_secret"
	c := NewClient("sk_test", secret)
	payload := []byte(`{"type":"checkout.session.completed"}`)

	if err := c.VerifyWebhookSignature(payload, SignatureHeader(secret, payload, time.Now())); err != nil {
		t.Fatalf("expected valid signature to pass, got: %v", err)
	}
}

func TestRealClient_VerifyWebhookSignature_AcceptsAnyMatchingV1(t *testing.T) {
	secret := "whsec_test_secret"
	c := NewClient("sk_test", secret)
	payload := []byte(`{}`)
	valid := SignatureHeader(secret, payload, time.Now())
	header := valid + ",v1=deadbeef"

	if err := c.VerifyWebhookSignature(payload, header); err != nil {
		t.Fatalf("expected pass with extra v1 entry, got: %v", err)
	}
}

func TestRealClient_VerifyWebhookSignature_Invalid(t *testing.T) {
	c := NewClient("sk_test", "whsec_test_secret")
	sigHeader := fmt.Sprintf("t=%d,v1=wrongsignature", time.Now().Unix())

	if err := c.VerifyWebhookSignature([]byte(`{}`), sigHeader); err == nil {
		t.Error("expected error for invalid signature")
	}
}

func TestRealClient_VerifyWebhookSignature_TamperedPayload(t *testing.T) {
	secret := "whsec_test_secret"
	c := NewClient("sk_test", secret)
	header := SignatureHeader(secret, []byte(`{"amount":100}`), time.Now())

	if err := c.VerifyWebhookSignature([]byte(`{"amount":999}`), header); err == nil {
		t.Error("expected error for tampered payload")
	}
}

func TestRealClient_VerifyWebhookSignature_ExpiredTimestamp(t *testing.T) {
	secret := "whsec_test_secret"
	c := NewClient("sk_test", secret)
	payload := []byte(`{}`)
	// 10 minutes old
	header := SignatureHeader(secret, payload, time.Now().Add(-10*time.Minute))

	if err := c.VerifyWebhookSignature(payload, header); err == nil {
		t.Error("expected error for expired timestamp")
	}
}

func TestRealClient_VerifyWebhookSignature_UsesInjectedClock(t *testing.T) {
	secret := "whsec_test_secret"
	signedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewClient("sk_test", secret, WithClock(func() time.Time { return signedAt.Add(4 * time.Minute) }))
	payload := []byte(`{}`)

	if err := c.VerifyWebhookSignature(payload, SignatureHeader(secret, payload, signedAt)); err != nil {
		t.Fatalf("expected pass within tolerance, got: %v", err)
	}
}

func TestRealClient_VerifyWebhookSignature_MalformedHeader(t *testing.T) {
	c := NewClient("sk_test", "whsec")
	for _, h := range []string{"", "garbage", "t=abc,v1=00", "v1=00"} {
		if err := c.VerifyWebhookSignature([]byte(`{}`), h); err == nil {
			t.Errorf("expected error for header %q", h)
		}
	}
}

func TestRealClient_VerifyWebhookSignature_NotConfigured(t *testing.T) {
	c := NewClient("sk_test", "") // empty webhook secret
	err := c.VerifyWebhookSignature([]byte(`{}`), "t=123,v1=abc")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRealClient_ParseWebhookEvent(t *testing.T) {
	c := NewClient("", "")
	payload := []byte(`{"type":"checkout.session.completed","id":"evt_1","data":{"object":{"id":"cs_1","amount_total":10000,"customer_email":"a@b.co","metadata":{"type":"party-deposit"}}}}`)
	event, err := c.ParseWebhookEvent(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != "checkout.session.completed" || event.ID != "evt_1" {
		t.Errorf("unexpected event header %+v", event)
	}
	obj := event.Data.Object
	if obj.ID != "cs_1" || obj.AmountTotal != 10000 || obj.Metadata["type"] != "party-deposit" {
		t.Errorf("unexpected object %+v", obj)
	}
}

func TestRealClient_ParseWebhookEvent_Invalid(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.ParseWebhookEvent([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := c.ParseWebhookEvent([]byte(`{}`)); err == nil {
		t.Error("expected error for missing type")
	}
}

func TestRealClient_CreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "sk_test" {
			t.Errorf("expected basic auth with secret key, got %q", user)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		want := map[string]string{
			"mode":                                          "payment",
			"line_items[0][price_data][currency]":           "usd",
			"line_items[0][price_data][unit_amount]":        "10000",
			"line_items[0][price_data][product_data][name]": "Party Deposit",
			"line_items[0][quantity]":                       "1",
			"success_url":                                   "http://site/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			"cancel_url":                                    "http://site/checkout/cancel",
			"customer_email":                                "pat@example.com",
			"metadata[type]":                                "party-deposit",
			"metadata[bookingId]":                           "b-1",
		}
		for k, v := range want {
			if got := r.PostForm.Get(k); got != v {
				t.Errorf("%s: want %q, got %q", k, v, got)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test", "", WithBaseURL(srv.URL))
	sess, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{
		AmountCents:   10000,
		Currency:      "usd",
		ProductName:   "Party Deposit",
		CustomerEmail: "pat@example.com",
		SuccessURL:    "http://site/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "http://site/checkout/cancel",
		Metadata:      map[string]string{"type": "party-deposit", "bookingId": "b-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "cs_test_1" || !strings.HasSuffix(sess.URL, "cs_test_1") {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestRealClient_CreateCheckoutSession_OmitsEmptyEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if _, ok := r.PostForm["customer_email"]; ok {
			t.Error("customer_email should not be sent when empty")
		}
		_, _ = w.Write([]byte(`{"id":"cs_2","url":"https://checkout.stripe.com/cs_2"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test", "", WithBaseURL(srv.URL))
	if _, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{AmountCents: 3500, ProductName: "Day Pass"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRealClient_CreateCheckoutSession_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key provided"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk_bad", "", WithBaseURL(srv.URL))
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{AmountCents: 100})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Invalid API Key provided" {
		t.Errorf("unexpected API error %+v", apiErr)
	}
}

func TestRealClient_CreateCheckoutSession_NotConfigured(t *testing.T) {
	c := NewClient("", "")
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
