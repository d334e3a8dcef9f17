// Package stripe provides a lightweight Stripe API client for the venue site.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Stripe REST API root.
const DefaultBaseURL = "https://api.stripe.com"

// SignatureTolerance is the maximum age of a webhook timestamp.
const SignatureTolerance = 5 * time.Minute

// CheckoutParams describes a one-off Checkout Session.
type CheckoutParams struct {
	AmountCents   int
	Currency      string // "usd"
	ProductName   string
	CustomerEmail string // omitted when empty
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Session is the part of a Checkout Session the site needs.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEventObject is data.object of a checkout.session or payment_intent event.
type WebhookEventObject struct {
	ID            string            `json:"id"`
	Object        string            `json:"object"`
	Amount        int               `json:"amount"`
	AmountTotal   int               `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
	// payment_intent.payment_failed only
	LastPaymentError *struct {
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// WebhookEvent is a Stripe webhook event.
type WebhookEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Data struct {
		Object WebhookEventObject `json:"object"`
	} `json:"data"`
}

// Client is the Stripe API surface the site uses.
type Client interface {
	// CreateCheckoutSession creates a Checkout Session.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (Session, error)
	// VerifyWebhookSignature checks the Stripe-Signature header.
	VerifyWebhookSignature(payload []byte, sigHeader string) error
	// ParseWebhookEvent decodes a webhook payload.
	ParseWebhookEvent(payload []byte) (WebhookEvent, error)
}

// ErrNotConfigured is returned when the needed key or secret is unset.
var ErrNotConfigured = errors.New("stripe: not configured")

// APIError is a non-2xx answer from the Stripe API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe: status %d: %s", e.StatusCode, e.Message)
}

// RealClient talks to the Stripe API over plain HTTP.
type RealClient struct {
	SecretKey     string
	WebhookSecret string // whsec_...
	baseURL       string
	httpClient    *http.Client
	now           func() time.Time
}

// Option configures a RealClient.
type Option func(*RealClient)

// WithBaseURL points the client at another API root (tests use httptest).
func WithBaseURL(u string) Option {
	return func(c *RealClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default 30s-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RealClient) { c.httpClient = hc }
}

// WithClock replaces time.Now for signature tolerance checks.
func WithClock(now func() time.Time) Option {
	return func(c *RealClient) { c.now = now }
}

// NewClient creates a RealClient.
func NewClient(secretKey, webhookSecret string, opts ...Option) *RealClient {
	c := &RealClient{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*RealClient)(nil)

// CreateCheckoutSession creates a one-off payment session.
func (c *RealClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (Session, error) {
	if c.SecretKey == "" {
		return Session{}, ErrNotConfigured
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	data := url.Values{}
	data.Set("mode", "payment")
	data.Set("payment_method_types[0]", "card")
	data.Set("line_items[0][price_data][currency]", currency)
	data.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	data.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(params.AmountCents))
	data.Set("line_items[0][quantity]", "1")
	data.Set("success_url", params.SuccessURL)
	data.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		data.Set("customer_email", params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		data.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions",
		strings.NewReader(data.Encode()))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	var result struct {
		Session
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Session{}, fmt.Errorf("stripe checkout: decode response: %w", err)
	}
	if result.Error != nil {
		return Session{}, &APIError{StatusCode: resp.StatusCode, Message: result.Error.Message}
	}
	if resp.StatusCode >= 400 {
		return Session{}, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if result.ID == "" || result.URL == "" {
		return Session{}, errors.New("stripe checkout: empty session in response")
	}
	return result.Session, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 v1 signatures and the timestamp tolerance.
func (c *RealClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	if c.WebhookSecret == "" {
		return ErrNotConfigured
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(sigHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signatures = append(signatures, v)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("stripe: invalid signature header format")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("stripe: invalid timestamp in signature header")
	}
	if c.now().Sub(time.Unix(ts, 0)) > SignatureTolerance {
		return errors.New("stripe: webhook timestamp too old (replay attack protection)")
	}

	expected := computeSignature(c.WebhookSecret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errors.New("stripe: signature verification failed")
}

// ParseWebhookEvent decodes the event and requires a type.
func (c *RealClient) ParseWebhookEvent(payload []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return WebhookEvent{}, fmt.Errorf("stripe: parse webhook event: %w", err)
	}
	if event.Type == "" {
		return WebhookEvent{}, errors.New("stripe: webhook event has no type")
	}
	return event, nil
}

// SignatureHeader builds a Stripe-Signature header value for payload signed
// at ts. Used by local tooling and tests.
func SignatureHeader(secret string, payload []byte, ts time.Time) string {
	t := strconv.FormatInt(ts.Unix(), 10)
	return "t=" + t + ",v1=" + computeSignature(secret, t, payload)
}

func computeSignature(secret, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + string(payload)))
	return hex.EncodeToString(mac.Sum(nil))
}
