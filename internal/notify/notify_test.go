package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/becsite/backend/internal/model"
)

func TestPreview(t *testing.T) {
	short := strings.Repeat("a", PreviewRunes)
	if got := Preview(short); got != short {
		t.Errorf("expected unchanged at the limit, got %q", got)
	}
	long := strings.Repeat("é", PreviewRunes+1)
	got := Preview(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != PreviewRunes+3 {
		t.Errorf("unexpected preview %q", got)
	}
}

func newBufferNotifier() (*LogNotifier, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return rec
}

func TestLogNotifier_ContactReceived_TruncatesMessage(t *testing.T) {
	n, buf := newBufferNotifier()
	msg := &model.ContactMessage{Name: "Jo", Email: "jo@example.com", Subject: "Hours", Message: strings.Repeat("x", 150)}
	if err := n.ContactReceived(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := decodeLine(t, buf)
	if rec["msg"] != "contact form submission" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if got := rec["message"].(string); got != strings.Repeat("x", 100)+"..." {
		t.Errorf("expected truncated message, got %q", got)
	}
}

func TestLogNotifier_PartyInquiryReceived_DefaultsPlayers(t *testing.T) {
	n, buf := newBufferNotifier()
	if err := n.PartyInquiryReceived(context.Background(), &model.PartyInquiry{Name: "Sam"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := decodeLine(t, buf)
	if rec["additional_players"] != float64(0) {
		t.Errorf("expected 0 additional players, got %v", rec["additional_players"])
	}
}

func TestLogNotifier_PaymentEvent_FailureIsWarning(t *testing.T) {
	n, buf := newBufferNotifier()
	_ = n.PaymentEvent(context.Background(), PaymentEvent{Kind: "payment_intent.payment_failed", FailureCause: "card declined"})
	rec := decodeLine(t, buf)
	if rec["level"] != "WARN" || rec["msg"] != "payment failed" {
		t.Errorf("unexpected record %v", rec)
	}
}
