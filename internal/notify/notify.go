// Package notify delivers staff notifications for form submissions and
// payment events. The site has no mail integration yet, so LogNotifier
// writes them to the structured log.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/becsite/backend/internal/model"
)

// PreviewRunes is how much of a contact message body is logged.
const PreviewRunes = 100

// PaymentEvent summarises a Stripe webhook event for staff.
type PaymentEvent struct {
	Kind         string // Stripe event type
	ObjectID     string // cs_... or pi_...
	AmountCents  int
	Currency     string
	Email        string
	Metadata     map[string]string
	FailureCause string
}

// Notifier receives the side effects of accepted submissions.
type Notifier interface {
	ContactReceived(ctx context.Context, msg *model.ContactMessage) error
	PartyInquiryReceived(ctx context.Context, p *model.PartyInquiry) error
	PaymentEvent(ctx context.Context, ev PaymentEvent) error
}

// LogNotifier writes notifications as slog records.
type LogNotifier struct {
	log *slog.Logger
	now func() time.Time
}

// NewLogNotifier creates a LogNotifier; a nil logger means slog.Default().
func NewLogNotifier(l *slog.Logger) *LogNotifier {
	if l == nil {
		l = slog.Default()
	}
	return &LogNotifier{log: l, now: time.Now}
}

var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) ContactReceived(ctx context.Context, msg *model.ContactMessage) error {
	n.log.InfoContext(ctx, "contact form submission",
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
		"message", Preview(msg.Message),
		"timestamp", n.now().UTC().Format(time.RFC3339),
	)
	return nil
}

func (n *LogNotifier) PartyInquiryReceived(ctx context.Context, p *model.PartyInquiry) error {
	n.log.InfoContext(ctx, "party inquiry submission",
		"name", p.Name,
		"email", p.Email,
		"phone", p.Phone,
		"party_recipient", p.PartyRecipient,
		"recipient_age", p.RecipientAge,
		"date", p.Date,
		"time", p.Time,
		"cheese_pizzas", p.CheesePizzas,
		"pepperoni_pizzas", p.PepperoniPizzas,
		"additional_players", p.Players(),
		"timestamp", n.now().UTC().Format(time.RFC3339),
	)
	return nil
}

func (n *LogNotifier) PaymentEvent(ctx context.Context, ev PaymentEvent) error {
	level := slog.LevelInfo
	msg := "payment event"
	if ev.FailureCause != "" {
		level = slog.LevelWarn
		msg = "payment failed"
	}
	n.log.Log(ctx, level, msg,
		"kind", ev.Kind,
		"object_id", ev.ObjectID,
		"amount_cents", ev.AmountCents,
		"currency", ev.Currency,
		"email", ev.Email,
		"metadata", ev.Metadata,
		"failure", ev.FailureCause,
	)
	return nil
}

// Preview shortens s to PreviewRunes runes, appending "..." when cut.
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= PreviewRunes {
		return s
	}
	return string(r[:PreviewRunes]) + "..."
}
