package service

import (
	"context"
	"fmt"
	"time"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/notify"
)

// PartyService defines the business logic for party booking inquiries.
type PartyService interface {
	// CheckRules returns a *RuleViolation when the venue cannot host the party.
	CheckRules(p *model.PartyInquiry) error
	// Submit checks the rules and forwards the inquiry to staff. Spam
	// submissions are accepted silently.
	Submit(ctx context.Context, p *model.PartyInquiry) error
}

type partyServiceImpl struct {
	notifier notify.Notifier
	loc      *time.Location
}

// NewPartyService creates a PartyService evaluating dates in loc.
func NewPartyService(n notify.Notifier, loc *time.Location) PartyService {
	return &partyServiceImpl{notifier: n, loc: loc}
}

func (s *partyServiceImpl) CheckRules(p *model.PartyInquiry) error {
	return CheckPartyRules(p.Date, p.Time, s.loc)
}

func (s *partyServiceImpl) Submit(ctx context.Context, p *model.PartyInquiry) error {
	if p.IsSpam() {
		return nil
	}
	if err := s.CheckRules(p); err != nil {
		return err
	}
	if err := s.notifier.PartyInquiryReceived(ctx, p); err != nil {
		return fmt.Errorf("notify party inquiry: %w", err)
	}
	return nil
}
