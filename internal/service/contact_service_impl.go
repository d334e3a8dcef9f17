package service

import (
	"context"
	"fmt"

	"github.com/becsite/backend/internal/model"
	"github.com/becsite/backend/internal/notify"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	notifier notify.Notifier
}

// NewContactService creates a ContactService that notifies staff through n.
func NewContactService(n notify.Notifier) ContactService {
	return &contactServiceImpl{notifier: n}
}

func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if msg.IsSpam() {
		return nil
	}
	if err := s.notifier.ContactReceived(ctx, msg); err != nil {
		return fmt.Errorf("notify contact: %w", err)
	}
	return nil
}
