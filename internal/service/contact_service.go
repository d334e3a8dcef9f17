package service

import (
	"context"

	"github.com/becsite/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit forwards a validated message to staff. Spam submissions
	// (filled honeypot) are accepted silently without side effects.
	Submit(ctx context.Context, msg *model.ContactMessage) error
}
