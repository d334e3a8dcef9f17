package validation

import "github.com/becsite/backend/internal/model"

// Input structs use pointers so a missing field ("Required") can be told
// apart from an empty one.

type contactInput struct {
	Name     *string `json:"name" validate:"required,min=2,max=100"`
	Email    *string `json:"email" validate:"required,mailbox"`
	Subject  *string `json:"subject" validate:"required,min=3,max=200"`
	Message  *string `json:"message" validate:"required,min=10,max=5000"`
	Honeypot *string `json:"honeypot" validate:"omitempty,max=0"`
}

var contactMessages = map[string]string{
	"name.min":     "Name must be at least 2 characters",
	"subject.min":  "Subject must be at least 3 characters",
	"message.min":  "Message must be at least 10 characters",
	"honeypot.max": "Bot detected",
}

type partyInput struct {
	Name              *string `json:"name" validate:"required,min=2,max=100"`
	Phone             *string `json:"phone" validate:"required,naphone"`
	Email             *string `json:"email" validate:"required,mailbox"`
	PartyRecipient    *string `json:"partyRecipient" validate:"required,min=2,max=100"`
	RecipientAge      *int    `json:"recipientAge" validate:"required,min=1,max=120"`
	Date              *string `json:"date" validate:"required,partydate"`
	Time              *string `json:"time" validate:"required,clock12"`
	PizzaReadyTime    *string `json:"pizzaReadyTime"`
	CheesePizzas      *int    `json:"cheesePizzas" validate:"required,min=0,max=10"`
	PepperoniPizzas   *int    `json:"pepperoniPizzas" validate:"required,min=0,max=10"`
	AdditionalPlayers *int    `json:"additionalPlayers" validate:"omitempty,min=0,max=50"`
	Honeypot          *string `json:"honeypot" validate:"omitempty,max=0"`
}

var partyMessages = map[string]string{
	"honeypot.max": "Bot detected",
}

type checkoutInput struct {
	Type     *string           `json:"type" validate:"required,oneof=party-deposit day-pass membership"`
	Email    *string           `json:"email" validate:"omitempty,mailbox"`
	Metadata map[string]string `json:"metadata"`
}

// Contact validates a contact form payload. The returned message carries
// whatever decoded even when errs is non-nil, so callers can inspect the
// honeypot of a rejected submission.
func (v *Validator) Contact(raw []byte) (*model.ContactMessage, FieldErrors) {
	var in contactInput
	errs := v.check(raw, &in, contactMessages)
	return &model.ContactMessage{
		Name:     deref(in.Name),
		Email:    deref(in.Email),
		Subject:  deref(in.Subject),
		Message:  deref(in.Message),
		Honeypot: deref(in.Honeypot),
	}, errs
}

// PartyInquiry validates a party booking payload, including the 48-hour /
// 6-month date window. Party hours and blackout dates are business rules
// checked separately by the service layer.
func (v *Validator) PartyInquiry(raw []byte) (*model.PartyInquiry, FieldErrors) {
	var in partyInput
	errs := v.check(raw, &in, partyMessages)
	p := &model.PartyInquiry{
		Name:              deref(in.Name),
		Phone:             deref(in.Phone),
		Email:             deref(in.Email),
		PartyRecipient:    deref(in.PartyRecipient),
		RecipientAge:      derefInt(in.RecipientAge),
		Date:              deref(in.Date),
		Time:              deref(in.Time),
		PizzaReadyTime:    deref(in.PizzaReadyTime),
		CheesePizzas:      derefInt(in.CheesePizzas),
		PepperoniPizzas:   derefInt(in.PepperoniPizzas),
		AdditionalPlayers: in.AdditionalPlayers,
		Honeypot:          deref(in.Honeypot),
	}
	return p, errs
}

// Checkout validates a checkout session request. Omitted email and metadata
// remain nil in the result.
func (v *Validator) Checkout(raw []byte) (*model.CheckoutRequest, FieldErrors) {
	var in checkoutInput
	if errs := v.check(raw, &in, nil); errs != nil {
		return nil, errs
	}
	return &model.CheckoutRequest{
		Type:     model.CheckoutType(deref(in.Type)),
		Email:    in.Email,
		Metadata: in.Metadata,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
