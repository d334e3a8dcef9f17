package model

// CheckoutType identifies the product being paid for.
type CheckoutType string

const (
	CheckoutPartyDeposit CheckoutType = "party-deposit"
	CheckoutDayPass      CheckoutType = "day-pass"
	CheckoutMembership   CheckoutType = "membership"
)

// CheckoutTypes lists every accepted checkout type in display order.
var CheckoutTypes = []CheckoutType{CheckoutPartyDeposit, CheckoutDayPass, CheckoutMembership}

// CheckoutRequest is a validated request to start a Stripe Checkout session.
// Email and Metadata stay nil when the caller omitted them.
type CheckoutRequest struct {
	Type     CheckoutType      `json:"type"`
	Email    *string           `json:"email,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Product is the fixed price configuration for a checkout type.
type Product struct {
	AmountCents int    `json:"amount"`
	Name        string `json:"productName"`
}

// CheckoutSession is the payment provider's answer to a session request.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
