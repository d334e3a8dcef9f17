package model

import (
	"errors"
	"strings"
	"time"
)

// PartyInquiry is a validated party booking request. Date and Time keep the
// form's wire representation ("2006-01-02" and "2:00 PM").
type PartyInquiry struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	PartyRecipient    string `json:"partyRecipient"`
	RecipientAge      int    `json:"recipientAge"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	PizzaReadyTime    string `json:"pizzaReadyTime,omitempty"`
	CheesePizzas      int    `json:"cheesePizzas"`
	PepperoniPizzas   int    `json:"pepperoniPizzas"`
	AdditionalPlayers *int   `json:"additionalPlayers,omitempty"`
	Honeypot          string `json:"honeypot,omitempty"`
}

// IsSpam reports whether the hidden honeypot field was filled in.
func (p *PartyInquiry) IsSpam() bool { return p.Honeypot != "" }

// Players returns the number of additional players, 0 when omitted.
func (p *PartyInquiry) Players() int {
	if p.AdditionalPlayers == nil {
		return 0
	}
	return *p.AdditionalPlayers
}

// ErrInvalidDate is returned by ParseCalendarDate for unparseable input.
var ErrInvalidDate = errors.New("invalid calendar date")

// ParseCalendarDate parses "2006-01-02" or an RFC 3339 timestamp and returns
// midnight of that calendar date in loc. For RFC 3339 input the calendar date
// is taken as written, ignoring the offset.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	if len(s) == len("2006-01-02") {
		t, err = time.Parse(time.DateOnly, s)
	} else {
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
