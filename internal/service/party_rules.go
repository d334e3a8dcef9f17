package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/becsite/backend/internal/model"
)

// Rule violation codes returned to the client with a 422.
const (
	CodeBlackoutDate      = "BLACKOUT_DATE"
	CodeOutsidePartyHours = "OUTSIDE_PARTY_HOURS"
)

// Parties may start from PartyHourStart up to, not including, PartyHourEnd.
const (
	PartyHourStart = 12
	PartyHourEnd   = 20
)

// RuleViolation is a well-formed party request the venue cannot accept.
type RuleViolation struct {
	Code    string
	Message string
}

func (e *RuleViolation) Error() string { return e.Code + ": " + e.Message }

var (
	errBlackout = &RuleViolation{
		Code:    CodeBlackoutDate,
		Message: "The selected date is unavailable for party bookings. Please choose a different date.",
	}
	errOutsideHours = &RuleViolation{
		Code:    CodeOutsidePartyHours,
		Message: "Parties can only be scheduled between 12:00 PM and 8:00 PM.",
	}
)

// blackoutDates recur every year.
var blackoutDates = []struct {
	month time.Month
	day   int
}{
	{time.April, 20},
	{time.April, 26},
	{time.November, 27},
	{time.December, 25},
}

// IsBlackoutDate reports whether d falls on a recurring blackout day.
func IsBlackoutDate(d time.Time) bool {
	for _, b := range blackoutDates {
		if d.Month() == b.month && d.Day() == b.day {
			return true
		}
	}
	return false
}

var clock12 = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s?(AM|PM)$`)

// ParseClock12 converts "h:mm AM/PM" to a 24-hour hour and minute.
// 12 AM is hour 0 and 12 PM is hour 12.
func ParseClock12(s string) (hour, minute int, err error) {
	m := clock12.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case !pm && hour == 12:
		hour = 0
	case pm && hour != 12:
		hour += 12
	}
	return hour, minute, nil
}

// CheckPartyRules applies the venue's booking rules to an already validated
// date and time. Blackout dates are checked before party hours. An
// unparseable time counts as outside party hours.
func CheckPartyRules(date, clock string, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	if d, err := model.ParseCalendarDate(date, loc); err == nil && IsBlackoutDate(d) {
		return errBlackout
	}
	hour, _, err := ParseClock12(clock)
	if err != nil || hour < PartyHourStart || hour >= PartyHourEnd {
		return errOutsideHours
	}
	return nil
}
