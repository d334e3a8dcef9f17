package service

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock12(t *testing.T) {
	cases := []struct {
		in         string
		hour, min  int
		shouldFail bool
	}{
		{"12:00 AM", 0, 0, false},
		{"12:30 PM", 12, 30, false},
		{"1:15 PM", 13, 15, false},
		{"7:59 pm", 19, 59, false},
		{"8:00PM", 20, 0, false},
		{"11:00 AM", 11, 0, false},
		{"13:00 PM", 0, 0, true},
		{"0:30 AM", 0, 0, true},
		{"2 PM", 0, 0, true},
		{"14:00", 0, 0, true},
	}
	for _, tc := range cases {
		h, m, err := ParseClock12(tc.in)
		if tc.shouldFail {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil || h != tc.hour || m != tc.min {
			t.Errorf("%q: want %d:%02d, got %d:%02d (%v)", tc.in, tc.hour, tc.min, h, m, err)
		}
	}
}

func TestCheckPartyRules_Hours(t *testing.T) {
	cases := []struct {
		clock string
		ok    bool
	}{
		{"12:00 PM", true},
		{"2:00 PM", true},
		{"7:59 PM", true},
		{"8:00 PM", false},
		{"9:00 PM", false},
		{"11:59 AM", false},
		{"12:00 AM", false},
		{"not a time", false},
	}
	for _, tc := range cases {
		err := CheckPartyRules("2026-06-10", tc.clock, time.UTC)
		if tc.ok && err != nil {
			t.Errorf("%s: expected ok, got %v", tc.clock, err)
		}
		if !tc.ok {
			var rv *RuleViolation
			if !errors.As(err, &rv) || rv.Code != CodeOutsidePartyHours {
				t.Errorf("%s: expected OUTSIDE_PARTY_HOURS, got %v", tc.clock, err)
			}
		}
	}
}

func TestCheckPartyRules_BlackoutDates(t *testing.T) {
	for _, d := range []string{"2026-04-20", "2027-04-26", "2026-11-27", "2026-12-25"} {
		err := CheckPartyRules(d, "2:00 PM", time.UTC)
		var rv *RuleViolation
		if !errors.As(err, &rv) || rv.Code != CodeBlackoutDate {
			t.Errorf("%s: expected BLACKOUT_DATE, got %v", d, err)
		}
	}
	if err := CheckPartyRules("2026-04-21", "2:00 PM", time.UTC); err != nil {
		t.Errorf("Apr 21 should be open, got %v", err)
	}
}

func TestCheckPartyRules_BlackoutCheckedFirst(t *testing.T) {
	err := CheckPartyRules("2026-12-25", "9:00 PM", time.UTC)
	var rv *RuleViolation
	if !errors.As(err, &rv) || rv.Code != CodeBlackoutDate {
		t.Errorf("expected blackout to win, got %v", err)
	}
}

func TestCheckPartyRules_RFC3339UsesWrittenDate(t *testing.T) {
	loc, _ := time.LoadLocation("America/Los_Angeles")
	// 2026-04-20 in UTC offset notation still means April 20 to the form.
	err := CheckPartyRules("2026-04-20T00:00:00Z", "2:00 PM", loc)
	var rv *RuleViolation
	if !errors.As(err, &rv) || rv.Code != CodeBlackoutDate {
		t.Errorf("expected BLACKOUT_DATE, got %v", err)
	}
}
