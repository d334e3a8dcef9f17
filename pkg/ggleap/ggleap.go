// Package ggleap links visitors to the ggLeap station booking portal.
//
// ggLeap has no public availability API, so Stations only serves a mock
// layout; live mode reports ErrLiveUnavailable.
package ggleap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/becsite/backend/internal/model"
)

const (
	DefaultPortalURL  = "https://portal.ggleap.com"
	DefaultCenterName = "Bakersfield Esports Center"
	DefaultCenterID   = "bec-bakersfield"
)

// ErrLiveUnavailable is returned by Stations outside mock mode.
var ErrLiveUnavailable = errors.New("ggleap: live station availability is not available; set GGLEAP_MODE=mock for development data")

// Config describes the venue's ggLeap center.
type Config struct {
	PortalURL  string
	CenterName string
	CenterID   string
	Mode       string // "mock" enables Stations
}

// Client serves booking information. It makes no network calls.
type Client struct {
	link model.BookingLink
	mock bool
}

// New fills unset fields with the venue defaults.
func New(cfg Config) *Client {
	link := model.BookingLink{
		URL:        orDefault(cfg.PortalURL, DefaultPortalURL),
		CenterName: orDefault(cfg.CenterName, DefaultCenterName),
		CenterID:   orDefault(cfg.CenterID, DefaultCenterID),
	}
	return &Client{
		link: link,
		mock: strings.EqualFold(strings.TrimSpace(cfg.Mode), "mock"),
	}
}

// BookingLink returns the portal URL and center details.
func (c *Client) BookingLink() model.BookingLink { return c.link }

// Stations returns current station availability.
func (c *Client) Stations(ctx context.Context) ([]model.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.mock {
		return nil, ErrLiveUnavailable
	}
	return MockStations(), nil
}

// MockStations returns a typical floor: 35 PCs, 5 consoles and 3 VR bays.
func MockStations() []model.Station {
	out := make([]model.Station, 0, 43)
	out = appendRange(out, "pc", "PC", 1, 20, "available", 5)
	out = appendRange(out, "pc", "PC", 21, 35, "occupied", 5)
	out = appendRange(out, "console", "Console", 1, 3, "available", 4)
	out = appendRange(out, "console", "Console", 4, 5, "occupied", 4)
	out = appendRange(out, "vr", "VR Station", 1, 1, "available", 8)
	out = appendRange(out, "vr", "VR Station", 2, 2, "occupied", 8)
	out = appendRange(out, "vr", "VR Station", 3, 3, "maintenance", 8)
	return out
}

func appendRange(out []model.Station, kind, label string, from, to int, status string, rate float64) []model.Station {
	for i := from; i <= to; i++ {
		out = append(out, model.Station{
			ID:         fmt.Sprintf("%s-%03d", kind, i),
			Name:       fmt.Sprintf("%s %d", label, i),
			Type:       kind,
			Status:     status,
			HourlyRate: rate,
		})
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
