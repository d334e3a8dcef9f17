// Package config assembles the process configuration from environment
// variables once at startup. Handlers and adapters receive the values they
// need through their constructors and never read the environment themselves.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config is the resolved configuration for the venue site backend.
type Config struct {
	Port          string `yaml:"port"`
	SiteURL       string `yaml:"site_url"`
	FrontendURL   string `yaml:"frontend_url"`
	VenueTimezone string `yaml:"venue_timezone"`
	LogLevel      string `yaml:"log_level"`

	Stripe  StripeConfig  `yaml:"stripe"`
	Pricing PricingConfig `yaml:"pricing"`
	StartGG StartGGConfig `yaml:"startgg"`
	GGLeap  GGLeapConfig  `yaml:"ggleap"`

	RedisURL          string `yaml:"redis_url,omitempty"`
	RateStatsEnabled  bool   `yaml:"rate_stats_enabled"`
	TrustedProxyCount int    `yaml:"trusted_proxy_count"`
}

// StripeConfig holds Stripe credentials. Secrets are omitted from YAML output.
type StripeConfig struct {
	SecretKey     string `yaml:"-"`
	WebhookSecret string `yaml:"-"`
	Configured    bool   `yaml:"configured"`
}

// PricingConfig holds the configurable product amounts in cents.
type PricingConfig struct {
	DayPassCents    int `yaml:"day_pass_cents"`
	MembershipCents int `yaml:"membership_cents"`
}

// StartGGConfig selects mock or live mode for the tournament provider.
type StartGGConfig struct {
	Mode     string `yaml:"mode"` // "mock" | "live"
	OwnerID  string `yaml:"owner_id,omitempty"`
	APIToken string `yaml:"-"`
}

// GGLeapConfig describes the station booking portal.
type GGLeapConfig struct {
	PortalURL  string `yaml:"portal_url"`
	CenterName string `yaml:"center_name"`
	CenterID   string `yaml:"center_id"`
	Mode       string `yaml:"mode"`
}

const (
	DefaultDayPassCents    = 3500
	DefaultMembershipCents = 25000
)

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function so tests can
// supply values without touching the process environment.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
	getInt := func(key string, def int) (int, error) {
		s := get(key, "")
		if s == "" {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
		}
		return n, nil
	}

	cfg := &Config{
		Port:          get("PORT", "8080"),
		SiteURL:       strings.TrimRight(get("SITE_URL", "http://localhost:3000"), "/"),
		VenueTimezone: get("VENUE_TIMEZONE", "America/Los_Angeles"),
		LogLevel:      strings.ToUpper(get("LOG_LEVEL", "INFO")),
		Stripe: StripeConfig{
			SecretKey:     get("STRIPE_SECRET_KEY", ""),
			WebhookSecret: get("STRIPE_WEBHOOK_SECRET", ""),
		},
		StartGG: StartGGConfig{
			Mode:     strings.ToLower(get("STARTGG_MODE", "mock")),
			OwnerID:  get("STARTGG_OWNER_ID", ""),
			APIToken: get("STARTGG_API_TOKEN", ""),
		},
		GGLeap: GGLeapConfig{
			PortalURL:  get("GGLEAP_PORTAL_URL", "https://portal.ggleap.com"),
			CenterName: get("GGLEAP_CENTER_NAME", "Bakersfield Esports Center"),
			CenterID:   get("GGLEAP_CENTER_ID", "bec-bakersfield"),
			Mode:       strings.ToLower(get("GGLEAP_MODE", "mock")),
		},
		RedisURL:         get("REDIS_URL", ""),
		RateStatsEnabled: get("RATE_STATS_ENABLED", "") == "true",
	}
	cfg.FrontendURL = strings.TrimRight(get("FRONTEND_URL", cfg.SiteURL), "/")
	cfg.Stripe.Configured = cfg.Stripe.SecretKey != ""

	var err error
	if cfg.Pricing.DayPassCents, err = getInt("DAY_PASS_AMOUNT_CENTS", DefaultDayPassCents); err != nil {
		return nil, err
	}
	if cfg.Pricing.MembershipCents, err = getInt("MEMBERSHIP_AMOUNT_CENTS", DefaultMembershipCents); err != nil {
		return nil, err
	}
	if cfg.TrustedProxyCount, err = getInt("TRUSTED_PROXY_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.Pricing.DayPassCents < 1 {
		return nil, fmt.Errorf("config: DAY_PASS_AMOUNT_CENTS must be at least 1, got %d", cfg.Pricing.DayPassCents)
	}
	if cfg.Pricing.MembershipCents < 1 {
		return nil, fmt.Errorf("config: MEMBERSHIP_AMOUNT_CENTS must be at least 1, got %d", cfg.Pricing.MembershipCents)
	}

	if cfg.StartGG.Mode != "mock" && cfg.StartGG.Mode != "live" {
		return nil, fmt.Errorf("config: STARTGG_MODE must be mock or live, got %q", cfg.StartGG.Mode)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location returns the venue time zone used for calendar-date rules.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.VenueTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: VENUE_TIMEZONE %q: %w", c.VenueTimezone, err)
	}
	return loc, nil
}
