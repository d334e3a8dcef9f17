package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/becsite/backend/internal/cache"
	"github.com/becsite/backend/internal/config"
	"github.com/becsite/backend/internal/handler"
	"github.com/becsite/backend/internal/logging"
	"github.com/becsite/backend/internal/notify"
	"github.com/becsite/backend/internal/ratelimit"
	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/internal/validation"
	"github.com/becsite/backend/pkg/ggleap"
	"github.com/becsite/backend/pkg/startgg"
	pkgstripe "github.com/becsite/backend/pkg/stripe"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	loc, _ := cfg.Location() // validated by config.Load

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it the cache lives in memory.
	var (
		store cache.Cache = cache.NewMemoryCache()
		stats ratelimit.StatsRecorder
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid REDIS_URL", "error", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		store = cache.NewRedisCache(rdb, "bec:")
		if cfg.RateStatsEnabled {
			stats = ratelimit.NewRedisStats(rdb, ratelimit.WithStatsPrefix("bec:ratelimit"))
		}
		slog.Info("using redis cache", "addr", opts.Addr)
	} else if cfg.RateStatsEnabled {
		slog.Warn("RATE_STATS_ENABLED ignored without REDIS_URL")
	}

	limiter := ratelimit.NewMemoryLimiter()
	limiter.StartJanitor(ctx, 5*time.Minute, ratelimit.DefaultWindow)
	guard := ratelimit.NewGuard(limiter, ratelimit.ClientKey(cfg.TrustedProxyCount), stats)

	notifier := notify.NewLogNotifier(nil)
	v := validation.New(loc)

	// Without a secret key the checkout endpoints answer 500.
	if !cfg.Stripe.Configured {
		slog.Warn("STRIPE_SECRET_KEY not set; checkout is disabled")
	}
	stripeClient := pkgstripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	checkoutService := service.NewCheckoutService(stripeClient, notifier, service.CheckoutConfig{
		SiteURL:         cfg.SiteURL,
		DayPassCents:    cfg.Pricing.DayPassCents,
		MembershipCents: cfg.Pricing.MembershipCents,
	})

	events := startgg.New(startgg.Config{
		Mode:    startgg.ParseMode(cfg.StartGG.Mode),
		OwnerID: cfg.StartGG.OwnerID,
		Token:   cfg.StartGG.APIToken,
	}, startgg.WithLocation(loc))
	slog.Info("tournament provider", "mode", events.Mode())

	booking := ggleap.New(ggleap.Config{
		PortalURL:  cfg.GGLeap.PortalURL,
		CenterName: cfg.GGLeap.CenterName,
		CenterID:   cfg.GGLeap.CenterID,
		Mode:       cfg.GGLeap.Mode,
	})

	router := handler.NewRouter(handler.Handlers{
		Base:     handler.New(store, cfg.FrontendURL),
		Contact:  handler.NewContactHandler(service.NewContactService(notifier), v, guard),
		Party:    handler.NewPartyHandler(service.NewPartyService(notifier, loc), v, guard),
		Checkout: handler.NewCheckoutHandler(checkoutService, v),
		Events:   handler.NewEventsHandler(service.NewTournamentService(events, store)),
		Booking:  handler.NewBookingHandler(booking),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
