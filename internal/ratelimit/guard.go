package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Guard applies a Limiter to HTTP requests with a fixed limit and window.
type Guard struct {
	Limiter Limiter
	Key     KeyFunc
	Limit   int
	Window  time.Duration
	Stats   StatsRecorder // optional
}

// NewGuard creates a Guard with the default limit (5) and window (60s).
func NewGuard(l Limiter, key KeyFunc, stats StatsRecorder) *Guard {
	return &Guard{
		Limiter: l,
		Key:     key,
		Limit:   DefaultLimit,
		Window:  DefaultWindow,
		Stats:   stats,
	}
}

// Check counts r against its client's window and reports the decision to
// Stats. route labels the decision for observability only.
func (g *Guard) Check(r *http.Request, route string) Result {
	key := g.Key(r)
	res := g.Limiter.Check(key, g.Limit, g.Window)
	if g.Stats != nil {
		ev := Event{Key: key, Route: route, Allowed: res.Allowed, At: time.Now()}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 500*time.Millisecond)
		if err := g.Stats.Record(ctx, ev); err != nil {
			slog.Warn("rate limit stats record failed", "error", err, "route", route)
		}
		cancel()
	}
	if !res.Allowed {
		slog.Info("rate limit exceeded", "client", key, "route", route)
	}
	return res
}

// RetryAfterSeconds is the Retry-After hint sent with a 429.
func (g *Guard) RetryAfterSeconds() int {
	secs := int(g.Window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
