// Package ratelimit bounds how often a single client may hit the form
// submission endpoints.
//
// The default MemoryLimiter keeps one fixed-window record per client key in
// process memory. Every server instance therefore enforces its own limit; a
// multi-instance deployment would need a Limiter backed by a shared store.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultLimit is the number of requests allowed per window.
	DefaultLimit = 5
	// DefaultWindow is the length of one fixed window.
	DefaultWindow = 60 * time.Second
)

// Result is the outcome of a single Check.
type Result struct {
	Allowed   bool
	Remaining int
}

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Check(key string, limit int, window time.Duration) Result
}

// record is the per-key fixed-window state.
type record struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is an in-process fixed-window counter. The zero value is not
// usable; create one with NewMemoryLimiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

// MemoryOption configures a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

// NewMemoryLimiter creates an empty MemoryLimiter.
func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		records: make(map[string]*record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ Limiter = (*MemoryLimiter)(nil)

// Check counts one request for key. The read, reset and increment happen
// under a single lock so concurrent requests cannot both slip under the limit.
func (l *MemoryLimiter) Check(key string, limit int, window time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok || now.Sub(rec.windowStart) >= window {
		l.records[key] = &record{count: 1, windowStart: now}
		return Result{Allowed: true, Remaining: max(limit-1, 0)}
	}

	// count keeps tracking attempts past the limit; only Remaining is floored.
	rec.count++
	if rec.count > limit {
		return Result{Allowed: false, Remaining: 0}
	}
	return Result{Allowed: true, Remaining: limit - rec.count}
}

// Sweep removes records whose window started more than window ago.
// It returns the number of records removed.
func (l *MemoryLimiter) Sweep(window time.Duration) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, rec := range l.records {
		if now.Sub(rec.windowStart) >= window {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked client keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// StartJanitor sweeps expired records every interval until ctx is done.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, every, window time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep(window)
			}
		}
	}()
}
