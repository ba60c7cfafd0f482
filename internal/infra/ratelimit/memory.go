package ratelimit

import (
	"context"
	"sync"
	"time"

	"joylist/config"
	"joylist/internal/domain/service"
)

// memoryLimiter is a process-local sliding-window limiter for development
// and tests. It keeps the exact window-log semantics of the redis limiter,
// so the two are interchangeable behind service.RateLimiter.
type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	limit   int
	window  time.Duration
	idleTTL time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	events   []time.Time
	lastSeen time.Time
}

// MemoryOption configures the in-memory limiter.
type MemoryOption func(*memoryLimiter)

// WithClock overrides the time source. Tests use it to slide the window.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *memoryLimiter) { l.now = now }
}

// WithIdleTTL overrides how long an idle identity's state is retained.
func WithIdleTTL(d time.Duration) MemoryOption {
	return func(l *memoryLimiter) { l.idleTTL = d }
}

// NewMemoryLimiter is the constructor for memoryLimiter.
func NewMemoryLimiter(cfg *config.Config, opts ...MemoryOption) service.RateLimiter {
	l := &memoryLimiter{
		entries: make(map[string]*memoryEntry),
		limit:   cfg.RateLimit.Limit,
		window:  cfg.RateLimit.Window,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Allow implements service.RateLimiter.
func (l *memoryLimiter) Allow(_ context.Context, identity string) (service.Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupLocked(now)

	ent, ok := l.entries[identity]
	if !ok {
		ent = &memoryEntry{}
		l.entries[identity] = ent
	}
	ent.lastSeen = now

	cutoff := now.Add(-l.window)
	kept := ent.events[:0]
	for _, at := range ent.events {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	ent.events = kept

	if len(ent.events) >= l.limit {
		retry := ent.events[0].Add(l.window).Sub(now)

		return service.Decision{RetryAfter: retry}, nil
	}

	ent.events = append(ent.events, now)

	return service.Decision{
		Allowed:   true,
		Remaining: l.limit - len(ent.events),
	}, nil
}

// cleanupLocked drops identities idle longer than idleTTL. Callers hold mu.
func (l *memoryLimiter) cleanupLocked(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for key, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
