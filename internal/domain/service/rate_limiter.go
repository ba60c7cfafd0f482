package service

import (
	"context"
	"time"
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	// Allowed reports whether the operation may proceed.
	Allowed bool
	// Remaining is the number of operations left in the current window.
	Remaining int
	// RetryAfter is the recommended wait before retrying when blocked.
	// Zero means no recommendation.
	RetryAfter time.Duration
}

// RateLimiter bounds the rate of mutating operations per caller identity.
//
// Allow consults and updates the backing counter atomically: even under
// concurrent calls for one identity, no more than the policy limit of
// successes can be recorded inside a single sliding window. A non-nil error
// means the backing store itself failed; callers must treat that as an
// infrastructure fault (fail closed), never as a quota rejection.
type RateLimiter interface {
	Allow(ctx context.Context, identity string) (Decision, error)
}
