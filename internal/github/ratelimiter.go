package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Mester2001/portfolio/pkg/logger"
)

// * RateLimiter tracks GitHub's X-RateLimit-* headers. Anonymous callers only
// * get 60 requests an hour and one refresh costs four, so running dry is
// * a realistic case.
type RateLimiter struct {
	mu         sync.Mutex
	remaining  int
	reset      time.Time
	lowWarn    int
	retryAfter time.Duration
	maxWait    time.Duration
	now        func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: 60,
		reset:     time.Now(),
		lowWarn:   10,
		maxWait:   time.Minute,
		now:       time.Now,
	}
}

// * wait blocks until the window resets, never longer than maxWait and never
// * past ctx
func (r *RateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	var waitTime time.Duration
	if r.remaining <= 0 && r.now().Before(r.reset) {
		waitTime = r.reset.Sub(r.now())
	}
	r.mu.Unlock()

	if waitTime <= 0 {
		return nil
	}
	if waitTime > r.maxWait {
		waitTime = r.maxWait
	}

	logger.Warn("[RateLimiter] Rate limit exhausted. Waiting %v", waitTime)
	return sleepCtx(ctx, waitTime)
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	r.retryAfter = 0
	if retry := headers.Get("Retry-After"); retry != "" {
		if seconds, err := strconv.Atoi(retry); err == nil {
			r.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}

	return r.retryAfter
}

func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := r.wait(req.Context()); err != nil {
			return nil, err
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		retryAfter := r.updateFromHeaders(resp.Header)

		// * One retry on 429 when GitHub tells us how long to back off
		if resp.StatusCode == http.StatusTooManyRequests && retryAfter > 0 && retryAfter <= r.maxWait {
			logger.Warn("[RateLimiter] Received 429. Retrying after %v...", retryAfter)
			resp.Body.Close()
			if err := sleepCtx(req.Context(), retryAfter); err != nil {
				return nil, err
			}
			return next.RoundTrip(req)
		}

		return resp, nil
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
