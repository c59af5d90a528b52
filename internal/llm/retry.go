package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryProvider retries transient failures with exponential backoff and
// ±20% jitter. A malformed reply is retried once, since a second sample
// often parses. Rejected and truncated requests are never retried.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with cfg's retry policy.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	malformedSeen := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil || attempt == r.config.MaxAttempts || !retryable(err, &malformedSeen) {
			return nil, err
		}

		wait := r.delay(attempt, err)
		log.Debug().Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("retrying llm request")

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether err is worth another attempt. A deadline
// reaching this point belongs to a single attempt, since the caller's own
// context was checked first.
func retryable(err error, malformedSeen *bool) bool {
	var (
		rejected *ErrRejected
		maxTok   *ErrMaxTokensExceeded
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.As(err, &rejected), errors.As(err, &maxTok):
		return false
	case errors.As(err, &invalid):
		if *malformedSeen {
			return false
		}
		*malformedSeen = true
		return true
	}
	return true
}

// delay is the wait after the given 1-based attempt. A rate limit's
// Retry-After wins over the backoff curve.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(wait, 0))
}
