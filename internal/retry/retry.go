package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Config controls how Do paces its attempts. Attempts is the total number of
// tries, not the number of retries. PerTry bounds each individual attempt;
// zero means attempts share the caller's context deadline.
type Config struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	PerTry    time.Duration
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx ends.
// Between failures it sleeps an exponentially growing, jittered delay.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		opCtx := ctx
		cancel := context.CancelFunc(func() {})
		if cfg.PerTry > 0 {
			opCtx, cancel = context.WithTimeout(ctx, cfg.PerTry)
		}
		result, err := op(opCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Msg("Attempt failed")

		if attempt == attempts {
			break
		}
		delay := backoff(attempt, cfg.BaseDelay, cfg.MaxDelay)
		log.Debug().
			Dur("delay", delay).
			Int("next_attempt", attempt+1).
			Msg("Retrying after delay")
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// backoff doubles the delay per completed attempt, caps it at maxDelay, and
// jitters the result between 0.5x and 1.5x to keep clients from retrying in
// lockstep.
func backoff(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if attempt > 30 {
		attempt = 30 // 1<<31 would overflow 32-bit int
	}
	delay := time.Duration(1<<(attempt-1)) * baseDelay
	if delay > maxDelay {
		delay = maxDelay
	}
	delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
