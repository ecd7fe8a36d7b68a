// Package resilience bounds storage calls with a per-attempt timeout and
// retries transient failures with exponential backoff.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Policy struct {
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

// Do runs fn until it succeeds, fails with an error that is not unavailable,
// or the attempts are spent. An attempt that hits its own timeout while the
// caller's context is still live counts as unavailable and is reported wrapped
// in unavailable.
func (p Policy) Do(ctx context.Context, unavailable error, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := p.Backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = p.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %v", unavailable, err)
		}
		if !errors.Is(err, unavailable) {
			return err
		}
	}
	return err
}

// DoOnce runs fn a single time under the same timeout and error mapping. It
// suits writes that cannot be replayed safely.
func (p Policy) DoOnce(ctx context.Context, unavailable error, fn func(ctx context.Context) error) error {
	p.Attempts = 1
	return p.Do(ctx, unavailable, fn)
}

func (p Policy) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.Timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return fn(attemptCtx)
}
