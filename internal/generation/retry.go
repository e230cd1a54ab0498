package generation

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy configures retryWithBackoff. MaxRetries counts retries after
// the first attempt; waits double from BaseDelay with no jitter.
type RetryPolicy struct {
	MaxRetries  uint64
	BaseDelay   time.Duration
	IsRetryable func(error) bool
}

// retryWithBackoff runs op until it succeeds, fails with a non-retryable
// error, exhausts the policy, or ctx is cancelled. onWait, if set, observes
// each wait before it is slept.
func retryWithBackoff(ctx context.Context, policy RetryPolicy, op func() error, onWait func(time.Duration)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = policy.BaseDelay << policy.MaxRetries
	b.MaxElapsedTime = 0

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if policy.IsRetryable != nil && !policy.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(_ error, wait time.Duration) {
		if onWait != nil {
			onWait(wait)
		}
	}

	return backoff.RetryNotify(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, policy.MaxRetries), ctx), notify)
}
