package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsrc"
)

// DefaultRetryDelays returns the backoff delays for chunk retries: 100ms,
// 200ms, 400ms.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
}

// retryable reports whether a fetch error may succeed on a second attempt.
// Only store query failures qualify; a missing extension or access context
// will not fix itself.
func retryable(err error) bool {
	return mapsrc.ErrorCode(err) == mapsrc.EQUERY
}

// fetchWithRetry fetches one chunk, retrying retryable failures once per
// delay. The page is reused as-is so every attempt reads the same window.
func fetchWithRetry(ctx context.Context, e Entry, page *mapsrc.Pagination, delays []time.Duration, logger *slog.Logger) (*mapsrc.Result, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := e.Source.Fetch(ctx, e.Scope, page)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		logger.Debug("retrying chunk",
			"source", e.Name,
			"attempt", attempt+2,
			"offset", page.Offset,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
