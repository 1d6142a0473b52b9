package generator

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retry runs fn up to attempts times, sleeping between tries with a doubling
// delay starting at baseDelay. The last error is returned unchanged so
// callers can still categorize it. Context cancellation stops the loop.
func retry(ctx context.Context, attempts int, baseDelay time.Duration, logger *zap.Logger, op string, fn func() (string, error)) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := baseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
		logger.Warn("completion attempt failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return "", lastErr
}
