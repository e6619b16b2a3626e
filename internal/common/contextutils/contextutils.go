package contextutils

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CheckResult represents the result of a context cancellation check
type CheckResult struct {
	Cancelled bool
	Error     error
}

// CheckCancellation checks if the context is cancelled and returns appropriate result
func CheckCancellation(ctx context.Context) CheckResult {
	select {
	case <-ctx.Done():
		return CheckResult{Cancelled: true, Error: ctx.Err()}
	default:
		return CheckResult{Cancelled: false, Error: nil}
	}
}

// CheckCancellationWithLog checks for context cancellation and logs if cancelled
func CheckCancellationWithLog(ctx context.Context, logger zerolog.Logger, operation string) CheckResult {
	result := CheckCancellation(ctx)
	if result.Cancelled {
		logger.Info().Str("operation", operation).Msg("Context cancelled")
	}
	return result
}

// WaitWithCancellation waits for a duration or until context is cancelled
func WaitWithCancellation(ctx context.Context, duration time.Duration) error {
	select {
	case <-time.After(duration):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
