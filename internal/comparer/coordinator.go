package comparer

import (
	"context"
	"sync"
	"time"

	"github.com/docdiff/docdiff/internal/common/contextutils"
	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/rs/zerolog"
)

// DiffUnit is one independent unit of pair work. Index is the unit's position
// in the final pair list; results are placed positionally, never appended in
// completion order.
type DiffUnit struct {
	Index   int
	Execute func() ([]models.Difference, error)
}

// UnitOutcome is what one unit produced. Unavailable marks a unit whose
// retries were exhausted; it is reported inline, not as a run failure.
type UnitOutcome struct {
	Differences []models.Difference
	Unavailable bool
	Err         error
}

// Coordinator schedules diff units across a bounded worker pool with retry.
// Submission blocks on the pool bound (backpressure); cancellation stops
// submission and discards all results.
type Coordinator struct {
	maxConcurrent int
	retryCount    int
	retryDelay    time.Duration
	logger        zerolog.Logger
}

// NewCoordinator creates a coordinator from worker pool configuration
func NewCoordinator(cfg config.WorkerConfig, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		maxConcurrent: cfg.MaxConcurrentComparisons,
		retryCount:    cfg.RetryCount,
		retryDelay:    cfg.RetryDelay(),
		logger:        logger.With().Str("component", "Coordinator").Logger(),
	}
}

// Run executes all units and returns their outcomes indexed by unit Index.
// A cancelled context aborts the run with the context error; partial results
// are discarded, never returned.
func (c *Coordinator) Run(ctx context.Context, units []DiffUnit, slots int) ([]UnitOutcome, error) {
	outcomes := make([]UnitOutcome, slots)

	semaphore := make(chan struct{}, c.maxConcurrent)
	var wg sync.WaitGroup

	for _, unit := range units {
		select {
		case <-ctx.Done():
			wg.Wait()
			c.logger.Info().Msg("Run cancelled during submission")
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(u DiffUnit) {
			defer wg.Done()
			defer func() { <-semaphore }()
			outcomes[u.Index] = c.runUnit(ctx, u)
		}(unit)
	}

	wg.Wait()

	if result := contextutils.CheckCancellation(ctx); result.Cancelled {
		return nil, result.Error
	}
	return outcomes, nil
}

// runUnit executes one unit with up to retryCount retries and a fixed delay
// between attempts. Exhausting retries degrades the unit to unavailable.
func (c *Coordinator) runUnit(ctx context.Context, unit DiffUnit) UnitOutcome {
	attempts := c.retryCount + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if result := contextutils.CheckCancellation(ctx); result.Cancelled {
			return UnitOutcome{Unavailable: true, Err: result.Error}
		}

		diffs, err := c.safeExecute(unit)
		if err == nil {
			return UnitOutcome{Differences: diffs}
		}
		lastErr = err

		c.logger.Warn().
			Err(err).
			Int("pair_index", unit.Index).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("Diff unit failed")

		if attempt < attempts {
			if waitErr := contextutils.WaitWithCancellation(ctx, c.retryDelay); waitErr != nil {
				return UnitOutcome{Unavailable: true, Err: waitErr}
			}
		}
	}

	return UnitOutcome{
		Unavailable: true,
		Err:         errorwrapper.NewDiffUnitError(unit.Index, attempts, lastErr),
	}
}

// safeExecute converts a panicking differ into an ordinary error so one bad
// pair cannot take down the run.
func (c *Coordinator) safeExecute(unit DiffUnit) (diffs []models.Difference, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorwrapper.NewError("diff unit panicked: %v", r)
		}
	}()
	return unit.Execute()
}
