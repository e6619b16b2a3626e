package comparer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	cfg := config.NewDefaultWorkerConfig()
	cfg.RetryDelayMs = 1
	return NewCoordinator(cfg, zerolog.Nop())
}

func TestCoordinator_Run_PositionalResults(t *testing.T) {
	c := newTestCoordinator(t)

	units := make([]DiffUnit, 6)
	for i := range units {
		i := i
		units[i] = DiffUnit{
			Index: i,
			Execute: func() ([]models.Difference, error) {
				return []models.Difference{{Description: fmt.Sprintf("unit %d", i)}}, nil
			},
		}
	}

	outcomes, err := c.Run(context.Background(), units, len(units))
	require.NoError(t, err)
	require.Len(t, outcomes, 6)
	for i, o := range outcomes {
		require.Len(t, o.Differences, 1)
		assert.Equal(t, fmt.Sprintf("unit %d", i), o.Differences[0].Description)
	}
}

func TestCoordinator_Run_RetryThenSuccess(t *testing.T) {
	c := newTestCoordinator(t)

	var calls atomic.Int32
	units := []DiffUnit{{
		Index: 0,
		Execute: func() ([]models.Difference, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("transient failure")
			}
			return []models.Difference{{Description: "recovered"}}, nil
		},
	}}

	outcomes, err := c.Run(context.Background(), units, 1)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Unavailable)
	require.Len(t, outcomes[0].Differences, 1)
	assert.Equal(t, "recovered", outcomes[0].Differences[0].Description)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCoordinator_Run_RetryExhaustionDegradesUnit(t *testing.T) {
	c := newTestCoordinator(t)

	var calls atomic.Int32
	units := []DiffUnit{{
		Index: 0,
		Execute: func() ([]models.Difference, error) {
			calls.Add(1)
			return nil, errors.New("persistent failure")
		},
	}}

	outcomes, err := c.Run(context.Background(), units, 1)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Unavailable)
	require.Error(t, outcomes[0].Err)

	var unitErr *errorwrapper.DiffUnitError
	require.ErrorAs(t, outcomes[0].Err, &unitErr)
	assert.Equal(t, 0, unitErr.PairIndex)

	// Initial attempt plus the configured retries.
	wantCalls := int32(config.NewDefaultWorkerConfig().RetryCount + 1)
	assert.Equal(t, wantCalls, calls.Load())
}

func TestCoordinator_Run_PanicIsContained(t *testing.T) {
	c := newTestCoordinator(t)

	units := []DiffUnit{
		{Index: 0, Execute: func() ([]models.Difference, error) { panic("bad differ") }},
		{Index: 1, Execute: func() ([]models.Difference, error) {
			return []models.Difference{{Description: "fine"}}, nil
		}},
	}

	outcomes, err := c.Run(context.Background(), units, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.True(t, outcomes[0].Unavailable)
	require.Error(t, outcomes[0].Err)
	assert.Contains(t, outcomes[0].Err.Error(), "panicked")

	assert.False(t, outcomes[1].Unavailable)
	require.Len(t, outcomes[1].Differences, 1)
}

func TestCoordinator_Run_CancelledBeforeStart(t *testing.T) {
	c := newTestCoordinator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := []DiffUnit{{
		Index: 0,
		Execute: func() ([]models.Difference, error) {
			return []models.Difference{{Description: "should not run"}}, nil
		},
	}}

	outcomes, err := c.Run(ctx, units, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcomes)
}

func TestCoordinator_Run_NoUnits(t *testing.T) {
	c := newTestCoordinator(t)

	outcomes, err := c.Run(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
