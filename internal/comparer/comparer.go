package comparer

import (
	"context"
	"time"

	"github.com/docdiff/docdiff/internal/aggregator"
	"github.com/docdiff/docdiff/internal/aligner"
	"github.com/docdiff/docdiff/internal/common/contextutils"
	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/differ"
	"github.com/docdiff/docdiff/internal/fingerprint"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/docdiff/docdiff/internal/similarity"
	"github.com/rs/zerolog"
)

// Comparer is the top-level engine: fingerprint both documents, align their
// pages, diff each matched pair on a bounded worker pool, and aggregate one
// ComparisonResult. It holds no per-run state and is safe for concurrent use.
type Comparer struct {
	cfg            *config.GlobalConfig
	builder        *fingerprint.Builder
	aligner        *aligner.Aligner
	pairDiffer     *differ.PairDiffer
	metadataDiffer *differ.MetadataDiffer
	aggregator     *aggregator.Aggregator
	coordinator    *Coordinator
	cache          *Cache
	logger         zerolog.Logger
}

// NewComparer validates the configuration and wires the pipeline. An invalid
// configuration fails construction; no comparison can start on it.
func NewComparer(cfg *config.GlobalConfig, logger zerolog.Logger) (*Comparer, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	cache, err := NewCache(cfg.CacheConfig)
	if err != nil {
		return nil, err
	}

	scorer := similarity.NewScorer(cfg.CompareConfig)

	return &Comparer{
		cfg:            cfg,
		builder:        fingerprint.NewBuilder(cfg.CompareConfig),
		aligner:        aligner.NewAligner(cfg.CompareConfig, scorer, logger),
		pairDiffer:     differ.NewPairDiffer(cfg.CompareConfig),
		metadataDiffer: differ.NewMetadataDiffer(),
		aggregator:     aggregator.NewAggregator(logger),
		coordinator:    NewCoordinator(cfg.WorkerConfig, logger),
		cache:          cache,
		logger:         logger.With().Str("component", "Comparer").Logger(),
	}, nil
}

// Compare runs one full comparison. A cancelled context returns the context
// error and no result; page- and pair-level problems are reported inline in
// the result instead of failing the run.
func (c *Comparer) Compare(ctx context.Context, base, compare *models.DocumentModel) (*models.ComparisonResult, error) {
	if base == nil || compare == nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrInvalidInput, "both documents are required")
	}

	start := time.Now()
	c.logger.Info().
		Str("base_document", base.ID).
		Str("compare_document", compare.ID).
		Int("base_pages", len(base.Pages)).
		Int("compare_pages", len(compare.Pages)).
		Msg("Comparison started")

	baseFps, err := c.buildFingerprints(ctx, base)
	if err != nil {
		return nil, err
	}
	compareFps, err := c.buildFingerprints(ctx, compare)
	if err != nil {
		return nil, err
	}

	// Alignment runs single-threaded: it needs both complete sequences.
	pairs := c.aligner.Align(baseFps, compareFps)

	if result := contextutils.CheckCancellationWithLog(ctx, c.logger, "compare"); result.Cancelled {
		return nil, result.Error
	}

	pairResults, err := c.diffPairs(ctx, base, compare, pairs)
	if err != nil {
		return nil, err
	}

	metadataDiffs := c.metadataDiffer.Diff(base.Metadata, compare.Metadata)

	result := c.aggregator.Aggregate(aggregator.Input{
		BaseDocument:    base,
		CompareDocument: compare,
		PairResults:     pairResults,
		MetadataDiffs:   metadataDiffs,
		ProcessingTime:  time.Since(start),
	})

	c.logger.Info().
		Int("total_differences", result.TotalDifferences).
		Int64("processing_time_ms", result.ProcessingTimeMs).
		Msg("Comparison finished")

	return result, nil
}

// buildFingerprints returns the fingerprint sequence for a document, served
// from the cache where possible and built in parallel otherwise.
func (c *Comparer) buildFingerprints(ctx context.Context, doc *models.DocumentModel) ([]models.Fingerprint, error) {
	fingerprints := make([]models.Fingerprint, len(doc.Pages))
	missing := make([]int, 0, len(doc.Pages))

	for i, page := range doc.Pages {
		if fp, ok := c.cache.GetFingerprint(doc.ID, page.Number); ok {
			fingerprints[i] = fp
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return fingerprints, nil
	}

	pages := make([]models.PageModel, len(missing))
	for j, i := range missing {
		pages[j] = doc.Pages[i]
	}

	built, err := c.builder.BuildAll(ctx, pages)
	if err != nil {
		return nil, err
	}

	for j, i := range missing {
		fingerprints[i] = built[j]
		c.cache.PutFingerprint(doc.ID, doc.Pages[i].Number, built[j])
	}

	return fingerprints, nil
}

// diffPairs schedules the matched pairs on the worker pool and assembles the
// positional PairResult list. Added and deleted pairs need no differ run;
// pairs touching unavailable page content are marked unassessable up front.
func (c *Comparer) diffPairs(ctx context.Context, base, compare *models.DocumentModel, pairs []models.PagePair) ([]models.PairResult, error) {
	basePages := pagesByNumber(base.Pages)
	comparePages := pagesByNumber(compare.Pages)

	results := make([]models.PairResult, len(pairs))
	var units []DiffUnit

	for i, pair := range pairs {
		results[i] = models.PairResult{Pair: pair}
		if pair.Type != models.PairMatched {
			continue
		}

		basePage := basePages[pair.BasePage]
		comparePage := comparePages[pair.ComparePage]

		if basePage.ContentUnavailable || comparePage.ContentUnavailable {
			results[i].Unavailable = true
			results[i].Error = "page content unavailable"
			continue
		}

		if diffs, ok := c.cache.GetPairDiffs(base.ID, compare.ID, pair.BasePage, pair.ComparePage); ok {
			results[i].Differences = diffs
			continue
		}

		units = append(units, DiffUnit{
			Index: i,
			Execute: func() ([]models.Difference, error) {
				return c.pairDiffer.Diff(basePage, comparePage), nil
			},
		})
	}

	outcomes, err := c.coordinator.Run(ctx, units, len(pairs))
	if err != nil {
		return nil, err
	}

	for _, unit := range units {
		outcome := outcomes[unit.Index]
		if outcome.Unavailable {
			results[unit.Index].Unavailable = true
			if outcome.Err != nil {
				results[unit.Index].Error = outcome.Err.Error()
			}
			continue
		}
		results[unit.Index].Differences = outcome.Differences

		pair := results[unit.Index].Pair
		c.cache.PutPairDiffs(base.ID, compare.ID, pair.BasePage, pair.ComparePage, outcome.Differences)
	}

	return results, nil
}

func pagesByNumber(pages []models.PageModel) map[int]models.PageModel {
	index := make(map[int]models.PageModel, len(pages))
	for _, p := range pages {
		index[p.Number] = p
	}
	return index
}
