package aligner

import (
	"sort"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/docdiff/docdiff/internal/similarity"
	"github.com/rs/zerolog"
)

// Aligner reconciles the page sequences of two documents into an ordered
// PagePair list, tolerating insertions, deletions and reorders. It is a
// bounded-cost heuristic matcher, not an optimal assignment solver.
type Aligner struct {
	scorer    *similarity.Scorer
	threshold float64
	window    int
	logger    zerolog.Logger
}

// candidate is one scored (base, compare) pairing under consideration.
type candidate struct {
	baseIdx    int
	compareIdx int
	score      models.SimilarityScore
}

// NewAligner creates an aligner from comparison configuration
func NewAligner(cfg config.CompareConfig, scorer *similarity.Scorer, logger zerolog.Logger) *Aligner {
	return &Aligner{
		scorer:    scorer,
		threshold: cfg.SimilarityThreshold,
		window:    cfg.MaxCandidatesPerPage,
		logger:    logger.With().Str("component", "Aligner").Logger(),
	}
}

// Align produces the PagePair list for the two fingerprint sequences. Every
// base page and every compare page appears in exactly one pair. The result is
// ordered by base page, with added-only compare pages interleaved by their
// original order relative to neighboring matches.
func (a *Aligner) Align(base, compare []models.Fingerprint) []models.PagePair {
	if len(base) == 0 || len(compare) == 0 {
		return a.alignDegenerate(base, compare)
	}

	candidates := a.collectCandidates(base, compare)

	// Highest confidence wins first; ties resolve to the lower base page,
	// then the lower compare page, for deterministic output.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score.Overall != candidates[j].score.Overall {
			return candidates[i].score.Overall > candidates[j].score.Overall
		}
		if candidates[i].baseIdx != candidates[j].baseIdx {
			return candidates[i].baseIdx < candidates[j].baseIdx
		}
		return candidates[i].compareIdx < candidates[j].compareIdx
	})

	matchOfBase := make(map[int]candidate)
	usedCompare := make(map[int]bool)
	usedBase := make(map[int]bool)
	for _, c := range candidates {
		if usedBase[c.baseIdx] || usedCompare[c.compareIdx] {
			continue
		}
		usedBase[c.baseIdx] = true
		usedCompare[c.compareIdx] = true
		matchOfBase[c.baseIdx] = c
	}

	a.logger.Debug().
		Int("base_pages", len(base)).
		Int("compare_pages", len(compare)).
		Int("matched", len(matchOfBase)).
		Msg("Alignment committed")

	return a.assemble(base, compare, matchOfBase, usedCompare)
}

// alignDegenerate handles the zero-page cases without any scorer calls.
func (a *Aligner) alignDegenerate(base, compare []models.Fingerprint) []models.PagePair {
	pairs := make([]models.PagePair, 0, len(base)+len(compare))
	for _, fp := range base {
		pairs = append(pairs, models.PagePair{Type: models.PairDeleted, BasePage: fp.PageNumber})
	}
	for _, fp := range compare {
		pairs = append(pairs, models.PagePair{Type: models.PairAdded, ComparePage: fp.PageNumber})
	}
	return pairs
}

// collectCandidates scores compare pages in the index window around each base
// page, falling back to a full scan only when no in-window candidate reaches
// the threshold. The window bounds cost to O(n*W) in the common case while
// the fallback still tolerates long-distance reordering.
func (a *Aligner) collectCandidates(base, compare []models.Fingerprint) []candidate {
	var candidates []candidate

	for i := range base {
		lo := i - a.window
		if lo < 0 {
			lo = 0
		}
		hi := i + a.window
		if hi > len(compare)-1 {
			hi = len(compare) - 1
		}

		inWindow := false
		for j := lo; j <= hi; j++ {
			score := a.scorer.Score(base[i], compare[j])
			if score.Overall >= a.threshold {
				candidates = append(candidates, candidate{baseIdx: i, compareIdx: j, score: score})
				inWindow = true
			}
		}
		if inWindow {
			continue
		}

		for j := range compare {
			if j >= lo && j <= hi {
				continue
			}
			score := a.scorer.Score(base[i], compare[j])
			if score.Overall >= a.threshold {
				candidates = append(candidates, candidate{baseIdx: i, compareIdx: j, score: score})
			}
		}
	}

	return candidates
}

// assemble orders the final pair list: base pages ascending, unmatched
// compare pages emitted once, just before the first committed match whose
// compare index exceeds theirs.
func (a *Aligner) assemble(base, compare []models.Fingerprint, matchOfBase map[int]candidate, usedCompare map[int]bool) []models.PagePair {
	pairs := make([]models.PagePair, 0, len(base)+len(compare))
	emitted := make([]bool, len(compare))

	emitAddedBefore := func(compareIdx int) {
		for k := 0; k < compareIdx; k++ {
			if !usedCompare[k] && !emitted[k] {
				pairs = append(pairs, models.PagePair{Type: models.PairAdded, ComparePage: compare[k].PageNumber})
				emitted[k] = true
			}
		}
	}

	for i := range base {
		if c, ok := matchOfBase[i]; ok {
			emitAddedBefore(c.compareIdx)
			pairs = append(pairs, models.PagePair{
				Type:        models.PairMatched,
				BasePage:    base[i].PageNumber,
				ComparePage: compare[c.compareIdx].PageNumber,
				Score:       c.score,
			})
			emitted[c.compareIdx] = true
		} else {
			pairs = append(pairs, models.PagePair{Type: models.PairDeleted, BasePage: base[i].PageNumber})
		}
	}

	for k := range compare {
		if !usedCompare[k] && !emitted[k] {
			pairs = append(pairs, models.PagePair{Type: models.PairAdded, ComparePage: compare[k].PageNumber})
		}
	}

	return pairs
}
