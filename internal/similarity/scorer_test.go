package similarity

import (
	"testing"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/fingerprint"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/stretchr/testify/assert"
)

func buildFingerprint(t *testing.T, text string) models.Fingerprint {
	t.Helper()
	builder := fingerprint.NewBuilder(config.NewDefaultCompareConfig())
	return builder.Build(models.PageModel{Number: 1, Width: 612, Height: 792, Text: text})
}

func TestScorer_Score_IdenticalPages(t *testing.T) {
	scorer := NewScorer(config.NewDefaultCompareConfig())
	fp := buildFingerprint(t, "The quick brown fox jumps over the lazy dog")

	score := scorer.Score(fp, fp)

	assert.InDelta(t, 1.0, score.Overall, 1e-9)
	assert.InDelta(t, 1.0, score.Content, 1e-9)
	assert.InDelta(t, 1.0, score.Visual, 1e-9)
}

func TestScorer_Score_BothEmpty(t *testing.T) {
	scorer := NewScorer(config.NewDefaultCompareConfig())
	a := buildFingerprint(t, "")
	b := buildFingerprint(t, "")

	score := scorer.Score(a, b)

	assert.InDelta(t, 1.0, score.Content, 1e-9)
}

func TestScorer_Score_EmptyNeverMatchesNonEmpty(t *testing.T) {
	scorer := NewScorer(config.NewDefaultCompareConfig())
	empty := buildFingerprint(t, "")
	full := buildFingerprint(t, "Some actual page content goes here")

	score := scorer.Score(empty, full)

	assert.Equal(t, 0.0, score.Content)
}

func TestScorer_Score_DisjointText(t *testing.T) {
	scorer := NewScorer(config.NewDefaultCompareConfig())
	a := buildFingerprint(t, "alpha beta gamma delta epsilon zeta")
	b := buildFingerprint(t, "one two three four five six seven")

	score := scorer.Score(a, b)

	assert.Equal(t, 0.0, score.Content)
}

func TestScorer_Score_WeightedBlend(t *testing.T) {
	cfg := config.NewDefaultCompareConfig()
	cfg.ContentWeight = 1.0
	cfg.VisualWeight = 0.0
	scorer := NewScorer(cfg)

	// Shingle sets {s1, s2} vs {s1, s2, s3, s4} give Jaccard 0.5 exactly.
	a := models.Fingerprint{HasText: true, Shingles: map[uint64]struct{}{1: {}, 2: {}}}
	b := models.Fingerprint{HasText: true, Shingles: map[uint64]struct{}{1: {}, 2: {}, 3: {}, 4: {}}}

	score := scorer.Score(a, b)

	assert.Equal(t, 0.5, score.Content)
	assert.Equal(t, 0.5, score.Overall)
}

func TestScorer_Score_RangeClamped(t *testing.T) {
	scorer := NewScorer(config.NewDefaultCompareConfig())
	a := buildFingerprint(t, "shared words plus unique alpha material")
	b := buildFingerprint(t, "shared words plus unique beta material")

	score := scorer.Score(a, b)

	assert.GreaterOrEqual(t, score.Overall, 0.0)
	assert.LessOrEqual(t, score.Overall, 1.0)
	assert.GreaterOrEqual(t, score.Visual, 0.0)
	assert.LessOrEqual(t, score.Visual, 1.0)
}
