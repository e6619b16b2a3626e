package similarity

import (
	"math"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
)

// Scorer computes a normalized [0,1] similarity between two fingerprints as a
// weighted blend of content and visual sub-scores. Pure and total: no failure
// mode.
type Scorer struct {
	contentWeight float64
	visualWeight  float64
}

// NewScorer creates a scorer from comparison configuration
func NewScorer(cfg config.CompareConfig) *Scorer {
	return &Scorer{
		contentWeight: cfg.ContentWeight,
		visualWeight:  cfg.VisualWeight,
	}
}

// Score blends the content and visual sub-scores of two fingerprints.
func (s *Scorer) Score(a, b models.Fingerprint) models.SimilarityScore {
	content := contentScore(a, b)
	visual := visualScore(a.Visual, b.Visual)

	return models.SimilarityScore{
		Overall: s.contentWeight*content + s.visualWeight*visual,
		Content: content,
		Visual:  visual,
	}
}

// contentScore is the Jaccard similarity of the shingle sets. Two truly empty
// pages score 1; an empty page never matches a non-empty one.
func contentScore(a, b models.Fingerprint) float64 {
	if !a.HasText && !b.HasText {
		return 1
	}
	if !a.HasText || !b.HasText {
		return 0
	}
	return jaccard(a.Shingles, b.Shingles)
}

func jaccard(a, b map[uint64]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	intersection := 0
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

// visualScore is the cosine similarity of the two signature vectors, clamped
// to [0,1]. Two all-zero signatures (blank pages) count as identical.
func visualScore(a, b [models.VisualSignatureLen]float64) float64 {
	var dot, normA, normB float64
	for i := 0; i < models.VisualSignatureLen; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 && normB == 0 {
		return 1
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}
