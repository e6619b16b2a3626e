package config

// CompareConfig defines tuning for the alignment and diff pipeline.
type CompareConfig struct {
	// Weight of the content (text shingle) sub-score. ContentWeight and
	// VisualWeight must sum to 1.
	ContentWeight float64 `json:"content_weight" yaml:"content_weight" validate:"min=0,max=1"`
	// Weight of the visual signature sub-score.
	VisualWeight float64 `json:"visual_weight" yaml:"visual_weight" validate:"min=0,max=1"`
	// Minimum similarity score for two pages to be considered a match.
	// A score exactly equal to the threshold matches; strictly below rejects.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold" validate:"min=0,max=1"`
	// Candidate window half-width W: for base page i, compare pages
	// [i-W, i+W] are scored before any fallback full scan.
	MaxCandidatesPerPage int `json:"max_candidates_per_page" yaml:"max_candidates_per_page" validate:"min=1"`
	// Hash-distance cutoff above which two matched images count as modified.
	ImageSimilarityThreshold float64 `json:"image_similarity_threshold" yaml:"image_similarity_threshold" validate:"min=0,max=1"`
	// Word n-gram size for text shingling.
	ShingleSize int `json:"shingle_size,omitempty" yaml:"shingle_size,omitempty" validate:"min=1,max=10"`
}

// NewDefaultCompareConfig creates default comparison configuration
func NewDefaultCompareConfig() CompareConfig {
	return CompareConfig{
		ContentWeight:            0.7,
		VisualWeight:             0.3,
		SimilarityThreshold:      0.5,
		MaxCandidatesPerPage:     5,
		ImageSimilarityThreshold: 0.9,
		ShingleSize:              3,
	}
}
