package models

// VisualSignatureLen is the fixed length of a page's visual signature vector.
const VisualSignatureLen = 8

// Fingerprint is the core-owned comparable summary of a PageModel. It is
// deterministic for identical input and lives for one comparison run.
type Fingerprint struct {
	PageNumber int
	// Shingles holds hashed overlapping word n-grams of the normalized text.
	Shingles map[uint64]struct{}
	// Visual is a small numeric vector approximating page appearance:
	// aspect ratio, densities and image hash folds.
	Visual [VisualSignatureLen]float64
	// HasText distinguishes a truly empty page from one whose text was too
	// short to shingle.
	HasText      bool
	TextRunCount int
	ImageCount   int
	FontCount    int
	Unavailable  bool
}

// SimilarityScore is the weighted blend of the content and visual sub-scores,
// all in [0,1]. Sub-scores are carried for explainability.
type SimilarityScore struct {
	Overall float64 `json:"overall"`
	Content float64 `json:"content"`
	Visual  float64 `json:"visual"`
}

// PairType classifies an alignment outcome.
type PairType string

const (
	// PairMatched indicates a base page aligned to a compare page.
	PairMatched PairType = "matched"
	// PairAdded indicates a compare page with no base counterpart.
	PairAdded PairType = "added"
	// PairDeleted indicates a base page with no compare counterpart.
	PairDeleted PairType = "deleted"
)

// PagePair is one alignment outcome. Page numbers are 1-based; zero means the
// side is absent. Every base and compare page appears in exactly one PagePair.
type PagePair struct {
	Type        PairType        `json:"type"`
	BasePage    int             `json:"base_page,omitempty"`
	ComparePage int             `json:"compare_page,omitempty"`
	Score       SimilarityScore `json:"score"`
}
