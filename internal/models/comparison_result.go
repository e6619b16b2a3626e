package models

// PairResult holds everything the engine produced for a single page pair.
// Unavailable is set when the pair's differs could not complete even after
// retries; it must never be read as "no differences found".
type PairResult struct {
	Pair        PagePair     `json:"pair"`
	Differences []Difference `json:"differences,omitempty"`
	Unavailable bool         `json:"unavailable,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// ComparisonResult is the single output of a comparison run. It is built once
// by the aggregator and never mutated afterwards.
type ComparisonResult struct {
	BaseDocumentID      string                `json:"base_document_id,omitempty"`
	CompareDocumentID   string                `json:"compare_document_id,omitempty"`
	BasePageCount       int                   `json:"base_page_count"`
	ComparePageCount    int                   `json:"compare_page_count"`
	MetadataDifferences map[string]Difference `json:"metadata_differences,omitempty"`
	PairResults         []PairResult          `json:"pair_results"`
	CountsByKind        map[DiffKind]int      `json:"counts_by_kind"`
	CountsBySeverity    map[Severity]int      `json:"counts_by_severity"`
	TotalDifferences    int                   `json:"total_differences"`
	ProcessingTimeMs    int64                 `json:"processing_time_ms"`
}

// HasUnassessedPages reports whether any pair was marked unavailable, so
// callers can distinguish a clean "no differences" from an incomplete run.
func (cr *ComparisonResult) HasUnassessedPages() bool {
	for i := range cr.PairResults {
		if cr.PairResults[i].Unavailable {
			return true
		}
	}
	return false
}
