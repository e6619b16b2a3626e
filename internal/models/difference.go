package models

// DiffKind tags the closed set of difference variants.
type DiffKind string

const (
	// DiffText marks a text content difference.
	DiffText DiffKind = "text"
	// DiffImage marks an image difference.
	DiffImage DiffKind = "image"
	// DiffFont marks a font attribute difference.
	DiffFont DiffKind = "font"
	// DiffStyle marks a style attribute difference.
	DiffStyle DiffKind = "style"
	// DiffMetadata marks a document metadata difference.
	DiffMetadata DiffKind = "metadata"
)

// ChangeType classifies the direction of a difference.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeDeleted  ChangeType = "deleted"
	ChangeModified ChangeType = "modified"
)

// Severity is the coarse impact classification, assigned centrally by the
// aggregator's policy rather than by individual differs.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// TextDetail carries the text-specific fields of a difference.
type TextDetail struct {
	BaseText      string `json:"base_text,omitempty"`
	CompareText   string `json:"compare_text,omitempty"`
	LineNumber    int    `json:"line_number"`
	CharStart     int    `json:"char_start"`
	CharEnd       int    `json:"char_end"`
	ContextBefore string `json:"context_before,omitempty"`
	ContextAfter  string `json:"context_after,omitempty"`
}

// ImageDetail carries the image-specific fields of a difference.
type ImageDetail struct {
	BaseHash      string  `json:"base_hash,omitempty"`
	CompareHash   string  `json:"compare_hash,omitempty"`
	BaseBounds    *Bounds `json:"base_bounds,omitempty"`
	CompareBounds *Bounds `json:"compare_bounds,omitempty"`
	Similarity    float64 `json:"similarity"`
	Format        string  `json:"format,omitempty"`
}

// FontDetail carries the font-specific fields. Exactly one Changed flag is
// set per difference: one difference per changed attribute.
type FontDetail struct {
	BaseFont         FontUsage `json:"base_font"`
	CompareFont      FontUsage `json:"compare_font"`
	NameChanged      bool      `json:"name_changed,omitempty"`
	FamilyChanged    bool      `json:"family_changed,omitempty"`
	StyleChanged     bool      `json:"style_changed,omitempty"`
	SizeChanged      bool      `json:"size_changed,omitempty"`
	EncodingChanged  bool      `json:"encoding_changed,omitempty"`
	EmbeddingChanged bool      `json:"embedding_changed,omitempty"`
}

// StyleDetail carries only the attributes that actually differ; a nil pair
// means the attribute is unchanged.
type StyleDetail struct {
	RunText            string   `json:"run_text,omitempty"`
	BaseColor          *string  `json:"base_color,omitempty"`
	CompareColor       *string  `json:"compare_color,omitempty"`
	BaseBackground     *string  `json:"base_background,omitempty"`
	CompareBackground  *string  `json:"compare_background,omitempty"`
	BaseOpacity        *float64 `json:"base_opacity,omitempty"`
	CompareOpacity     *float64 `json:"compare_opacity,omitempty"`
	BaseLineHeight     *float64 `json:"base_line_height,omitempty"`
	CompareLineHeight  *float64 `json:"compare_line_height,omitempty"`
	BaseCharSpacing    *float64 `json:"base_char_spacing,omitempty"`
	CompareCharSpacing *float64 `json:"compare_char_spacing,omitempty"`
	BaseAlignment      *string  `json:"base_alignment,omitempty"`
	CompareAlignment   *string  `json:"compare_alignment,omitempty"`
}

// MetadataStatus classifies a metadata key comparison.
type MetadataStatus string

const (
	MetadataOnlyInBase     MetadataStatus = "only_in_base"
	MetadataOnlyInCompare  MetadataStatus = "only_in_compare"
	MetadataValueDifferent MetadataStatus = "value_different"
)

// MetadataDetail carries the metadata-specific fields of a difference.
type MetadataDetail struct {
	Key          string         `json:"key"`
	BaseValue    string         `json:"base_value,omitempty"`
	CompareValue string         `json:"compare_value,omitempty"`
	Status       MetadataStatus `json:"status"`
}

// Difference is one detected discrepancy. It is a tagged variant: Kind
// selects which detail pointer is populated; the others are nil. Immutable
// once built.
type Difference struct {
	ID          string     `json:"id"`
	Kind        DiffKind   `json:"kind"`
	Change      ChangeType `json:"change_type"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description"`
	BasePage    int        `json:"base_page,omitempty"`
	ComparePage int        `json:"compare_page,omitempty"`
	Bounds      Bounds     `json:"bounds"`

	Text     *TextDetail     `json:"text,omitempty"`
	Image    *ImageDetail    `json:"image,omitempty"`
	Font     *FontDetail     `json:"font,omitempty"`
	Style    *StyleDetail    `json:"style,omitempty"`
	Metadata *MetadataDetail `json:"metadata,omitempty"`
}
