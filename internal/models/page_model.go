package models

// TextRun represents a contiguous run of text on a page with a single set of
// layout and style attributes.
type TextRun struct {
	Text        string  `json:"text"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	FontName    string  `json:"font_name,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Bold        bool    `json:"bold,omitempty"`
	Italic      bool    `json:"italic,omitempty"`
	Underline   bool    `json:"underline,omitempty"`
	Color       string  `json:"color,omitempty"`
	Background  string  `json:"background,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	LineHeight  float64 `json:"line_height,omitempty"`
	CharSpacing float64 `json:"char_spacing,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
}

// ImageRef describes an embedded image placement. The hash is computed by the
// extractor; the core only compares hashes, it never decodes pixels.
type ImageRef struct {
	ID     string  `json:"id,omitempty"`
	Hash   string  `json:"hash"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Format string  `json:"format,omitempty"`
}

// FontUsage summarizes one font used on a page.
type FontUsage struct {
	Name     string  `json:"name"`
	Family   string  `json:"family,omitempty"`
	Style    string  `json:"style,omitempty"`
	Size     float64 `json:"size,omitempty"`
	Encoding string  `json:"encoding,omitempty"`
	Embedded bool    `json:"embedded,omitempty"`
}

// PageModel is the extractor-owned view of a single page. The core treats it
// as immutable input and never mutates it.
type PageModel struct {
	Number             int         `json:"number"`
	Width              float64     `json:"width"`
	Height             float64     `json:"height"`
	Text               string      `json:"text"`
	TextRuns           []TextRun   `json:"text_runs,omitempty"`
	Images             []ImageRef  `json:"images,omitempty"`
	Fonts              []FontUsage `json:"fonts,omitempty"`
	ContentUnavailable bool        `json:"content_unavailable,omitempty"`
}

// DocumentModel is an ordered page sequence plus document-level metadata.
type DocumentModel struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Pages    []PageModel       `json:"pages"`
}

// Bounds is an axis-aligned bounding box in page coordinates.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageBounds returns the full-page bounding box of a PageModel.
func PageBounds(page PageModel) Bounds {
	return Bounds{X: 0, Y: 0, Width: page.Width, Height: page.Height}
}
