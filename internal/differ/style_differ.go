package differ

import (
	"fmt"
	"math"
	"strings"

	"github.com/docdiff/docdiff/internal/models"
)

// styleFloatTolerance absorbs float noise in opacity, line height and
// character spacing comparisons.
const styleFloatTolerance = 0.01

// StyleDiffer compares presentation attributes of text runs occupying the
// same (or nearly same) position on a matched page pair. Only attributes that
// actually differ are carried on the resulting difference.
type StyleDiffer struct{}

// NewStyleDiffer creates a new style differ
func NewStyleDiffer() *StyleDiffer {
	return &StyleDiffer{}
}

// Diff compares color, background, opacity, line height, character spacing
// and alignment per matched run.
func (sd *StyleDiffer) Diff(basePage, comparePage models.PageModel) []models.Difference {
	matched := matchRuns(basePage.TextRuns, comparePage.TextRuns)

	var differences []models.Difference
	for _, pair := range matched {
		baseRun, compareRun := pair[0], pair[1]

		detail, changed := compareStyles(*baseRun, *compareRun)
		if len(changed) == 0 {
			continue
		}
		detail.RunText = baseRun.Text

		differences = append(differences, models.Difference{
			Kind:        models.DiffStyle,
			Change:      models.ChangeModified,
			BasePage:    basePage.Number,
			ComparePage: comparePage.Number,
			Description: fmt.Sprintf("Style changed (%s) for '%s'", strings.Join(changed, ", "), truncate(baseRun.Text, 40)),
			Bounds:      models.Bounds{X: baseRun.X, Y: baseRun.Y, Width: baseRun.Width, Height: baseRun.Height},
			Style:       &detail,
		})
	}

	return differences
}

// compareStyles returns the detail holding only the changed attribute pairs
// plus the list of changed attribute names.
func compareStyles(base, compare models.TextRun) (models.StyleDetail, []string) {
	var detail models.StyleDetail
	var changed []string

	if base.Color != compare.Color {
		detail.BaseColor, detail.CompareColor = strPtr(base.Color), strPtr(compare.Color)
		changed = append(changed, "color")
	}
	if base.Background != compare.Background {
		detail.BaseBackground, detail.CompareBackground = strPtr(base.Background), strPtr(compare.Background)
		changed = append(changed, "background")
	}
	if math.Abs(base.Opacity-compare.Opacity) > styleFloatTolerance {
		detail.BaseOpacity, detail.CompareOpacity = floatPtr(base.Opacity), floatPtr(compare.Opacity)
		changed = append(changed, "opacity")
	}
	if math.Abs(base.LineHeight-compare.LineHeight) > styleFloatTolerance {
		detail.BaseLineHeight, detail.CompareLineHeight = floatPtr(base.LineHeight), floatPtr(compare.LineHeight)
		changed = append(changed, "line_height")
	}
	if math.Abs(base.CharSpacing-compare.CharSpacing) > styleFloatTolerance {
		detail.BaseCharSpacing, detail.CompareCharSpacing = floatPtr(base.CharSpacing), floatPtr(compare.CharSpacing)
		changed = append(changed, "char_spacing")
	}
	if base.Alignment != compare.Alignment {
		detail.BaseAlignment, detail.CompareAlignment = strPtr(base.Alignment), strPtr(compare.Alignment)
		changed = append(changed, "alignment")
	}

	return detail, changed
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
