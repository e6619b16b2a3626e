package differ

import (
	"testing"

	"github.com/docdiff/docdiff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleRun(text string, y float64) models.TextRun {
	return models.TextRun{Text: text, X: 50, Y: y, Width: 200, Height: 14, Color: "#000000", Opacity: 1.0, Alignment: "left"}
}

func TestStyleDiffer_Diff_NoChanges(t *testing.T) {
	sd := NewStyleDiffer()
	page := models.PageModel{Number: 1, TextRuns: []models.TextRun{styleRun("Body text", 700)}}

	diffs := sd.Diff(page, page)

	assert.Empty(t, diffs)
}

func TestStyleDiffer_Diff_ColorChanged(t *testing.T) {
	sd := NewStyleDiffer()
	baseRun := styleRun("Body text", 700)
	compareRun := baseRun
	compareRun.Color = "#ff0000"

	base := models.PageModel{Number: 1, TextRuns: []models.TextRun{baseRun}}
	compare := models.PageModel{Number: 1, TextRuns: []models.TextRun{compareRun}}

	diffs := sd.Diff(base, compare)

	require.Len(t, diffs, 1)
	d := diffs[0]
	assert.Equal(t, models.DiffStyle, d.Kind)
	assert.Equal(t, models.ChangeModified, d.Change)
	require.NotNil(t, d.Style)
	require.NotNil(t, d.Style.BaseColor)
	assert.Equal(t, "#000000", *d.Style.BaseColor)
	assert.Equal(t, "#ff0000", *d.Style.CompareColor)

	// Unchanged attributes stay absent.
	assert.Nil(t, d.Style.BaseOpacity)
	assert.Nil(t, d.Style.BaseAlignment)
	assert.Nil(t, d.Style.BaseLineHeight)
}

func TestStyleDiffer_Diff_MultipleAttributes(t *testing.T) {
	sd := NewStyleDiffer()
	baseRun := styleRun("Body text", 700)
	compareRun := baseRun
	compareRun.Opacity = 0.5
	compareRun.Alignment = "center"

	base := models.PageModel{Number: 1, TextRuns: []models.TextRun{baseRun}}
	compare := models.PageModel{Number: 1, TextRuns: []models.TextRun{compareRun}}

	diffs := sd.Diff(base, compare)

	require.Len(t, diffs, 1)
	d := diffs[0]
	require.NotNil(t, d.Style.BaseOpacity)
	assert.Equal(t, 1.0, *d.Style.BaseOpacity)
	assert.Equal(t, 0.5, *d.Style.CompareOpacity)
	assert.Equal(t, "left", *d.Style.BaseAlignment)
	assert.Equal(t, "center", *d.Style.CompareAlignment)
	assert.Nil(t, d.Style.BaseColor)
}

func TestStyleDiffer_Diff_OpacityWithinTolerance(t *testing.T) {
	sd := NewStyleDiffer()
	baseRun := styleRun("Body text", 700)
	compareRun := baseRun
	compareRun.Opacity = 1.005

	base := models.PageModel{Number: 1, TextRuns: []models.TextRun{baseRun}}
	compare := models.PageModel{Number: 1, TextRuns: []models.TextRun{compareRun}}

	diffs := sd.Diff(base, compare)

	assert.Empty(t, diffs)
}

func TestStyleDiffer_Diff_NearbyPositionStillMatches(t *testing.T) {
	sd := NewStyleDiffer()
	baseRun := styleRun("Body text", 700)
	compareRun := baseRun
	compareRun.Y = 700.2 // rounds to the same half-point
	compareRun.Color = "#00ff00"

	base := models.PageModel{Number: 1, TextRuns: []models.TextRun{baseRun}}
	compare := models.PageModel{Number: 1, TextRuns: []models.TextRun{compareRun}}

	diffs := sd.Diff(base, compare)

	require.Len(t, diffs, 1)
	assert.Equal(t, "#00ff00", *diffs[0].Style.CompareColor)
}

func TestRunKey_QuantizesCoordinates(t *testing.T) {
	a := NewRunKey(models.TextRun{Text: "Same Text", X: 10.1, Y: 20.2})
	b := NewRunKey(models.TextRun{Text: "same   text", X: 10.2, Y: 20.1})

	assert.Equal(t, a, b)

	c := NewRunKey(models.TextRun{Text: "Same Text", X: 14.0, Y: 20.2})
	assert.NotEqual(t, a, c)
}
