package differ

import (
	"fmt"
	"math"

	"github.com/docdiff/docdiff/internal/models"
)

// FontSizeTolerance absorbs floating-point noise in extracted font sizes.
const FontSizeTolerance = 0.1

// FontDiffer compares font attributes of text runs matched across a page
// pair. It emits one difference per distinct attribute change, never one per
// character.
type FontDiffer struct{}

// NewFontDiffer creates a new font differ
func NewFontDiffer() *FontDiffer {
	return &FontDiffer{}
}

// fontChangeKey dedupes repeated attribute changes across runs sharing the
// same font transition.
type fontChangeKey struct {
	baseName    string
	compareName string
	attribute   string
}

// Diff compares name, family, style, size, encoding and embedding of the
// fonts used by matching text runs.
func (fd *FontDiffer) Diff(basePage, comparePage models.PageModel) []models.Difference {
	matched := matchRuns(basePage.TextRuns, comparePage.TextRuns)

	baseFonts := fontIndex(basePage.Fonts)
	compareFonts := fontIndex(comparePage.Fonts)

	seen := make(map[fontChangeKey]bool)
	var differences []models.Difference

	emit := func(run *models.TextRun, attribute string, baseFont, compareFont models.FontUsage, detail models.FontDetail) {
		key := fontChangeKey{baseName: baseFont.Name, compareName: compareFont.Name, attribute: attribute}
		if seen[key] {
			return
		}
		seen[key] = true

		d := detail
		d.BaseFont = baseFont
		d.CompareFont = compareFont

		differences = append(differences, models.Difference{
			Kind:        models.DiffFont,
			Change:      models.ChangeModified,
			BasePage:    basePage.Number,
			ComparePage: comparePage.Number,
			Description: fmt.Sprintf("Font %s changed for '%s'", attribute, truncate(run.Text, 40)),
			Bounds:      models.Bounds{X: run.X, Y: run.Y, Width: run.Width, Height: run.Height},
			Font:        &d,
		})
	}

	for _, pair := range matched {
		baseRun, compareRun := pair[0], pair[1]

		baseFont := resolveFont(baseFonts, *baseRun)
		compareFont := resolveFont(compareFonts, *compareRun)

		if baseFont.Name != compareFont.Name {
			emit(baseRun, "name", baseFont, compareFont, models.FontDetail{NameChanged: true})
		}
		if baseFont.Family != compareFont.Family {
			emit(baseRun, "family", baseFont, compareFont, models.FontDetail{FamilyChanged: true})
		}
		if baseFont.Style != compareFont.Style {
			emit(baseRun, "style", baseFont, compareFont, models.FontDetail{StyleChanged: true})
		}
		if math.Abs(baseFont.Size-compareFont.Size) > FontSizeTolerance {
			emit(baseRun, "size", baseFont, compareFont, models.FontDetail{SizeChanged: true})
		}
		if baseFont.Encoding != compareFont.Encoding {
			emit(baseRun, "encoding", baseFont, compareFont, models.FontDetail{EncodingChanged: true})
		}
		if baseFont.Embedded != compareFont.Embedded {
			emit(baseRun, "embedding", baseFont, compareFont, models.FontDetail{EmbeddingChanged: true})
		}
	}

	return differences
}

func fontIndex(fonts []models.FontUsage) map[string]models.FontUsage {
	index := make(map[string]models.FontUsage, len(fonts))
	for _, f := range fonts {
		index[f.Name] = f
	}
	return index
}

// resolveFont returns the page-level font usage for a run, synthesized from
// the run itself when the page's font list does not cover it.
func resolveFont(index map[string]models.FontUsage, run models.TextRun) models.FontUsage {
	if f, ok := index[run.FontName]; ok {
		if run.FontSize > 0 {
			f.Size = run.FontSize
		}
		return f
	}
	return models.FontUsage{Name: run.FontName, Size: run.FontSize}
}
