package differ

import (
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
)

// PairDiffer bundles the four element differs that run over one matched page
// pair. It holds no mutable state, so a single instance is shared by all
// workers.
type PairDiffer struct {
	text  *TextDiffer
	image *ImageDiffer
	font  *FontDiffer
	style *StyleDiffer
}

// NewPairDiffer creates the composite differ from comparison configuration
func NewPairDiffer(cfg config.CompareConfig) *PairDiffer {
	return &PairDiffer{
		text:  NewTextDiffer(),
		image: NewImageDiffer(cfg.ImageSimilarityThreshold),
		font:  NewFontDiffer(),
		style: NewStyleDiffer(),
	}
}

// Diff runs text, image, font and style differs over the pair and returns the
// concatenated differences in that fixed order.
func (pd *PairDiffer) Diff(basePage, comparePage models.PageModel) []models.Difference {
	var differences []models.Difference
	differences = append(differences, pd.text.Diff(basePage, comparePage)...)
	differences = append(differences, pd.image.Diff(basePage, comparePage)...)
	differences = append(differences, pd.font.Diff(basePage, comparePage)...)
	differences = append(differences, pd.style.Diff(basePage, comparePage)...)
	return differences
}
