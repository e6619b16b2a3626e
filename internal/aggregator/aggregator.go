package aggregator

import (
	"fmt"
	"strings"
	"time"

	"github.com/docdiff/docdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/spaolacci/murmur3"
)

// criticalTextFraction is the share of a page's text that must change before
// a text difference escalates from major to critical.
const criticalTextFraction = 0.5

// Aggregator merges per-pair difference lists and metadata differences into
// the final ComparisonResult. Severity policy, display bounding boxes and
// stable difference ids are all assigned here, in one place, so no differ
// duplicates them.
type Aggregator struct {
	logger zerolog.Logger
}

// NewAggregator creates a new result aggregator
func NewAggregator(logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger.With().Str("component", "Aggregator").Logger(),
	}
}

// Input carries everything the aggregator folds into one result.
type Input struct {
	BaseDocument    *models.DocumentModel
	CompareDocument *models.DocumentModel
	PairResults     []models.PairResult
	MetadataDiffs   []models.Difference
	ProcessingTime  time.Duration
}

// Aggregate builds the immutable ComparisonResult.
func (ag *Aggregator) Aggregate(in Input) *models.ComparisonResult {
	basePages := pageIndex(in.BaseDocument)
	comparePages := pageIndex(in.CompareDocument)

	result := &models.ComparisonResult{
		BaseDocumentID:    in.BaseDocument.ID,
		CompareDocumentID: in.CompareDocument.ID,
		BasePageCount:     len(in.BaseDocument.Pages),
		ComparePageCount:  len(in.CompareDocument.Pages),
		PairResults:       make([]models.PairResult, 0, len(in.PairResults)),
		CountsByKind:      make(map[models.DiffKind]int),
		CountsBySeverity:  make(map[models.Severity]int),
		ProcessingTimeMs:  in.ProcessingTime.Milliseconds(),
	}

	for _, pr := range in.PairResults {
		finalized := ag.finalizePair(pr, basePages, comparePages)
		for _, d := range finalized.Differences {
			result.CountsByKind[d.Kind]++
			result.CountsBySeverity[d.Severity]++
			result.TotalDifferences++
		}
		result.PairResults = append(result.PairResults, finalized)
	}

	if len(in.MetadataDiffs) > 0 {
		result.MetadataDifferences = make(map[string]models.Difference, len(in.MetadataDiffs))
		for _, d := range in.MetadataDiffs {
			d.Severity = models.SeverityMinor
			d.ID = differenceID(d)
			result.MetadataDifferences[d.Metadata.Key] = d
			result.CountsByKind[d.Kind]++
			result.CountsBySeverity[d.Severity]++
			result.TotalDifferences++
		}
	}

	ag.logger.Debug().
		Int("total_differences", result.TotalDifferences).
		Int("pairs", len(result.PairResults)).
		Msg("Aggregation complete")

	return result
}

// finalizePair applies severity, bounds fallback and ids to one pair's
// differences, synthesizing the page-existence difference for added and
// deleted pages.
func (ag *Aggregator) finalizePair(pr models.PairResult, basePages, comparePages map[int]models.PageModel) models.PairResult {
	out := models.PairResult{Pair: pr.Pair, Unavailable: pr.Unavailable, Error: pr.Error}
	if pr.Unavailable {
		return out
	}

	switch pr.Pair.Type {
	case models.PairAdded:
		page := comparePages[pr.Pair.ComparePage]
		out.Differences = []models.Difference{ag.pageExistenceDifference(models.ChangeAdded, pr.Pair, page)}
		return out
	case models.PairDeleted:
		page := basePages[pr.Pair.BasePage]
		out.Differences = []models.Difference{ag.pageExistenceDifference(models.ChangeDeleted, pr.Pair, page)}
		return out
	}

	basePage := basePages[pr.Pair.BasePage]
	comparePage := comparePages[pr.Pair.ComparePage]

	out.Differences = make([]models.Difference, 0, len(pr.Differences))
	for _, d := range pr.Differences {
		d.Severity = ag.classify(d, basePage, comparePage)
		if isZeroBounds(d.Bounds) {
			d.Bounds = fallbackBounds(d, basePage, comparePage)
		}
		d.ID = differenceID(d)
		out.Differences = append(out.Differences, d)
	}
	return out
}

// pageExistenceDifference covers a whole added or deleted page. Page
// existence changes are always critical.
func (ag *Aggregator) pageExistenceDifference(change models.ChangeType, pair models.PagePair, page models.PageModel) models.Difference {
	description := fmt.Sprintf("Page %d deleted", pair.BasePage)
	detail := &models.TextDetail{BaseText: page.Text, LineNumber: 1}
	if change == models.ChangeAdded {
		description = fmt.Sprintf("Page %d added", pair.ComparePage)
		detail = &models.TextDetail{CompareText: page.Text, LineNumber: 1}
	}

	d := models.Difference{
		Kind:        models.DiffText,
		Change:      change,
		Severity:    models.SeverityCritical,
		Description: description,
		BasePage:    pair.BasePage,
		ComparePage: pair.ComparePage,
		Bounds:      models.PageBounds(page),
		Text:        detail,
	}
	d.ID = differenceID(d)
	return d
}

// classify applies the single severity policy: critical when more than half
// of a page's text changed, major for content (text/image) changes, minor for
// font and style attribute changes.
func (ag *Aggregator) classify(d models.Difference, basePage, comparePage models.PageModel) models.Severity {
	switch d.Kind {
	case models.DiffText:
		if ag.isMajorityTextChange(d, basePage, comparePage) {
			return models.SeverityCritical
		}
		return models.SeverityMajor
	case models.DiffImage:
		return models.SeverityMajor
	default:
		return models.SeverityMinor
	}
}

func (ag *Aggregator) isMajorityTextChange(d models.Difference, basePage, comparePage models.PageModel) bool {
	if d.Text == nil {
		return false
	}
	changed := len(d.Text.BaseText)
	total := len(strings.TrimSpace(basePage.Text))
	if d.Change == models.ChangeAdded {
		changed = len(d.Text.CompareText)
		total = len(strings.TrimSpace(comparePage.Text))
	}
	if total == 0 {
		return changed > 0
	}
	return float64(changed)/float64(total) > criticalTextFraction
}

func pageIndex(doc *models.DocumentModel) map[int]models.PageModel {
	index := make(map[int]models.PageModel, len(doc.Pages))
	for _, p := range doc.Pages {
		index[p.Number] = p
	}
	return index
}

func isZeroBounds(b models.Bounds) bool {
	return b.X == 0 && b.Y == 0 && b.Width == 0 && b.Height == 0
}

// fallbackBounds substitutes the full page bounds when a difference carries
// no element position of its own.
func fallbackBounds(d models.Difference, basePage, comparePage models.PageModel) models.Bounds {
	if d.Change == models.ChangeAdded {
		return models.PageBounds(comparePage)
	}
	return models.PageBounds(basePage)
}

// differenceID derives a stable id from the defining fields of a difference.
// Re-running a comparison on unchanged input reproduces identical ids, which
// downstream stores rely on.
func differenceID(d models.Difference) string {
	h := murmur3.New128()

	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.Write([]byte(p))
			_, _ = h.Write([]byte{0})
		}
	}

	write(string(d.Kind), string(d.Change), fmt.Sprintf("%d|%d", d.BasePage, d.ComparePage), d.Description)

	// Bounds disambiguate repeated identical elements on one page, such as
	// the same logo placed twice.
	write(fmt.Sprintf("%.2f|%.2f|%.2f|%.2f", d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height))

	switch {
	case d.Text != nil:
		write(d.Text.BaseText, d.Text.CompareText, fmt.Sprintf("%d|%d|%d", d.Text.LineNumber, d.Text.CharStart, d.Text.CharEnd))
	case d.Image != nil:
		write(d.Image.BaseHash, d.Image.CompareHash, fmt.Sprintf("%.4f", d.Image.Similarity))
	case d.Font != nil:
		write(d.Font.BaseFont.Name, d.Font.CompareFont.Name,
			fmt.Sprintf("%.2f|%.2f", d.Font.BaseFont.Size, d.Font.CompareFont.Size),
			fmt.Sprintf("%t|%t|%t|%t|%t|%t", d.Font.NameChanged, d.Font.FamilyChanged, d.Font.StyleChanged,
				d.Font.SizeChanged, d.Font.EncodingChanged, d.Font.EmbeddingChanged))
	case d.Style != nil:
		write(d.Style.RunText)
	case d.Metadata != nil:
		write(d.Metadata.Key, d.Metadata.BaseValue, d.Metadata.CompareValue, string(d.Metadata.Status))
	}

	hi, lo := h.Sum128()
	return fmt.Sprintf("%016x%016x", hi, lo)
}
