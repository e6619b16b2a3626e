package comparer

import (
	"context"
	"testing"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each sentence shares no words with the others, so pages built from
// different sentences never look like content matches.
var pageBodies = []string{
	"alpha bravo charlie delta echo foxtrot",
	"golf hotel india juliet kilo lima",
	"mike november oscar papa quebec romeo",
	"sierra tango uniform victor whiskey xray",
	"yankee zulu apple banana cherry date",
}

func docFromBodies(id string, bodies ...string) *models.DocumentModel {
	doc := &models.DocumentModel{ID: id, Metadata: map[string]string{"Title": id}}
	for i, body := range bodies {
		doc.Pages = append(doc.Pages, models.PageModel{
			Number: i + 1,
			Width:  612,
			Height: 792,
			Text:   body,
			TextRuns: []models.TextRun{{
				Text: body, X: 72, Y: 720, Width: 400, Height: 12,
				FontName: "Helvetica", FontSize: 11,
			}},
		})
	}
	return doc
}

func newTestComparer(t *testing.T) *Comparer {
	t.Helper()
	cfg := config.NewDefaultGlobalConfig()
	cfg.WorkerConfig.RetryDelayMs = 1
	c, err := NewComparer(cfg, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestComparer_Compare_IdenticalDocuments(t *testing.T) {
	c := newTestComparer(t)

	doc := docFromBodies("doc", pageBodies[0], pageBodies[1], pageBodies[2])
	result, err := c.Compare(context.Background(), doc, doc)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalDifferences)
	assert.Empty(t, result.MetadataDifferences)
	require.Len(t, result.PairResults, 3)
	for i, pr := range result.PairResults {
		assert.Equal(t, models.PairMatched, pr.Pair.Type)
		assert.Equal(t, i+1, pr.Pair.BasePage)
		assert.Equal(t, i+1, pr.Pair.ComparePage)
		assert.InDelta(t, 1.0, pr.Pair.Score.Overall, 1e-9)
		assert.Empty(t, pr.Differences)
	}
	assert.False(t, result.HasUnassessedPages())
}

func TestComparer_Compare_InsertedPage(t *testing.T) {
	c := newTestComparer(t)

	base := docFromBodies("base", pageBodies[0], pageBodies[1])
	compare := docFromBodies("compare", pageBodies[0], pageBodies[2], pageBodies[1])
	compare.Metadata = base.Metadata

	result, err := c.Compare(context.Background(), base, compare)
	require.NoError(t, err)

	require.Len(t, result.PairResults, 3)
	assert.Equal(t, models.PairMatched, result.PairResults[0].Pair.Type)
	assert.Equal(t, models.PairAdded, result.PairResults[1].Pair.Type)
	assert.Equal(t, 2, result.PairResults[1].Pair.ComparePage)
	assert.Equal(t, models.PairMatched, result.PairResults[2].Pair.Type)
	assert.Equal(t, 2, result.PairResults[2].Pair.BasePage)
	assert.Equal(t, 3, result.PairResults[2].Pair.ComparePage)

	// The surviving pages are unchanged; only the inserted page differs.
	assert.Equal(t, 1, result.TotalDifferences)
	assert.Equal(t, 1, result.CountsBySeverity[models.SeverityCritical])
}

func TestComparer_Compare_DeletionMirrorsInsertion(t *testing.T) {
	c := newTestComparer(t)

	longer := docFromBodies("longer", pageBodies[0], pageBodies[1], pageBodies[2])
	shorter := docFromBodies("shorter", pageBodies[0], pageBodies[2])
	shorter.Metadata = longer.Metadata

	forward, err := c.Compare(context.Background(), longer, shorter)
	require.NoError(t, err)
	backward, err := c.Compare(context.Background(), shorter, longer)
	require.NoError(t, err)

	var deleted, added []int
	for _, pr := range forward.PairResults {
		if pr.Pair.Type == models.PairDeleted {
			deleted = append(deleted, pr.Pair.BasePage)
		}
	}
	for _, pr := range backward.PairResults {
		if pr.Pair.Type == models.PairAdded {
			added = append(added, pr.Pair.ComparePage)
		}
	}

	assert.Equal(t, deleted, added)
	assert.Equal(t, forward.TotalDifferences, backward.TotalDifferences)
}

func TestComparer_Compare_ModifiedTextReported(t *testing.T) {
	c := newTestComparer(t)

	baseText := "Hello world today friends\nLine two\nGoodbye cruel world again soon everyone"
	compareText := "Hello world today friends\nLine 2\nGoodbye cruel world again soon everyone"
	base := docFromBodies("base", baseText)
	compare := docFromBodies("compare", compareText)
	compare.Metadata = base.Metadata

	result, err := c.Compare(context.Background(), base, compare)
	require.NoError(t, err)

	require.Len(t, result.PairResults, 1)
	assert.Equal(t, models.PairMatched, result.PairResults[0].Pair.Type)

	var textDiffs []models.Difference
	for _, d := range result.PairResults[0].Differences {
		if d.Kind == models.DiffText {
			textDiffs = append(textDiffs, d)
		}
	}
	require.Len(t, textDiffs, 1)
	assert.Equal(t, models.ChangeModified, textDiffs[0].Change)
	require.NotNil(t, textDiffs[0].Text)
	assert.Equal(t, "Line two", textDiffs[0].Text.BaseText)
	assert.Equal(t, "Line 2", textDiffs[0].Text.CompareText)
	assert.NotEmpty(t, textDiffs[0].ID)
	assert.NotZero(t, textDiffs[0].Severity)
}

func TestComparer_Compare_DeterministicIDs(t *testing.T) {
	c := newTestComparer(t)

	base := docFromBodies("base", pageBodies[0], pageBodies[1])
	compare := docFromBodies("compare", pageBodies[0], pageBodies[2])

	first, err := c.Compare(context.Background(), base, compare)
	require.NoError(t, err)

	// A fresh comparer has a cold cache; ids must still match.
	second, err := newTestComparer(t).Compare(context.Background(), base, compare)
	require.NoError(t, err)

	require.Equal(t, first.TotalDifferences, second.TotalDifferences)
	require.Len(t, second.PairResults, len(first.PairResults))
	for i := range first.PairResults {
		a := first.PairResults[i].Differences
		b := second.PairResults[i].Differences
		require.Len(t, b, len(a))
		for j := range a {
			assert.Equal(t, a[j].ID, b[j].ID)
		}
	}
}

func TestComparer_Compare_MetadataDifferences(t *testing.T) {
	c := newTestComparer(t)

	base := docFromBodies("base", pageBodies[0])
	compare := docFromBodies("compare", pageBodies[0])
	base.Metadata = map[string]string{"Title": "Report", "Author": "Ann"}
	compare.Metadata = map[string]string{"Title": "Report v2", "Producer": "docgen"}

	result, err := c.Compare(context.Background(), base, compare)
	require.NoError(t, err)

	require.Len(t, result.MetadataDifferences, 3)
	assert.Equal(t, models.ChangeModified, result.MetadataDifferences["Title"].Change)
	assert.Equal(t, models.ChangeDeleted, result.MetadataDifferences["Author"].Change)
	assert.Equal(t, models.ChangeAdded, result.MetadataDifferences["Producer"].Change)
	assert.Equal(t, 3, result.CountsByKind[models.DiffMetadata])
}

func TestComparer_Compare_UnavailablePage(t *testing.T) {
	c := newTestComparer(t)

	base := docFromBodies("base", pageBodies[0], pageBodies[1])
	compare := docFromBodies("compare", pageBodies[0], pageBodies[1])
	compare.Metadata = base.Metadata
	compare.Pages[1].ContentUnavailable = true

	result, err := c.Compare(context.Background(), base, compare)
	require.NoError(t, err)

	var unavailable int
	for _, pr := range result.PairResults {
		if pr.Unavailable {
			unavailable++
			assert.Equal(t, "page content unavailable", pr.Error)
			assert.Empty(t, pr.Differences)
		}
	}
	assert.Equal(t, 1, unavailable)
	assert.True(t, result.HasUnassessedPages())
}

func TestComparer_Compare_NilDocument(t *testing.T) {
	c := newTestComparer(t)

	_, err := c.Compare(context.Background(), nil, docFromBodies("compare", pageBodies[0]))
	require.ErrorIs(t, err, errorwrapper.ErrInvalidInput)

	_, err = c.Compare(context.Background(), docFromBodies("base", pageBodies[0]), nil)
	require.ErrorIs(t, err, errorwrapper.ErrInvalidInput)
}

func TestComparer_Compare_Cancelled(t *testing.T) {
	c := newTestComparer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Compare(ctx, docFromBodies("base", pageBodies[0]), docFromBodies("compare", pageBodies[0]))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestNewComparer_InvalidConfig(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.CompareConfig.ContentWeight = 0.9
	cfg.CompareConfig.VisualWeight = 0.3

	_, err := NewComparer(cfg, zerolog.Nop())
	require.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
}
