package fingerprint

import (
	"context"
	"testing"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(number int, text string) models.PageModel {
	return models.PageModel{
		Number: number,
		Width:  612,
		Height: 792,
		Text:   text,
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())
	page := testPage(1, "The quick brown fox jumps over the lazy dog")

	fp1 := builder.Build(page)
	fp2 := builder.Build(page)

	assert.Equal(t, fp1.Shingles, fp2.Shingles)
	assert.Equal(t, fp1.Visual, fp2.Visual)
	assert.Equal(t, fp1.PageNumber, fp2.PageNumber)
}

func TestBuilder_Build_EmptyPage(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	fp := builder.Build(testPage(1, ""))

	assert.False(t, fp.HasText)
	assert.Empty(t, fp.Shingles)
	assert.Equal(t, 0, fp.ImageCount)
}

func TestBuilder_Build_ShortTextStillShingles(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	// Two words cannot form a 3-gram but must still produce a shingle so a
	// short page never shares the empty set with a blank one.
	fp := builder.Build(testPage(1, "hello world"))

	assert.True(t, fp.HasText)
	assert.Len(t, fp.Shingles, 1)
}

func TestBuilder_Build_CaseAndWhitespaceNormalized(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	fp1 := builder.Build(testPage(1, "Hello   World Example Text"))
	fp2 := builder.Build(testPage(1, "hello world\nexample text"))

	assert.Equal(t, fp1.Shingles, fp2.Shingles)
}

func TestBuilder_Build_VisualSignatureReflectsImages(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	plain := testPage(1, "some text here for the page")
	withImage := plain
	withImage.Images = []models.ImageRef{{Hash: "deadbeef", X: 10, Y: 10, Width: 100, Height: 50}}

	fpPlain := builder.Build(plain)
	fpImage := builder.Build(withImage)

	assert.NotEqual(t, fpPlain.Visual, fpImage.Visual)
	assert.Equal(t, 1, fpImage.ImageCount)
}

func TestBuilder_BuildAll_PreservesOrder(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	pages := []models.PageModel{
		testPage(1, "first page content here"),
		testPage(2, "second page content here"),
		testPage(3, "third page content here"),
	}

	fps, err := builder.BuildAll(context.Background(), pages)

	require.NoError(t, err)
	require.Len(t, fps, 3)
	for i, fp := range fps {
		assert.Equal(t, i+1, fp.PageNumber)
	}
}

func TestBuilder_BuildAll_Cancelled(t *testing.T) {
	builder := NewBuilder(config.NewDefaultCompareConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.BuildAll(ctx, []models.PageModel{testPage(1, "content")})

	assert.ErrorIs(t, err, context.Canceled)
}
