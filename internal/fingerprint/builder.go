package fingerprint

import (
	"context"
	"math"
	"runtime"
	"strings"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"
)

// Builder converts PageModels into comparable Fingerprints. Build is a
// deterministic total function: a page with no content yields an empty but
// valid fingerprint.
type Builder struct {
	shingleSize int
}

// NewBuilder creates a fingerprint builder from comparison configuration
func NewBuilder(cfg config.CompareConfig) *Builder {
	size := cfg.ShingleSize
	if size <= 0 {
		size = 3
	}
	return &Builder{shingleSize: size}
}

// Build derives the fingerprint of a single page.
func (b *Builder) Build(page models.PageModel) models.Fingerprint {
	tokens := tokenize(page.Text)

	fp := models.Fingerprint{
		PageNumber:   page.Number,
		Shingles:     b.shingle(tokens),
		HasText:      len(tokens) > 0,
		TextRunCount: len(page.TextRuns),
		ImageCount:   len(page.Images),
		FontCount:    len(page.Fonts),
		Unavailable:  page.ContentUnavailable,
	}
	fp.Visual = b.visualSignature(page, tokens)

	return fp
}

// BuildAll fingerprints every page in parallel, preserving input order.
// Page fingerprinting is read-only over its input, so the only coordination
// needed is the positional result slot.
func (b *Builder) BuildAll(ctx context.Context, pages []models.PageModel) ([]models.Fingerprint, error) {
	fingerprints := make([]models.Fingerprint, len(pages))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range pages {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fingerprints[i] = b.Build(pages[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fingerprints, nil
}

// tokenize normalizes text (case fold, whitespace collapse) into words.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// shingle hashes overlapping word n-grams into a set. Text shorter than one
// full n-gram still contributes a single shingle so that short non-empty
// pages never share the empty set.
func (b *Builder) shingle(tokens []string) map[uint64]struct{} {
	shingles := make(map[uint64]struct{})
	if len(tokens) == 0 {
		return shingles
	}

	if len(tokens) < b.shingleSize {
		shingles[hashShingle(tokens)] = struct{}{}
		return shingles
	}

	for i := 0; i+b.shingleSize <= len(tokens); i++ {
		shingles[hashShingle(tokens[i:i+b.shingleSize])] = struct{}{}
	}
	return shingles
}

func hashShingle(words []string) uint64 {
	return murmur3.Sum64([]byte(strings.Join(words, " ")))
}

// visualSignature builds a small numeric vector approximating how the page
// looks: aspect ratio, element densities and image hash folds. It is a cheap
// proxy for rendered similarity; no bitmap is ever produced.
func (b *Builder) visualSignature(page models.PageModel, tokens []string) [models.VisualSignatureLen]float64 {
	var sig [models.VisualSignatureLen]float64

	pageArea := page.Width * page.Height

	if page.Height > 0 {
		sig[0] = page.Width / page.Height
	}
	sig[1] = clamp01(float64(len(tokens)) / 500.0)
	sig[2] = clamp01(float64(len(page.TextRuns)) / 50.0)
	sig[3] = clamp01(float64(len(page.Images)) / 10.0)

	var imageArea float64
	for _, img := range page.Images {
		imageArea += img.Width * img.Height
	}
	if pageArea > 0 {
		sig[4] = clamp01(imageArea / pageArea)
	}

	sig[5] = clamp01(float64(len(page.Fonts)) / 10.0)

	// Fold image hashes into two signature slots so pages with different
	// image content diverge even when their layout statistics agree.
	if len(page.Images) > 0 {
		var low, high float64
		for _, img := range page.Images {
			h := murmur3.Sum64([]byte(img.Hash))
			low += float64(h&0xFFFFFFFF) / float64(math.MaxUint32)
			high += float64(h>>32) / float64(math.MaxUint32)
		}
		sig[6] = low / float64(len(page.Images))
		sig[7] = high / float64(len(page.Images))
	}

	return sig
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
