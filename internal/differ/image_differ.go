package differ

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/bits"

	"github.com/docdiff/docdiff/internal/models"
)

// Matching tolerances for images without stable ids, in page points.
const (
	imagePositionTolerance  = 10.0
	imageDimensionTolerance = 10.0
)

// ImageDiffer compares the image placements of a matched page pair. Images
// are matched by identity key when they carry a stable id, otherwise by
// nearest position and size within a small tolerance.
type ImageDiffer struct {
	similarityThreshold float64
}

// NewImageDiffer creates an image differ with the given hash-similarity
// cutoff: matched images at or above it produce no difference.
func NewImageDiffer(similarityThreshold float64) *ImageDiffer {
	return &ImageDiffer{similarityThreshold: similarityThreshold}
}

// Diff emits added/deleted differences for unmatched images and a modified
// difference for matched images whose hash similarity falls below the
// threshold.
func (id *ImageDiffer) Diff(basePage, comparePage models.PageModel) []models.Difference {
	matches, unmatchedBase, unmatchedCompare := id.matchImages(basePage.Images, comparePage.Images)

	var differences []models.Difference

	for _, m := range matches {
		similarity := HashSimilarity(m[0].Hash, m[1].Hash)
		if similarity >= id.similarityThreshold {
			continue
		}
		differences = append(differences, models.Difference{
			Kind:        models.DiffImage,
			Change:      models.ChangeModified,
			BasePage:    basePage.Number,
			ComparePage: comparePage.Number,
			Description: fmt.Sprintf("Image modified (similarity %.2f)", similarity),
			Bounds:      imageBounds(m[0]),
			Image: &models.ImageDetail{
				BaseHash:      m[0].Hash,
				CompareHash:   m[1].Hash,
				BaseBounds:    boundsPtr(imageBounds(m[0])),
				CompareBounds: boundsPtr(imageBounds(m[1])),
				Similarity:    similarity,
				Format:        m[1].Format,
			},
		})
	}

	for _, img := range unmatchedBase {
		differences = append(differences, models.Difference{
			Kind:        models.DiffImage,
			Change:      models.ChangeDeleted,
			BasePage:    basePage.Number,
			ComparePage: comparePage.Number,
			Description: "Image deleted",
			Bounds:      imageBounds(img),
			Image: &models.ImageDetail{
				BaseHash:   img.Hash,
				BaseBounds: boundsPtr(imageBounds(img)),
				Format:     img.Format,
			},
		})
	}

	for _, img := range unmatchedCompare {
		differences = append(differences, models.Difference{
			Kind:        models.DiffImage,
			Change:      models.ChangeAdded,
			BasePage:    basePage.Number,
			ComparePage: comparePage.Number,
			Description: "Image added",
			Bounds:      imageBounds(img),
			Image: &models.ImageDetail{
				CompareHash:   img.Hash,
				CompareBounds: boundsPtr(imageBounds(img)),
				Format:        img.Format,
			},
		})
	}

	return differences
}

// matchImages pairs base and compare images: first by stable id, then by
// nearest position and size inside the tolerance.
func (id *ImageDiffer) matchImages(base, compare []models.ImageRef) (matches [][2]models.ImageRef, unmatchedBase, unmatchedCompare []models.ImageRef) {
	compareUsed := make([]bool, len(compare))

	// Identity pass.
	baseRemaining := make([]models.ImageRef, 0, len(base))
	for _, b := range base {
		found := false
		if b.ID != "" {
			for j, c := range compare {
				if !compareUsed[j] && c.ID == b.ID {
					matches = append(matches, [2]models.ImageRef{b, c})
					compareUsed[j] = true
					found = true
					break
				}
			}
		}
		if !found {
			baseRemaining = append(baseRemaining, b)
		}
	}

	// Geometry pass: nearest unused compare image within tolerance.
	for _, b := range baseRemaining {
		bestIdx := -1
		bestDist := math.MaxFloat64
		for j, c := range compare {
			if compareUsed[j] {
				continue
			}
			if !withinTolerance(b, c) {
				continue
			}
			d := positionDistance(b, c)
			if d < bestDist {
				bestDist = d
				bestIdx = j
			}
		}
		if bestIdx >= 0 {
			matches = append(matches, [2]models.ImageRef{b, compare[bestIdx]})
			compareUsed[bestIdx] = true
		} else {
			unmatchedBase = append(unmatchedBase, b)
		}
	}

	for j, c := range compare {
		if !compareUsed[j] {
			unmatchedCompare = append(unmatchedCompare, c)
		}
	}

	return matches, unmatchedBase, unmatchedCompare
}

func withinTolerance(a, b models.ImageRef) bool {
	return math.Abs(a.X-b.X) <= imagePositionTolerance &&
		math.Abs(a.Y-b.Y) <= imagePositionTolerance &&
		math.Abs(a.Width-b.Width) <= imageDimensionTolerance &&
		math.Abs(a.Height-b.Height) <= imageDimensionTolerance
}

func positionDistance(a, b models.ImageRef) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HashSimilarity converts the hamming distance between two hex-encoded image
// hashes into a [0,1] similarity. Hashes that cannot be compared bitwise
// (different lengths, non-hex) fall back to exact string equality.
func HashSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ba, errA := hex.DecodeString(a)
	bb, errB := hex.DecodeString(b)
	if errA != nil || errB != nil || len(ba) != len(bb) || len(ba) == 0 {
		return 0
	}

	distance := 0
	for i := range ba {
		distance += bits.OnesCount8(ba[i] ^ bb[i])
	}
	totalBits := len(ba) * 8

	return 1 - float64(distance)/float64(totalBits)
}

func imageBounds(img models.ImageRef) models.Bounds {
	return models.Bounds{X: img.X, Y: img.Y, Width: img.Width, Height: img.Height}
}

func boundsPtr(b models.Bounds) *models.Bounds {
	return &b
}
