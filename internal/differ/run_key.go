package differ

import (
	"math"
	"strings"

	"github.com/docdiff/docdiff/internal/models"
)

// RunKey is the typed composite key used to match text runs across pages:
// normalized text plus coordinates rounded to half-point precision. A struct
// key gives exact equality without the string-formatting precision drift a
// "text_x_y" key would suffer.
type RunKey struct {
	Text string
	X    int
	Y    int
}

// NewRunKey builds the matching key for a text run.
func NewRunKey(run models.TextRun) RunKey {
	return RunKey{
		Text: normalizeRunText(run.Text),
		X:    roundHalfPoint(run.X),
		Y:    roundHalfPoint(run.Y),
	}
}

// roundHalfPoint quantizes a coordinate to 0.5pt steps.
func roundHalfPoint(v float64) int {
	return int(math.Round(v * 2))
}

func normalizeRunText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// matchRuns pairs base and compare text runs by RunKey. Runs without a
// counterpart are ignored here; pure content changes are the text differ's
// concern, not the font/style differs'.
func matchRuns(base, compare []models.TextRun) [][2]*models.TextRun {
	compareByKey := make(map[RunKey][]int)
	for i := range compare {
		key := NewRunKey(compare[i])
		compareByKey[key] = append(compareByKey[key], i)
	}

	var matched [][2]*models.TextRun
	for i := range base {
		key := NewRunKey(base[i])
		idxs := compareByKey[key]
		if len(idxs) == 0 {
			continue
		}
		j := idxs[0]
		compareByKey[key] = idxs[1:]
		matched = append(matched, [2]*models.TextRun{&base[i], &compare[j]})
	}
	return matched
}
