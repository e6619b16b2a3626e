package differ

import (
	"strings"

	"github.com/docdiff/docdiff/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiffer runs a line-level diff over the normalized text of a matched
// page pair and emits one Difference per contiguous non-matching run. It
// observes no global state and is safe to run concurrently across pairs.
type TextDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewTextDiffer creates a new text differ
func NewTextDiffer() *TextDiffer {
	return &TextDiffer{dmp: diffmatchpatch.New()}
}

// lineRun is one contiguous diff hunk expressed in whole lines.
type lineRun struct {
	op    diffmatchpatch.Operation
	lines []string
}

// Diff compares the text of the two pages of a matched pair. Equal lines
// produce no Difference.
func (td *TextDiffer) Diff(basePage, comparePage models.PageModel) []models.Difference {
	baseText := normalizeText(basePage.Text)
	compareText := normalizeText(comparePage.Text)
	if baseText == compareText {
		return nil
	}

	runs := td.lineRuns(baseText, compareText)

	var differences []models.Difference
	baseLine, compareLine := 1, 1
	baseChar, compareChar := 0, 0

	for i := 0; i < len(runs); i++ {
		run := runs[i]
		switch run.op {
		case diffmatchpatch.DiffEqual:
			baseLine += len(run.lines)
			compareLine += len(run.lines)
			baseChar += runLen(run.lines)
			compareChar += runLen(run.lines)

		case diffmatchpatch.DiffDelete:
			// A delete immediately followed by an insert is a modification.
			if i+1 < len(runs) && runs[i+1].op == diffmatchpatch.DiffInsert {
				ins := runs[i+1]
				differences = append(differences, td.buildDifference(
					models.ChangeModified, basePage, comparePage,
					run.lines, ins.lines, baseLine, baseChar,
					contextBefore(runs, i), contextAfter(runs, i+1),
				))
				baseLine += len(run.lines)
				baseChar += runLen(run.lines)
				compareLine += len(ins.lines)
				compareChar += runLen(ins.lines)
				i++
				continue
			}
			differences = append(differences, td.buildDifference(
				models.ChangeDeleted, basePage, comparePage,
				run.lines, nil, baseLine, baseChar,
				contextBefore(runs, i), contextAfter(runs, i),
			))
			baseLine += len(run.lines)
			baseChar += runLen(run.lines)

		case diffmatchpatch.DiffInsert:
			differences = append(differences, td.buildDifference(
				models.ChangeAdded, basePage, comparePage,
				nil, run.lines, compareLine, compareChar,
				contextBefore(runs, i), contextAfter(runs, i),
			))
			compareLine += len(run.lines)
			compareChar += runLen(run.lines)
		}
	}

	return differences
}

// lineRuns produces the line-level diff hunks via the diffmatchpatch
// lines-to-chars embedding.
func (td *TextDiffer) lineRuns(baseText, compareText string) []lineRun {
	c1, c2, lineArray := td.dmp.DiffLinesToChars(baseText, compareText)
	diffs := td.dmp.DiffMain(c1, c2, false)
	diffs = td.dmp.DiffCharsToLines(diffs, lineArray)

	runs := make([]lineRun, 0, len(diffs))
	for _, d := range diffs {
		lines := splitLines(d.Text)
		if len(lines) == 0 {
			continue
		}
		runs = append(runs, lineRun{op: d.Type, lines: lines})
	}
	return runs
}

func (td *TextDiffer) buildDifference(
	change models.ChangeType,
	basePage, comparePage models.PageModel,
	baseLines, compareLines []string,
	lineNumber, charStart int,
	ctxBefore, ctxAfter string,
) models.Difference {
	baseText := strings.Join(baseLines, "\n")
	compareText := strings.Join(compareLines, "\n")

	length := len(baseText)
	if change == models.ChangeAdded {
		length = len(compareText)
	}

	diff := models.Difference{
		Kind:        models.DiffText,
		Change:      change,
		BasePage:    basePage.Number,
		ComparePage: comparePage.Number,
		Description: describeTextChange(change, baseText, compareText),
		Text: &models.TextDetail{
			BaseText:      baseText,
			CompareText:   compareText,
			LineNumber:    lineNumber,
			CharStart:     charStart,
			CharEnd:       charStart + length,
			ContextBefore: ctxBefore,
			ContextAfter:  ctxAfter,
		},
	}

	if bounds, ok := findRunBounds(basePage, baseLines); ok {
		diff.Bounds = bounds
	} else if bounds, ok := findRunBounds(comparePage, compareLines); ok {
		diff.Bounds = bounds
	}

	return diff
}

func describeTextChange(change models.ChangeType, baseText, compareText string) string {
	switch change {
	case models.ChangeAdded:
		return "Text added: " + truncate(compareText, 80)
	case models.ChangeDeleted:
		return "Text deleted: " + truncate(baseText, 80)
	default:
		return "Text modified: " + truncate(baseText, 40) + " -> " + truncate(compareText, 40)
	}
}

// findRunBounds locates a text run whose normalized text equals the first
// changed line, so the difference can carry element coordinates when the
// extractor provided positioned runs.
func findRunBounds(page models.PageModel, lines []string) (models.Bounds, bool) {
	if len(lines) == 0 {
		return models.Bounds{}, false
	}
	want := normalizeRunText(lines[0])
	if want == "" {
		return models.Bounds{}, false
	}
	for _, run := range page.TextRuns {
		if normalizeRunText(run.Text) == want {
			return models.Bounds{X: run.X, Y: run.Y, Width: run.Width, Height: run.Height}, true
		}
	}
	return models.Bounds{}, false
}

// contextBefore returns the last line of the preceding equal hunk, if any.
func contextBefore(runs []lineRun, i int) string {
	if i-1 >= 0 && runs[i-1].op == diffmatchpatch.DiffEqual {
		lines := runs[i-1].lines
		return lines[len(lines)-1]
	}
	return ""
}

// contextAfter returns the first line of the following equal hunk, if any.
func contextAfter(runs []lineRun, i int) string {
	if i+1 < len(runs) && runs[i+1].op == diffmatchpatch.DiffEqual {
		return runs[i+1].lines[0]
	}
	return ""
}

// normalizeText collapses trailing whitespace per line so reflow-neutral
// whitespace changes do not register as differences.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}

func splitLines(chunk string) []string {
	chunk = strings.TrimSuffix(chunk, "\n")
	if chunk == "" {
		return nil
	}
	return strings.Split(chunk, "\n")
}

func runLen(lines []string) int {
	total := 0
	for _, l := range lines {
		total += len(l) + 1
	}
	return total
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
