package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/models"
	"github.com/rs/zerolog"
)

// FileLoader loads a pre-extracted DocumentModel from a JSON file. It is the
// Extractor implementation the CLI ships with: binary-format decoding happens
// in external tooling, the engine is fed neutral page models.
type FileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file loader
func NewFileLoader(logger zerolog.Logger) *FileLoader {
	return &FileLoader{
		logger: logger.With().Str("component", "FileLoader").Logger(),
	}
}

// Extract reads and sanitizes the document at the given path. Pages that fail
// sanity checks are kept as contentless placeholders, never dropped, so page
// numbering stays intact for alignment.
func (fl *FileLoader) Extract(ctx context.Context, source string) (*models.DocumentModel, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errorwrapper.WrapError(errorwrapper.ErrNotFound, source)
		}
		return nil, errorwrapper.NewExtractionError(source, 0, err)
	}

	var doc models.DocumentModel
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errorwrapper.NewExtractionError(source, 0, err)
	}

	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	fl.sanitizePages(&doc)

	fl.logger.Debug().
		Str("document", doc.ID).
		Int("pages", len(doc.Pages)).
		Msg("Document loaded")

	return &doc, nil
}

// sanitizePages renumbers pages missing a number and flags structurally
// broken pages as unavailable instead of failing the load.
func (fl *FileLoader) sanitizePages(doc *models.DocumentModel) {
	for i := range doc.Pages {
		page := &doc.Pages[i]
		if page.Number <= 0 {
			page.Number = i + 1
		}
		if page.Width < 0 || page.Height < 0 {
			fl.logger.Warn().
				Str("document", doc.ID).
				Int("page", page.Number).
				Msg("Page has invalid dimensions, marking content unavailable")
			doc.Pages[i] = models.PageModel{Number: page.Number, ContentUnavailable: true}
		}
	}
}
