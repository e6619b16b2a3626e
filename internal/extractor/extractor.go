package extractor

import (
	"context"

	"github.com/docdiff/docdiff/internal/models"
)

// Extractor is the collaborator contract for turning a source document into
// an ordered page sequence. Implementations live outside the core; the engine
// only consumes the neutral DocumentModel.
//
// A per-page extraction failure must be recovered as an empty PageModel with
// ContentUnavailable set rather than failing the document, so a single bad
// page never aborts a comparison.
type Extractor interface {
	Extract(ctx context.Context, source string) (*models.DocumentModel, error)
}
