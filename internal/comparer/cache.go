package comparer

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"github.com/docdiff/docdiff/internal/config"
	"github.com/docdiff/docdiff/internal/models"
)

// fingerprintKey addresses a cached page fingerprint.
type fingerprintKey struct {
	DocumentID string
	PageNumber int
}

// pairKey addresses a cached raw difference list for one page pair of a
// document pair.
type pairKey struct {
	BaseDocumentID    string
	CompareDocumentID string
	BasePage          int
	ComparePage       int
}

// Cache holds bounded LRU caches for fingerprints and per-pair diff results,
// so repeated comparisons of the same documents skip recomputation. Entries
// are immutable once inserted; eviction is the only mutation.
type Cache struct {
	fingerprints *lru.Cache[fingerprintKey, models.Fingerprint]
	pairDiffs    *lru.Cache[pairKey, []models.Difference]
}

// NewCache creates the caches, or returns nil when caching is disabled. All
// Cache methods are safe on a nil receiver.
func NewCache(cfg config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	fingerprints, err := lru.New[fingerprintKey, models.Fingerprint](cfg.MaxEntries)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create fingerprint cache")
	}
	pairDiffs, err := lru.New[pairKey, []models.Difference](cfg.MaxEntries)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create pair diff cache")
	}

	return &Cache{fingerprints: fingerprints, pairDiffs: pairDiffs}, nil
}

// GetFingerprint looks up a cached fingerprint. Pages of anonymous documents
// (empty id) are never cached.
func (c *Cache) GetFingerprint(documentID string, pageNumber int) (models.Fingerprint, bool) {
	if c == nil || documentID == "" {
		return models.Fingerprint{}, false
	}
	return c.fingerprints.Get(fingerprintKey{DocumentID: documentID, PageNumber: pageNumber})
}

// PutFingerprint stores a fingerprint for reuse across runs.
func (c *Cache) PutFingerprint(documentID string, pageNumber int, fp models.Fingerprint) {
	if c == nil || documentID == "" {
		return
	}
	c.fingerprints.Add(fingerprintKey{DocumentID: documentID, PageNumber: pageNumber}, fp)
}

// GetPairDiffs looks up the cached raw differences of a page pair.
func (c *Cache) GetPairDiffs(baseID, compareID string, basePage, comparePage int) ([]models.Difference, bool) {
	if c == nil || baseID == "" || compareID == "" {
		return nil, false
	}
	return c.pairDiffs.Get(pairKey{
		BaseDocumentID:    baseID,
		CompareDocumentID: compareID,
		BasePage:          basePage,
		ComparePage:       comparePage,
	})
}

// PutPairDiffs stores the raw differences of a page pair.
func (c *Cache) PutPairDiffs(baseID, compareID string, basePage, comparePage int, diffs []models.Difference) {
	if c == nil || baseID == "" || compareID == "" {
		return
	}
	c.pairDiffs.Add(pairKey{
		BaseDocumentID:    baseID,
		CompareDocumentID: compareID,
		BasePage:          basePage,
		ComparePage:       comparePage,
	}, diffs)
}
