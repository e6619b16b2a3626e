package differ

import (
	"fmt"
	"sort"

	"github.com/docdiff/docdiff/internal/models"
)

// MetadataDiffer performs a pure key-wise comparison of two flat string maps.
// Keys with equal values on both sides emit no difference.
type MetadataDiffer struct{}

// NewMetadataDiffer creates a new metadata differ
func NewMetadataDiffer() *MetadataDiffer {
	return &MetadataDiffer{}
}

// Diff compares the two metadata maps. Output is ordered by key for
// deterministic results.
func (md *MetadataDiffer) Diff(base, compare map[string]string) []models.Difference {
	keys := make(map[string]struct{}, len(base)+len(compare))
	for k := range base {
		keys[k] = struct{}{}
	}
	for k := range compare {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var differences []models.Difference
	for _, key := range sorted {
		baseValue, inBase := base[key]
		compareValue, inCompare := compare[key]

		switch {
		case inBase && !inCompare:
			differences = append(differences, metadataDifference(key, baseValue, "", models.MetadataOnlyInBase, models.ChangeDeleted))
		case !inBase && inCompare:
			differences = append(differences, metadataDifference(key, "", compareValue, models.MetadataOnlyInCompare, models.ChangeAdded))
		case baseValue != compareValue:
			differences = append(differences, metadataDifference(key, baseValue, compareValue, models.MetadataValueDifferent, models.ChangeModified))
		}
	}

	return differences
}

func metadataDifference(key, baseValue, compareValue string, status models.MetadataStatus, change models.ChangeType) models.Difference {
	return models.Difference{
		Kind:        models.DiffMetadata,
		Change:      change,
		Description: fmt.Sprintf("Metadata '%s' %s", key, status),
		Metadata: &models.MetadataDetail{
			Key:          key,
			BaseValue:    baseValue,
			CompareValue: compareValue,
			Status:       status,
		},
	}
}
