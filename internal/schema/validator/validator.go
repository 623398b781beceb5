package validator

import (
	"fmt"
	"strings"

	"github.com/rpattn/datamask/internal/domain"
)

var knownFilterTypes = map[domain.NativeFilterType]struct{}{
	"":                                  {},
	domain.NativeFilterTypeNativeFilter: {},
	domain.NativeFilterTypeDivider:      {},
}

// ValidateFilterConfiguration checks a native filter configuration before it reaches the reducer.
// Ids must be present, unique and unpadded. Types must be known and cascade
// parents must refer to configured filters.
func ValidateFilterConfiguration(filters []domain.FilterDefinition) error {
	seen := make(map[string]struct{}, len(filters))
	for i, filter := range filters {
		id := filter.ID
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("filter at position %d has no id", i)
		}
		if strings.TrimSpace(id) != id {
			return fmt.Errorf("filter id %q has surrounding whitespace", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("filter id %s is configured more than once", id)
		}
		seen[id] = struct{}{}

		if _, ok := knownFilterTypes[filter.Type]; !ok {
			return fmt.Errorf("filter %s has unsupported type %s", id, filter.Type)
		}
	}

	for _, filter := range filters {
		for _, parentID := range filter.CascadeParentIDs {
			if parentID == filter.ID {
				return fmt.Errorf("filter %s cannot cascade from itself", filter.ID)
			}
			if _, ok := seen[parentID]; !ok {
				return fmt.Errorf("filter %s cascades from unknown filter %s", filter.ID, parentID)
			}
		}
	}

	return nil
}
