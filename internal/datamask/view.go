package datamask

import "github.com/rpattn/datamask/internal/domain"

// DisplayNames derives filter id -> display name from the current values.
// Only native filters holding a value appear in the result.
func DisplayNames(filters []domain.FilterDefinition, state domain.DataMaskState) map[string]string {
	names := make(map[string]string)
	for _, filter := range filters {
		if !filter.IsNativeFilter() {
			continue
		}
		entry, ok := state[filter.ID]
		if !ok || !entry.HasValue() {
			continue
		}
		names[filter.ID] = filter.Name
	}
	return names
}

// StoredNames returns the names currently attached to entries in state
func StoredNames(state domain.DataMaskState) map[string]string {
	names := make(map[string]string)
	for id, entry := range state {
		if entry.Name != nil {
			names[id] = *entry.Name
		}
	}
	return names
}
