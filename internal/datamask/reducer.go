// Package datamask merges dashboard native filter definitions with the runtime
// values users select for them.
//
// Every function here is pure: inputs are never modified, unchanged entries are
// shared between the prior and the returned state, and no call can fail.
package datamask

import "github.com/rpattn/datamask/internal/domain"

// Reduce returns the state that results from applying action to prior.
// Unknown actions, removing a missing entry and clearing an empty state return prior itself.
func Reduce(prior domain.DataMaskState, action Action) domain.DataMaskState {
	switch a := deref(action).(type) {
	case HydrateAction:
		return ApplyHydrate(prior, a.Data)
	case UpdateAction:
		return ApplyUpdate(prior, a.FilterID, a.DataMask)
	case RemoveAction:
		return ApplyRemove(prior, a.FilterID)
	case ClearAction:
		if prior != nil && len(prior) == 0 {
			return prior
		}
		return domain.DataMaskState{}
	}
	if prior == nil {
		return domain.DataMaskState{}
	}
	return prior
}

// deref turns pointer actions into values; nil pointers become nil
func deref(action Action) Action {
	switch a := action.(type) {
	case *HydrateAction:
		if a != nil {
			return *a
		}
	case *UpdateAction:
		if a != nil {
			return *a
		}
	case *RemoveAction:
		if a != nil {
			return *a
		}
	case *ClearAction:
		if a != nil {
			return *a
		}
	default:
		return action
	}
	return nil
}

// ApplyHydrate replaces the filter-backed state with one entry per configured native filter.
// An entry is named after its filter only when it holds a value.
func ApplyHydrate(prior domain.DataMaskState, payload domain.HydratePayload) domain.DataMaskState {
	filters := payload.DashboardInfo.Metadata.NativeFilterConfiguration
	next := make(domain.DataMaskState, len(filters))

	for _, filter := range filters {
		entry := domain.EmptyDataMaskEntry(filter.ID)
		if patch, ok := payload.DataMask[filter.ID]; ok {
			entry = domain.NewDataMaskEntry(filter.ID, patch)
		}

		if entry.HasValue() {
			entry = entry.WithName(filter.Name)
		} else {
			entry = entry.WithoutName()
		}
		next[filter.ID] = entry
	}

	return next
}

// ApplyUpdate merges patch into the entry for filterID.
// The name is cleared when the merged value is empty and otherwise left untouched.
func ApplyUpdate(prior domain.DataMaskState, filterID string, patch domain.DataMaskPatch) domain.DataMaskState {
	var merged domain.DataMaskEntry
	if existing, ok := prior[filterID]; ok {
		merged = existing.WithPatch(patch)
	} else {
		merged = domain.NewDataMaskEntry(filterID, patch)
	}
	merged.ID = filterID

	if !merged.HasValue() {
		merged = merged.WithoutName()
	}

	next := prior.Clone()
	next[filterID] = merged
	return next
}

// ApplyRemove drops the entry for filterID
func ApplyRemove(prior domain.DataMaskState, filterID string) domain.DataMaskState {
	if _, ok := prior[filterID]; !ok {
		if prior == nil {
			return domain.DataMaskState{}
		}
		return prior
	}
	next := prior.Clone()
	delete(next, filterID)
	return next
}
