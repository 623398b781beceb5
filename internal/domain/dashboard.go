package domain

import (
	"encoding/json"
	"fmt"
)

// Dashboard is the saved dashboard record hydration reads from
type Dashboard struct {
	ID       int64             `json:"id"`
	Title    string            `json:"dashboard_title"`
	Metadata DashboardMetadata `json:"metadata"`
}

// DashboardMetadata is the subset of a dashboard's json_metadata used by hydration
type DashboardMetadata struct {
	NativeFilterConfiguration []FilterDefinition `json:"native_filter_configuration"`
	ChartConfiguration        map[string]any     `json:"chart_configuration"`
}

// DashboardInfo wraps the metadata the same way the hydrate event does
type DashboardInfo struct {
	Metadata DashboardMetadata `json:"metadata"`
}

// HydratePayload is the data carried by a hydrate event.
type HydratePayload struct {
	DashboardInfo DashboardInfo            `json:"dashboardInfo"`
	DataMask      map[string]DataMaskPatch `json:"dataMask"`
}

// NewHydratePayload builds a payload from dashboard metadata and initial runtime values
func NewHydratePayload(metadata DashboardMetadata, dataMask map[string]DataMaskPatch) HydratePayload {
	return HydratePayload{
		DashboardInfo: DashboardInfo{Metadata: metadata},
		DataMask:      dataMask,
	}
}

// FilterByID returns the native filter with the given id
func (m DashboardMetadata) FilterByID(id string) (FilterDefinition, bool) {
	for _, f := range m.NativeFilterConfiguration {
		if f.ID == id {
			return f, true
		}
	}
	return FilterDefinition{}, false
}

// DashboardMetadataFromJSONB decodes a json_metadata column
func DashboardMetadataFromJSONB(raw []byte) (DashboardMetadata, error) {
	var metadata DashboardMetadata
	if len(raw) == 0 {
		return metadata, nil
	}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return DashboardMetadata{}, fmt.Errorf("decode dashboard metadata: %w", err)
	}
	return metadata, nil
}
