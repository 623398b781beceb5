package domain

// NativeFilterType discriminates native filters from other filter-bar items
type NativeFilterType string

const (
	NativeFilterTypeNativeFilter NativeFilterType = "NATIVE_FILTER"
	NativeFilterTypeDivider      NativeFilterType = "DIVIDER"
)

// NativeFilterPrefix is the id prefix the dashboard assigns to native filters
const NativeFilterPrefix = "NATIVE_FILTER-"

// FilterDefinition represents one native filter configured on a dashboard.
type FilterDefinition struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	FilterType       string           `json:"filterType,omitempty"`
	Targets          []FilterTarget   `json:"targets,omitempty"`
	DefaultDataMask  DataMaskPatch    `json:"defaultDataMask"`
	CascadeParentIDs []string         `json:"cascadeParentIds,omitempty"`
	Scope            FilterScope      `json:"scope"`
	ControlValues    Bag              `json:"controlValues,omitempty"`
	Type             NativeFilterType `json:"type"`
	Description      string           `json:"description"`
}

// FilterTarget references the dataset column a filter applies to.
type FilterTarget struct {
	DatasetID int64         `json:"datasetId"`
	Column    *TargetColumn `json:"column,omitempty"`
}

// TargetColumn names the targeted column.
type TargetColumn struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// FilterScope describes which dashboard components a filter applies to.
type FilterScope struct {
	RootPath []string `json:"rootPath"`
	Excluded []int64  `json:"excluded"`
}

// IsNativeFilter reports whether the definition is a filter rather than a divider.
// Definitions with no type are treated as native filters.
func (f FilterDefinition) IsNativeFilter() bool {
	return f.Type == "" || f.Type == NativeFilterTypeNativeFilter
}
