package domain

import (
	"encoding/json"
	"reflect"
)

// FilterStateValueKey is the filterState key holding the selected value
const FilterStateValueKey = "value"

// DataMaskEntry is the runtime state of one filter instance.
// Name is derived: it is set only while filterState carries a value.
type DataMaskEntry struct {
	ID            string  `json:"id"`
	FilterState   Bag     `json:"filterState,omitempty"`
	ExtraFormData Bag     `json:"extraFormData,omitempty"`
	OwnState      Bag     `json:"ownState,omitempty"`
	Name          *string `json:"name,omitempty"`
}

// MarshalJSON writes every non-nil bag, empty ones included, and omits nil bags and a nil name
func (e DataMaskEntry) MarshalJSON() ([]byte, error) {
	type wireEntry struct {
		ID            string  `json:"id"`
		FilterState   *Bag    `json:"filterState,omitempty"`
		ExtraFormData *Bag    `json:"extraFormData,omitempty"`
		OwnState      *Bag    `json:"ownState,omitempty"`
		Name          *string `json:"name,omitempty"`
	}
	return json.Marshal(wireEntry{
		ID:            e.ID,
		FilterState:   bagRef(e.FilterState),
		ExtraFormData: bagRef(e.ExtraFormData),
		OwnState:      bagRef(e.OwnState),
		Name:          e.Name,
	})
}

func bagRef(b Bag) *Bag {
	if b == nil {
		return nil
	}
	return &b
}

// DataMaskPatch is a partial DataMaskEntry. A nil bag means the field was not supplied.
type DataMaskPatch struct {
	FilterState   Bag `json:"filterState,omitempty"`
	ExtraFormData Bag `json:"extraFormData,omitempty"`
	OwnState      Bag `json:"ownState,omitempty"`
}

// DataMaskState maps filter id to entry. A missing key is the only "no entry" signal.
type DataMaskState map[string]DataMaskEntry

// EmptyDataMaskEntry returns the entry used when no runtime state exists for a filter
func EmptyDataMaskEntry(id string) DataMaskEntry {
	return DataMaskEntry{
		ID:            id,
		FilterState:   Bag{},
		ExtraFormData: Bag{},
	}
}

// NewDataMaskEntry creates an entry from a patch, copying every supplied bag
func NewDataMaskEntry(id string, patch DataMaskPatch) DataMaskEntry {
	return DataMaskEntry{
		ID:            id,
		FilterState:   patch.FilterState.Clone(),
		ExtraFormData: patch.ExtraFormData.Clone(),
		OwnState:      patch.OwnState.Clone(),
	}
}

// Value returns the filterState value, or nil when none is set
func (e DataMaskEntry) Value() any {
	value, _ := e.FilterState.Get(FilterStateValueKey)
	return value
}

// HasValue reports whether the entry currently holds a non-empty value
func (e DataMaskEntry) HasValue() bool {
	return IsValuePresent(e.Value())
}

// HasName reports whether a display name is attached
func (e DataMaskEntry) HasName() bool {
	return e.Name != nil
}

// WithName returns a new entry carrying the given display name
func (e DataMaskEntry) WithName(name string) DataMaskEntry {
	out := e
	out.Name = &name
	return out
}

// WithoutName returns a new entry with the display name removed
func (e DataMaskEntry) WithoutName() DataMaskEntry {
	out := e
	out.Name = nil
	return out
}

// WithPatch returns a new entry with the patch applied.
// filterState is merged key by key; extraFormData and ownState are replaced when supplied.
func (e DataMaskEntry) WithPatch(patch DataMaskPatch) DataMaskEntry {
	out := e
	if patch.FilterState != nil {
		out.FilterState = e.FilterState.Merge(patch.FilterState)
	}
	if patch.ExtraFormData != nil {
		out.ExtraFormData = patch.ExtraFormData.Clone()
	}
	if patch.OwnState != nil {
		out.OwnState = patch.OwnState.Clone()
	}
	return out
}

// Clone returns a copy of the state mapping. Entries are shared and must not be modified in place.
func (s DataMaskState) Clone() DataMaskState {
	out := make(DataMaskState, len(s))
	for id, entry := range s {
		out[id] = entry
	}
	return out
}

// IsValuePresent reports whether a filterState value counts as set.
// nil and zero-length slices or arrays are absent; every other value is present.
func IsValuePresent(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer:
		return !rv.IsNil()
	}
	return true
}
