package datamask

import (
	"errors"
	"testing"
)

func TestDecodeActionHydrate(t *testing.T) {
	raw := []byte(`{
		"type": "HYDRATE_DASHBOARD",
		"data": {
			"dashboardInfo": {
				"metadata": {
					"native_filter_configuration": [{"id": "NATIVE_FILTER-1", "name": "Created filter", "type": "NATIVE_FILTER"}],
					"chart_configuration": {}
				}
			},
			"dataMask": {
				"NATIVE_FILTER-1": {"filterState": {"value": ["foo"], "label": "foo"}, "extraFormData": {}}
			}
		}
	}`)

	action, err := DecodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hydrateAction, ok := action.(HydrateAction)
	if !ok {
		t.Fatalf("expected HydrateAction, got %T", action)
	}

	state := Reduce(nil, hydrateAction)
	entry := state["NATIVE_FILTER-1"]
	if entry.Name == nil || *entry.Name != "Created filter" {
		t.Fatalf("expected decoded hydrate to name the filter, got %+v", entry)
	}
}

func TestDecodeActionUpdate(t *testing.T) {
	raw := []byte(`{"type":"UPDATE_DATA_MASK","filterId":"NATIVE_FILTER-4","dataMask":{"filterState":{"value":null,"excludeFilterValues":true}}}`)

	action, err := DecodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update, ok := action.(UpdateAction)
	if !ok {
		t.Fatalf("expected UpdateAction, got %T", action)
	}
	if update.FilterID != "NATIVE_FILTER-4" {
		t.Fatalf("unexpected filter id %q", update.FilterID)
	}
	if value, present := update.DataMask.FilterState.Get("value"); !present || value != nil {
		t.Fatalf("expected explicit null value, got %v (present=%v)", value, present)
	}
	if update.DataMask.ExtraFormData != nil {
		t.Fatalf("expected extraFormData to be unset")
	}
}

func TestDecodeActionErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		unknown bool
	}{
		{name: "malformed json", raw: `{`},
		{name: "unknown type", raw: `{"type":"SET_FOCUS"}`, unknown: true},
		{name: "missing type", raw: `{}`, unknown: true},
		{name: "update without filter id", raw: `{"type":"UPDATE_DATA_MASK","dataMask":{}}`},
		{name: "remove without filter id", raw: `{"type":"REMOVE_DATA_MASK"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAction([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := errors.Is(err, ErrUnknownAction); got != tc.unknown {
				t.Fatalf("errors.Is(err, ErrUnknownAction) = %v, want %v (err: %v)", got, tc.unknown, err)
			}
		})
	}
}
