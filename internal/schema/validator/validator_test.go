package validator

import (
	"strings"
	"testing"

	"github.com/rpattn/datamask/internal/domain"
)

func TestValidateFilterConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		filters []domain.FilterDefinition
		wantErr string
	}{
		{
			name: "valid configuration",
			filters: []domain.FilterDefinition{
				{ID: "NATIVE_FILTER-1", Type: domain.NativeFilterTypeNativeFilter},
				{ID: "NATIVE_FILTER-2", CascadeParentIDs: []string{"NATIVE_FILTER-1"}},
				{ID: "DIVIDER-1", Type: domain.NativeFilterTypeDivider},
			},
		},
		{
			name:    "empty configuration",
			filters: nil,
		},
		{
			name:    "missing id",
			filters: []domain.FilterDefinition{{Name: "No id"}},
			wantErr: "has no id",
		},
		{
			name: "duplicate id",
			filters: []domain.FilterDefinition{
				{ID: "NATIVE_FILTER-1"},
				{ID: "NATIVE_FILTER-1"},
			},
			wantErr: "more than once",
		},
		{
			name: "padded id",
			filters: []domain.FilterDefinition{
				{ID: " NATIVE_FILTER-1 "},
				{ID: "NATIVE_FILTER-1"},
			},
			wantErr: "surrounding whitespace",
		},
		{
			name: "padded parent reference",
			filters: []domain.FilterDefinition{
				{ID: "NATIVE_FILTER-1"},
				{ID: "NATIVE_FILTER-2", CascadeParentIDs: []string{" NATIVE_FILTER-1"}},
			},
			wantErr: "unknown filter",
		},
		{
			name:    "unknown type",
			filters: []domain.FilterDefinition{{ID: "NATIVE_FILTER-1", Type: "CHART"}},
			wantErr: "unsupported type",
		},
		{
			name:    "self cascade",
			filters: []domain.FilterDefinition{{ID: "NATIVE_FILTER-1", CascadeParentIDs: []string{"NATIVE_FILTER-1"}}},
			wantErr: "itself",
		},
		{
			name:    "unknown parent",
			filters: []domain.FilterDefinition{{ID: "NATIVE_FILTER-1", CascadeParentIDs: []string{"NATIVE_FILTER-9"}}},
			wantErr: "unknown filter",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFilterConfiguration(tc.filters)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
