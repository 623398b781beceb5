package datamask

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rpattn/datamask/internal/domain"
)

// Action type names as dispatched by the dashboard
const (
	TypeHydrateDashboard   = "HYDRATE_DASHBOARD"
	TypeUpdateDataMask     = "UPDATE_DATA_MASK"
	TypeRemoveDataMask     = "REMOVE_DATA_MASK"
	TypeClearDataMaskState = "CLEAR_DATA_MASK_STATE"
)

// ErrUnknownAction is returned when an envelope names an action the reducer does not handle
var ErrUnknownAction = errors.New("unknown data mask action")

// Action is an event consumed by Reduce
type Action interface {
	ActionType() string
}

// HydrateAction loads dashboard filter configuration and initial runtime values
type HydrateAction struct {
	Data domain.HydratePayload `json:"data"`
}

// UpdateAction merges a partial entry into the entry for FilterID
type UpdateAction struct {
	FilterID string               `json:"filterId"`
	DataMask domain.DataMaskPatch `json:"dataMask"`
}

// RemoveAction drops the entry for FilterID
type RemoveAction struct {
	FilterID string `json:"filterId"`
}

// ClearAction resets the state to an empty mapping
type ClearAction struct{}

func (HydrateAction) ActionType() string { return TypeHydrateDashboard }
func (UpdateAction) ActionType() string  { return TypeUpdateDataMask }
func (RemoveAction) ActionType() string  { return TypeRemoveDataMask }
func (ClearAction) ActionType() string   { return TypeClearDataMaskState }

type envelope struct {
	Type string `json:"type"`
}

// DecodeAction parses a JSON action envelope ({"type": ..., ...}) into a typed action
func DecodeAction(raw []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}

	switch strings.TrimSpace(env.Type) {
	case TypeHydrateDashboard:
		var action HydrateAction
		if err := json.Unmarshal(raw, &action); err != nil {
			return nil, fmt.Errorf("decode %s: %w", TypeHydrateDashboard, err)
		}
		return action, nil
	case TypeUpdateDataMask:
		var action UpdateAction
		if err := json.Unmarshal(raw, &action); err != nil {
			return nil, fmt.Errorf("decode %s: %w", TypeUpdateDataMask, err)
		}
		if strings.TrimSpace(action.FilterID) == "" {
			return nil, fmt.Errorf("decode %s: filterId is required", TypeUpdateDataMask)
		}
		return action, nil
	case TypeRemoveDataMask:
		var action RemoveAction
		if err := json.Unmarshal(raw, &action); err != nil {
			return nil, fmt.Errorf("decode %s: %w", TypeRemoveDataMask, err)
		}
		if strings.TrimSpace(action.FilterID) == "" {
			return nil, fmt.Errorf("decode %s: filterId is required", TypeRemoveDataMask)
		}
		return action, nil
	case TypeClearDataMaskState:
		return ClearAction{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}
