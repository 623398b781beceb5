package repository

import (
	"context"
	"errors"

	"github.com/rpattn/datamask/internal/domain"
)

// ErrDashboardNotFound is returned when no dashboard row matches the requested id
var ErrDashboardNotFound = errors.New("dashboard not found")

// DashboardRepository reads saved dashboards, the source of hydration input
type DashboardRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Dashboard, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Dashboard, error)
}
