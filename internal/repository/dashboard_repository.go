package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/datamask/internal/db"
	"github.com/rpattn/datamask/internal/domain"
)

const dashboardColumns = "id, dashboard_title, json_metadata"

// dashboardRepository implements DashboardRepository on top of pgx
type dashboardRepository struct {
	db db.DBTX
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(exec db.DBTX) DashboardRepository {
	return &dashboardRepository{db: exec}
}

// GetByID retrieves one dashboard
func (r *dashboardRepository) GetByID(ctx context.Context, id int64) (domain.Dashboard, error) {
	row := r.db.QueryRow(ctx, "SELECT "+dashboardColumns+" FROM dashboards WHERE id = $1", id)
	dashboard, err := scanDashboard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dashboard{}, fmt.Errorf("%w: %d", ErrDashboardNotFound, id)
		}
		return domain.Dashboard{}, fmt.Errorf("failed to get dashboard: %w", err)
	}
	return dashboard, nil
}

// GetByIDs retrieves every dashboard whose id is listed; missing ids are skipped
func (r *dashboardRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Dashboard, error) {
	if len(ids) == 0 {
		return []domain.Dashboard{}, nil
	}

	rows, err := r.db.Query(ctx, "SELECT "+dashboardColumns+" FROM dashboards WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboards by IDs: %w", err)
	}
	defer rows.Close()

	dashboards := make([]domain.Dashboard, 0, len(ids))
	for rows.Next() {
		dashboard, err := scanDashboard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dashboard: %w", err)
		}
		dashboards = append(dashboards, dashboard)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dashboards: %w", err)
	}

	return dashboards, nil
}

func scanDashboard(row pgx.Row) (domain.Dashboard, error) {
	var (
		id    int64
		title string
		raw   []byte
	)
	if err := row.Scan(&id, &title, &raw); err != nil {
		return domain.Dashboard{}, err
	}
	return buildDashboard(id, title, raw)
}

func buildDashboard(id int64, title string, raw []byte) (domain.Dashboard, error) {
	metadata, err := domain.DashboardMetadataFromJSONB(raw)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("dashboard %d: %w", id, err)
	}
	return domain.Dashboard{
		ID:       id,
		Title:    title,
		Metadata: metadata,
	}, nil
}
