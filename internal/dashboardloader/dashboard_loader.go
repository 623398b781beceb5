package dashboardloader

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rpattn/datamask/internal/domain"
	"github.com/rpattn/datamask/internal/repository"

	"github.com/graph-gophers/dataloader"
)

// DashboardLoader batches dashboard reads issued while serving one request
type DashboardLoader struct {
	Loader *dataloader.Loader
}

func NewDashboardLoader(repo repository.DashboardRepository) *DashboardLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := make([]int64, len(keys))
		for i, k := range keys {
			id, err := strconv.ParseInt(k.String(), 10, 64)
			if err != nil {
				results := make([]*dataloader.Result, len(keys))
				for j := range results {
					results[j] = &dataloader.Result{Error: fmt.Errorf("invalid dashboard id %q: %w", k.String(), err)}
				}
				return results
			}
			ids[i] = id
		}

		dashboards, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		byID := make(map[int64]domain.Dashboard, len(dashboards))
		for _, d := range dashboards {
			byID[d.ID] = d
		}

		// Results must line up with keys
		results := make([]*dataloader.Result, len(keys))
		for i, id := range ids {
			if d, ok := byID[id]; ok {
				results[i] = &dataloader.Result{Data: d}
			} else {
				results[i] = &dataloader.Result{Error: fmt.Errorf("%w: %d", repository.ErrDashboardNotFound, id)}
			}
		}

		return results
	}

	loader := dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(2*time.Millisecond))

	return &DashboardLoader{Loader: loader}
}

// Key converts a dashboard id into a loader key
func Key(id int64) dataloader.Key {
	return dataloader.StringKey(strconv.FormatInt(id, 10))
}

// Load fetches one dashboard through the batching loader
func (l *DashboardLoader) Load(ctx context.Context, id int64) (domain.Dashboard, error) {
	data, err := l.Loader.Load(ctx, Key(id))()
	if err != nil {
		return domain.Dashboard{}, err
	}
	dashboard, ok := data.(domain.Dashboard)
	if !ok {
		return domain.Dashboard{}, fmt.Errorf("unexpected loader result %T", data)
	}
	return dashboard, nil
}

// LoadMany fetches several dashboards in one batch, preserving order
func (l *DashboardLoader) LoadMany(ctx context.Context, ids []int64) ([]domain.Dashboard, error) {
	keys := make(dataloader.Keys, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}

	data, errs := l.Loader.LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	dashboards := make([]domain.Dashboard, 0, len(data))
	for _, item := range data {
		dashboard, ok := item.(domain.Dashboard)
		if !ok {
			return nil, fmt.Errorf("unexpected loader result %T", item)
		}
		dashboards = append(dashboards, dashboard)
	}
	return dashboards, nil
}
