package middleware

import (
	"context"
	"net/http"

	"github.com/rpattn/datamask/internal/dashboardloader"
	"github.com/rpattn/datamask/internal/repository"
)

type ctxKey string

const dashboardLoaderKey ctxKey = "dashboardLoader"

// DataLoaderMiddleware attaches a per-request dashboard loader to the request context
func DataLoaderMiddleware(repo repository.DashboardRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if repo == nil {
				next.ServeHTTP(w, r)
				return
			}
			loader := dashboardloader.NewDashboardLoader(repo)
			ctx := context.WithValue(r.Context(), dashboardLoaderKey, loader)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DashboardLoaderFromContext retrieves the dashboard loader from context
func DashboardLoaderFromContext(ctx context.Context) *dashboardloader.DashboardLoader {
	if l, ok := ctx.Value(dashboardLoaderKey).(*dashboardloader.DashboardLoader); ok {
		return l
	}
	return nil
}
