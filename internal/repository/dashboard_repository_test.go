package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	id    int64
	title string
	raw   []byte
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	*dest[1].(*string) = r.title
	*dest[2].(*[]byte) = r.raw
	return nil
}

type stubDB struct {
	row      stubRow
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.lastSQL, s.lastArgs = sql, args
	return pgconn.CommandTag{}, nil
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.lastSQL, s.lastArgs = sql, args
	return nil, s.queryErr
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL, s.lastArgs = sql, args
	return s.row
}

func TestDashboardRepositoryGetByIDDecodesMetadata(t *testing.T) {
	exec := &stubDB{row: stubRow{
		id:    7,
		title: "Sales",
		raw:   []byte(`{"native_filter_configuration":[{"id":"NATIVE_FILTER-1","name":"Region"}],"chart_configuration":{}}`),
	}}
	repo := NewDashboardRepository(exec)

	dashboard, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.ID != 7 || dashboard.Title != "Sales" {
		t.Fatalf("unexpected dashboard: %+v", dashboard)
	}
	if len(dashboard.Metadata.NativeFilterConfiguration) != 1 {
		t.Fatalf("expected one native filter, got %d", len(dashboard.Metadata.NativeFilterConfiguration))
	}
	if len(exec.lastArgs) != 1 || exec.lastArgs[0] != int64(7) {
		t.Fatalf("unexpected query args: %v", exec.lastArgs)
	}
}

func TestDashboardRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewDashboardRepository(&stubDB{row: stubRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrDashboardNotFound) {
		t.Fatalf("expected ErrDashboardNotFound, got %v", err)
	}
}

func TestDashboardRepositoryRejectsMalformedMetadata(t *testing.T) {
	repo := NewDashboardRepository(&stubDB{row: stubRow{id: 1, raw: []byte("{")}})

	if _, err := repo.GetByID(context.Background(), 1); err == nil {
		t.Fatalf("expected malformed metadata to fail")
	}
}

func TestDashboardRepositoryGetByIDsEmpty(t *testing.T) {
	exec := &stubDB{}
	repo := NewDashboardRepository(exec)

	dashboards, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dashboards) != 0 || exec.lastSQL != "" {
		t.Fatalf("expected no query for empty id list")
	}
}

func TestDashboardRepositoryGetByIDsWrapsQueryError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewDashboardRepository(&stubDB{queryErr: boom})

	if _, err := repo.GetByIDs(context.Background(), []int64{1, 2}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}
