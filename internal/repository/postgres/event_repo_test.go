package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "title", "description", "date", "location", "category", "likes"}

func ptr[T any](v T) *T { return &v }

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	in := domain.EventInput{Title: "Festival Night", Description: "Music", Date: "2025-05-20", Location: "Lawn", Category: "Festival"}

	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		want      *domain.Event
		wantErr   bool
		wantValid bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, location, category, likes\)`).
					WithArgs("Festival Night", "Music", "2025-05-20", "Lawn", "Festival").
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(7, "Festival Night", "Music", "2025-05-20", "Lawn", "Festival", 0))
			},
			want: &domain.Event{ID: 7, Title: "Festival Night", Description: "Music", Date: "2025-05-20", Location: "Lawn", Category: "Festival"},
		},
		{
			name: "not null violation",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.Create(ctx, in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantValid, errors.Is(err, domain.ErrValidation))
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		id           int64
		mock         func(mock sqlmock.Sqlmock)
		want         *domain.Event
		wantNotFound bool
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date, location, category, likes FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(1, "Career Fair", "Employers", "2025-06-01", "Gym", "Career", 4))
			},
			want: &domain.Event{ID: 1, Title: "Career Fair", Description: "Employers", Date: "2025-06-01", Location: "Gym", Category: "Career", Likes: 4},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantNotFound {
				require.ErrorIs(t, err, domain.ErrNotFound)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Search(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		mock  func(mock sqlmock.Sqlmock)
		want  []*domain.Event
	}{
		{
			name:  "empty query lists all",
			query: "",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date, location, category, likes FROM events ORDER BY id`).
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow(1, "A", "a", "2025-01-01", "x", "Tech", 0).
						AddRow(2, "B", "b", "2025-01-02", "y", "Sports", 1))
			},
			want: []*domain.Event{
				{ID: 1, Title: "A", Description: "a", Date: "2025-01-01", Location: "x", Category: "Tech"},
				{ID: 2, Title: "B", Description: "b", Date: "2025-01-02", Location: "y", Category: "Sports", Likes: 1},
			},
		},
		{
			name:  "ilike across fields",
			query: "FEST",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE title ILIKE \$1 OR description ILIKE \$1 OR category ILIKE \$1`).
					WithArgs("%FEST%").
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(3, "Festival Night", "m", "2025-05-20", "Lawn", "Festival", 2))
			},
			want: []*domain.Event{
				{ID: 3, Title: "Festival Night", Description: "m", Date: "2025-05-20", Location: "Lawn", Category: "Festival", Likes: 2},
			},
		},
		{
			name:  "wildcards are escaped",
			query: "100%_",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`ILIKE`).
					WithArgs(`%100\%\_%`).
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			want: []*domain.Event{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		id           int64
		patch        domain.EventPatch
		mock         func(mock sqlmock.Sqlmock)
		want         *domain.Event
		wantNotFound bool
	}{
		{
			name:  "likes only",
			id:    2,
			patch: domain.EventPatch{Likes: ptr(5)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET likes = \$1\s+WHERE id = \$2`).
					WithArgs(5, int64(2)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(2, "B", "b", "2025-01-02", "y", "Sports", 5))
			},
			want: &domain.Event{ID: 2, Title: "B", Description: "b", Date: "2025-01-02", Location: "y", Category: "Sports", Likes: 5},
		},
		{
			name:  "title and location",
			id:    2,
			patch: domain.EventPatch{Title: ptr("New"), Location: ptr("Hall")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET title = \$1, location = \$2\s+WHERE id = \$3`).
					WithArgs("New", "Hall", int64(2)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(2, "New", "b", "2025-01-02", "Hall", "Sports", 5))
			},
			want: &domain.Event{ID: 2, Title: "New", Description: "b", Date: "2025-01-02", Location: "Hall", Category: "Sports", Likes: 5},
		},
		{
			name:  "empty patch reads current row",
			id:    2,
			patch: domain.EventPatch{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date, location, category, likes FROM events WHERE id = \$1`).
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(2, "B", "b", "2025-01-02", "y", "Sports", 5))
			},
			want: &domain.Event{ID: 2, Title: "B", Description: "b", Date: "2025-01-02", Location: "y", Category: "Sports", Likes: 5},
		},
		{
			name:  "not found",
			id:    99,
			patch: domain.EventPatch{Likes: ptr(1)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET likes`).
					WithArgs(1, int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.Update(ctx, tt.id, tt.patch)
			if tt.wantNotFound {
				require.ErrorIs(t, err, domain.ErrNotFound)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name: "rows affected error",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewErrorResult(sql.ErrConnDone))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.isNotFound, errors.Is(err, domain.ErrNotFound))
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Status(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		mock  func(mock sqlmock.Sqlmock)
		state string
	}{
		{
			name: "healthy",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			},
			state: domain.StoreHealthy,
		},
		{
			name: "empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			state: domain.StoreEmpty,
		},
		{
			name: "unreachable",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
					WillReturnError(sql.ErrConnDone)
			},
			state: domain.StoreDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			st := NewEventRepository(db).Status(ctx)
			assert.Equal(t, tt.state, st.State)
			assert.Equal(t, "postgres", st.Driver)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
