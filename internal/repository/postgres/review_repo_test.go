package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventpay/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_Create(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	comment := "great evening"

	tests := []struct {
		name    string
		comment *string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:    "with comment",
			comment: &comment,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reviews \(event_id, reviewer_id, host_id, rating, comment, created_at\)`).
					WithArgs("ev-1", "user-1", "host-1", 5, comment, at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rev-1"))
			},
		},
		{
			name: "without comment",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reviews`).
					WithArgs("ev-1", "user-1", "host-1", 5, nil, at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rev-1"))
			},
		},
		{
			name: "second review for the same event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reviews`).WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyReviewed,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO reviews`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			rv := &domain.Review{
				EventID:    "ev-1",
				ReviewerID: "user-1",
				HostID:     "host-1",
				Rating:     5,
				Comment:    tt.comment,
				CreatedAt:  at,
			}
			err = NewReviewRepository(db).Create(ctx, rv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "rev-1", rv.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReviewRepository_List(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	columns := []string{"id", "event_id", "reviewer_id", "host_id", "rating", "comment", "created_at"}

	t.Run("by reviewer", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM reviews\s+WHERE reviewer_id = \$1\s+ORDER BY created_at DESC`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("rev-1", "ev-1", "user-1", "host-1", 4, "nice", at).
				AddRow("rev-2", "ev-2", "user-1", "host-2", 2, nil, at))

		got, err := NewReviewRepository(db).ListByReviewerID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, domain.Rating(4), got[0].Rating)
		require.Equal(t, "nice", *got[0].Comment)
		require.Nil(t, got[1].Comment)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by host with no reviews", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM reviews\s+WHERE host_id = \$1`).
			WithArgs("host-1").
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := NewReviewRepository(db).ListByHostID(ctx, "host-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
