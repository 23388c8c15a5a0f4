package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"confmigrate/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2009, 5, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				CategoryID: 2,
				Title:      "Computing Workshop",
				Timezone:   "Europe/Zurich",
				StartAt:    start,
				EndAt:      end,
				CreatorID:  1,
				Protection: domain.ProtectionInheriting,
				LegacyID:   "91234",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(category_id, title, description`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
			},
			wantID: 5,
		},
		{
			name:  "db error",
			event: &domain.Event{CategoryID: 1, Title: "x", StartAt: start, EndAt: end, CreatorID: 1},
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
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_CreateReferenceType(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO reference_types \(name\)`).
		WithArgs("CDS").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	repo := NewEventRepository(db)
	rt := &domain.ReferenceType{Name: "CDS"}
	require.NoError(t, repo.CreateReferenceType(ctx, rt))
	require.Equal(t, 3, rt.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CreateContribution(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO contributions \(event_id, title`).
		WithArgs(5, "Opening talk", "", nil, 1800, 0, "c1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	repo := NewEventRepository(db)
	c := &domain.Contribution{
		EventID:  5,
		Title:    "Opening talk",
		Duration: 30 * time.Minute,
		LegacyID: "c1",
	}
	require.NoError(t, repo.CreateContribution(ctx, c))
	require.Equal(t, 9, c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
