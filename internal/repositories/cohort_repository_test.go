package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCohortTestRepository creates a cohort repository with a mock database
func setupCohortTestRepository(t *testing.T) (*cohortRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewCohortRepository(db, zap.NewNop()), mock, func() { db.Close() }
}

var cohortRowColumns = []string{"id", "name", "start_date", "enrollment_code", "capacity", "is_active", "created_at"}

func TestCohortRepository_List(t *testing.T) {
	repo, mock, cleanup := setupCohortTestRepository(t)
	defer cleanup()

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(append(cohortRowColumns, "count")).
		AddRow(2, "Autumn", start, "AUTUMN24", 30, true, start, 12).
		AddRow(1, "Pilot", start, nil, nil, false, start, 0)
	mock.ExpectQuery(`SELECT .* FROM cohorts c\s+LEFT JOIN enrollments e`).WillReturnRows(rows)

	cohorts, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, cohorts, 2)
	assert.Equal(t, "AUTUMN24", *cohorts[0].EnrollmentCode)
	assert.Equal(t, 30, *cohorts[0].Capacity)
	assert.Equal(t, 12, cohorts[0].ParticipantCount)
	assert.Nil(t, cohorts[1].EnrollmentCode)
	assert.Nil(t, cohorts[1].Capacity)
	assert.False(t, cohorts[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepository_GetActiveByCode(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.enrollment_code = \? AND c.is_active = TRUE`).
					WithArgs("COHORT2024").
					WillReturnRows(sqlmock.NewRows(cohortRowColumns).
						AddRow(1, "Cohort", time.Now(), "COHORT2024", 30, true, time.Now()))
			},
		},
		{
			name: "unknown or inactive code",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE c.enrollment_code = \?`).WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCohortTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			cohort, err := repo.GetActiveByCode(context.Background(), "COHORT2024")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, cohort)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, cohort.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCohortRepository_CreateWithWeeks(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	newWeeks := func() []models.Week {
		weeks := make([]models.Week, 2)
		for i := range weeks {
			deadline := start.AddDate(0, 0, 7*(i+1))
			weeks[i] = models.Week{WeekNumber: i + 1, Title: models.DefaultWeekTitles[i], Deadline: &deadline}
		}
		return weeks
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "cohort and weeks committed together",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO cohorts`).WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectExec(`INSERT INTO weeks`).
					WithArgs(9, 1, models.DefaultWeekTitles[0], "", "", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(31, 1))
				mock.ExpectExec(`INSERT INTO weeks`).
					WithArgs(9, 2, models.DefaultWeekTitles[1], "", "", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(32, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "duplicate code rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO cohorts`).WillReturnError(&mysql.MySQLError{Number: 1062})
				mock.ExpectRollback()
			},
			expectedError: models.ErrCodeExists,
		},
		{
			name: "week insert failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO cohorts`).WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectExec(`INSERT INTO weeks`).WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: errors.New("failed to create week 1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCohortTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			code := "AUTUMN24"
			cohort := &models.Cohort{Name: "Autumn", StartDate: start, EnrollmentCode: &code, IsActive: true}
			weeks := newWeeks()
			err := repo.CreateWithWeeks(context.Background(), cohort, weeks)

			switch {
			case tt.expectedError == nil:
				require.NoError(t, err)
				assert.Equal(t, 9, cohort.ID)
				assert.Equal(t, 31, weeks[0].ID)
				assert.Equal(t, 32, weeks[1].ID)
				assert.Equal(t, 9, weeks[1].CohortID)
			case errors.Is(tt.expectedError, models.ErrCodeExists):
				assert.ErrorIs(t, err, models.ErrCodeExists)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCohortRepository_Update(t *testing.T) {
	repo, mock, cleanup := setupCohortTestRepository(t)
	defer cleanup()

	capacity := 10
	mock.ExpectExec(`UPDATE cohorts`).
		WithArgs("Renamed", nil, 10, false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Cohort{ID: 3, Name: "Renamed", Capacity: &capacity})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepository_Counts(t *testing.T) {
	repo, mock, cleanup := setupCohortTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(is_active\), 0\) FROM cohorts`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active"}).AddRow(5, 2))

	total, active, err := repo.Counts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
