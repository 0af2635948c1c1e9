package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupSubmissionTestRepository creates a submission repository with a mock database
func setupSubmissionTestRepository(t *testing.T) (*submissionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewSubmissionRepository(db, zap.NewNop()), mock, func() { db.Close() }
}

var (
	submissionRowColumns = []string{"id", "enrollment_id", "week_id", "text_answer", "status", "submitted_at", "created_at", "updated_at"}
	fileRowColumns       = []string{"id", "submission_id", "file_name", "file_url", "file_type", "size", "created_at"}
)

func TestSubmissionRepository_GetByEnrollmentAndWeek(t *testing.T) {
	now := time.Date(2024, 9, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedFiles int
		expectedError error
	}{
		{
			name: "with files",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE s.enrollment_id = \? AND s.week_id = \?`).
					WithArgs(10, 21).
					WillReturnRows(sqlmock.NewRows(submissionRowColumns).
						AddRow(3, 10, 21, "answer", "SUBMITTED", now, now, now))
				mock.ExpectQuery(`FROM submission_files`).
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows(fileRowColumns).
						AddRow(1, 3, "plan.pdf", "https://cdn/uploads/a-plan.pdf", "application/pdf", 1024, now).
						AddRow(2, 3, "map.png", "https://cdn/uploads/b-map.png", "image/png", 2048, now))
			},
			expectedFiles: 2,
		},
		{
			name: "draft without files",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE s.enrollment_id = \?`).
					WillReturnRows(sqlmock.NewRows(submissionRowColumns).
						AddRow(3, 10, 21, "draft", "IN_PROGRESS", nil, now, now))
				mock.ExpectQuery(`FROM submission_files`).WillReturnRows(sqlmock.NewRows(fileRowColumns))
			},
		},
		{
			name: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE s.enrollment_id = \?`).WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubmissionTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			sub, err := repo.GetByEnrollmentAndWeek(context.Background(), 10, 21)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, sub)
			} else {
				require.NoError(t, err)
				assert.Len(t, sub.Files, tt.expectedFiles)
				assert.NotNil(t, sub.Files)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionRepository_Save(t *testing.T) {
	submittedAt := time.Date(2024, 9, 5, 9, 0, 0, 0, time.UTC)
	lockQuery := `SELECT status FROM submissions WHERE enrollment_id = \? AND week_id = \? FOR UPDATE`

	tests := []struct {
		name          string
		draft         bool
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectFailure bool
	}{
		{
			name: "new submission with files",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(10, 21).WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO submissions .* ON DUPLICATE KEY UPDATE\s+id = LAST_INSERT_ID\(id\)`).
					WithArgs(10, 21, "answer", models.StatusSubmitted, submittedAt).
					WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectExec(`INSERT INTO submission_files`).
					WithArgs(3, "plan.pdf", "https://cdn/uploads/a-plan.pdf", "application/pdf", int64(1024)).
					WillReturnResult(sqlmock.NewResult(7, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "draft handed in",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(10, 21).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))
				mock.ExpectExec(`INSERT INTO submissions`).WillReturnResult(sqlmock.NewResult(3, 2))
				mock.ExpectExec(`INSERT INTO submission_files`).WillReturnResult(sqlmock.NewResult(7, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "draft does not overwrite work handed in meanwhile",
			draft: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(10, 21).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("SUBMITTED"))
				mock.ExpectRollback()
			},
			expectedError: models.ErrAlreadySubmitted,
		},
		{
			name: "lock failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnError(errors.New("lock wait timeout"))
				mock.ExpectRollback()
			},
			expectFailure: true,
		},
		{
			name: "file insert failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO submissions`).WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectExec(`INSERT INTO submission_files`).WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			expectFailure: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubmissionTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			sub := &models.Submission{EnrollmentID: 10, WeekID: 21, TextAnswer: "answer", Status: models.StatusSubmitted, SubmittedAt: &submittedAt}
			if tt.draft {
				sub.Status = models.StatusInProgress
				sub.SubmittedAt = nil
			}
			files := []models.SubmissionFile{{FileName: "plan.pdf", FileURL: "https://cdn/uploads/a-plan.pdf", FileType: "application/pdf", Size: 1024}}
			err := repo.Save(context.Background(), sub, files)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, sub.ID)
			case tt.expectFailure:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, 3, sub.ID)
				assert.Equal(t, 7, files[0].ID)
				assert.Equal(t, 3, files[0].SubmissionID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionRepository_ListByEnrollment(t *testing.T) {
	repo, mock, cleanup := setupSubmissionTestRepository(t)
	defer cleanup()

	now := time.Date(2024, 9, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM submissions s\s+JOIN weeks w ON w.id = s.week_id\s+WHERE s.enrollment_id = \?\s+ORDER BY w.week_number`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(append(submissionRowColumns, "week_number", "title")).
			AddRow(3, 10, 21, "one", "COMPLETED", now, now, now, 1, "Week 1").
			AddRow(4, 10, 22, "two", "LATE", now, now, now, 2, "Week 2"))
	mock.ExpectQuery(`FROM submission_files`).
		WithArgs(3, 4).
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(1, 4, "late.docx", "u", "application/msword", 10, now))

	items, err := repo.ListByEnrollment(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Week 1", items[0].WeekTitle)
	assert.Equal(t, 1, items[0].WeekNumber)
	assert.Empty(t, items[0].Files)
	require.Len(t, items[1].Files, 1)
	assert.Equal(t, "late.docx", items[1].Files[0].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_UpdateStatus(t *testing.T) {
	lockQuery := `SELECT status FROM submissions WHERE id = \? FOR UPDATE`

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "completes a submitted week",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("SUBMITTED"))
				mock.ExpectExec(`UPDATE submissions SET status = \? WHERE id = \?`).
					WithArgs(models.StatusCompleted, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "already completed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("COMPLETED"))
				mock.ExpectCommit()
			},
		},
		{
			name: "draft cannot be completed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))
				mock.ExpectRollback()
			},
			expectedError: models.ErrInvalidTransition,
		},
		{
			name: "unknown submission",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(3).WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubmissionTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			err := repo.UpdateStatus(context.Background(), 3, models.StatusCompleted)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionRepository_ListRecentSubmitted(t *testing.T) {
	repo, mock, cleanup := setupSubmissionTestRepository(t)
	defer cleanup()

	now := time.Date(2024, 9, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE s.submitted_at IS NOT NULL\s+ORDER BY s.submitted_at DESC`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "cohort_id", "name", "week_number", "status", "submitted_at"}).
			AddRow(3, 10, 1, "", 2, "SUBMITTED", now))

	items, err := repo.ListRecentSubmitted(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.RecentSubmission{SubmissionID: 3, EnrollmentID: 10, CohortID: 1, WeekNumber: 2, Status: models.StatusSubmitted, SubmittedAt: now}, items[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
