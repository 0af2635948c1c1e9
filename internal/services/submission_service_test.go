package services

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSubmissionFixture() (*studentFixture, *mockFileStorage) {
	return newStudentFixture(), newMockFileStorage()
}

func newTestSubmissionService(f *studentFixture, files *mockFileStorage) *submissionService {
	svc := NewSubmissionService(f.enrollments, f.weeks, f.submissions, files, 0, zap.NewNop())
	svc.now = func() time.Time { return studentNow }
	return svc
}

func pdf(name, content string) UploadFile {
	return UploadFile{Name: name, ContentType: "application/pdf", Size: int64(len(content)), Content: strings.NewReader(content)}
}

func TestSubmissionService_Submit(t *testing.T) {
	tests := []struct {
		name           string
		userID         int
		req            models.SubmitRequest
		files          []UploadFile
		existing       *models.Submission
		setup          func(f *studentFixture, files *mockFileStorage)
		expectedError  error
		errorContains  string
		expectedStatus models.SubmissionStatus
		expectedFiles  int
	}{
		{
			name:           "on time submission with a file",
			userID:         8,
			req:            models.SubmitRequest{EnrollmentID: 7, WeekID: 104, TextAnswer: "answer"},
			files:          []UploadFile{pdf("plan v1.pdf", "%PDF")},
			expectedStatus: models.StatusSubmitted,
			expectedFiles:  1,
		},
		{
			name:           "late submission",
			userID:         8,
			req:            models.SubmitRequest{EnrollmentID: 7, WeekID: 101, TextAnswer: "answer"},
			expectedStatus: models.StatusLate,
		},
		{
			name:           "draft",
			userID:         8,
			req:            models.SubmitRequest{EnrollmentID: 7, WeekID: 104, Draft: true},
			files:          []UploadFile{{Name: "empty.pdf", ContentType: "application/pdf"}},
			expectedStatus: models.StatusInProgress,
		},
		{
			name:           "resubmission keeps earlier files",
			userID:         8,
			req:            models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			files:          []UploadFile{pdf("second.pdf", "2")},
			existing:       &models.Submission{ID: 55, Status: models.StatusSubmitted, Files: []models.SubmissionFile{{ID: 1, FileName: "first.pdf"}}},
			expectedStatus: models.StatusSubmitted,
			expectedFiles:  2,
		},
		{
			name:           "completed submission is reopened",
			userID:         8,
			req:            models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			existing:       &models.Submission{ID: 55, Status: models.StatusCompleted},
			expectedStatus: models.StatusSubmitted,
		},
		{
			name:          "draft after hand in",
			userID:        8,
			req:           models.SubmitRequest{EnrollmentID: 7, WeekID: 104, Draft: true},
			existing:      &models.Submission{ID: 55, Status: models.StatusLate},
			expectedError: models.ErrAlreadySubmitted,
		},
		{
			name:          "enrollment of another user",
			userID:        9,
			req:           models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			expectedError: models.ErrNotFound,
		},
		{
			name:   "week of another cohort",
			userID: 8,
			req:    models.SubmitRequest{EnrollmentID: 7, WeekID: 900},
			setup: func(f *studentFixture, files *mockFileStorage) {
				f.weeks.weeks = append(f.weeks.weeks, models.Week{ID: 900, CohortID: 4, WeekNumber: 1})
			},
			expectedError: models.ErrNotFound,
		},
		{
			name:          "file type not allowed",
			userID:        8,
			req:           models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			files:         []UploadFile{pdf("ok.pdf", "1"), {Name: "run.exe", ContentType: "application/x-msdownload", Size: 1, Content: strings.NewReader("x")}},
			expectedError: models.ErrFileTypeNotAllowed,
		},
		{
			name:   "storage failure",
			userID: 8,
			req:    models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			files:  []UploadFile{pdf("a.pdf", "1"), pdf("b.pdf", "2")},
			setup: func(f *studentFixture, files *mockFileStorage) {
				files.putErr = errors.New("bucket unavailable")
				files.putErrAt = 2
			},
			errorContains: "bucket unavailable",
		},
		{
			name:   "draft loses to a hand in from another tab",
			userID: 8,
			req:    models.SubmitRequest{EnrollmentID: 7, WeekID: 104, Draft: true},
			files:  []UploadFile{pdf("notes.pdf", "1")},
			setup: func(f *studentFixture, files *mockFileStorage) {
				f.submissions.saveErr = models.ErrAlreadySubmitted
			},
			expectedError: models.ErrAlreadySubmitted,
		},
		{
			name:   "save failure",
			userID: 8,
			req:    models.SubmitRequest{EnrollmentID: 7, WeekID: 104},
			files:  []UploadFile{pdf("a.pdf", "1")},
			setup: func(f *studentFixture, files *mockFileStorage) {
				f.submissions.saveErr = errors.New("deadlock")
			},
			errorContains: "deadlock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, files := newSubmissionFixture()
			f.submissions.submission = tt.existing
			if tt.setup != nil {
				tt.setup(f, files)
			}
			svc := newTestSubmissionService(f, files)

			sub, err := svc.Submit(context.Background(), tt.userID, &tt.req, tt.files)

			if tt.expectedError != nil || tt.errorContains != "" {
				require.Error(t, err)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, sub)
				// Nothing stored may survive a failed submission
				assert.Empty(t, files.objects)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, sub.Status)
			assert.Len(t, sub.Files, tt.expectedFiles)
			if tt.expectedStatus == models.StatusInProgress {
				assert.Nil(t, sub.SubmittedAt)
			} else {
				require.NotNil(t, sub.SubmittedAt)
				assert.Equal(t, studentNow, *sub.SubmittedAt)
			}
			for _, file := range f.submissions.savedFiles {
				assert.True(t, strings.HasPrefix(file.FileURL, "https://files.example.com/"+storage.KeyPrefix))
				assert.NotContains(t, file.FileURL, " ")
			}
		})
	}
}

func TestSubmissionService_Presign(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f, files := newSubmissionFixture()
		svc := newTestSubmissionService(f, files)

		resp, err := svc.Presign(context.Background(), &models.PresignRequest{FileName: "report.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"})
		require.NoError(t, err)
		assert.Contains(t, resp.UploadURL, "-report.xlsx")
		assert.Contains(t, resp.FileURL, storage.KeyPrefix)
		assert.Equal(t, time.Hour, files.lifetime)
	})

	t.Run("type not allowed", func(t *testing.T) {
		f, files := newSubmissionFixture()
		svc := newTestSubmissionService(f, files)

		_, err := svc.Presign(context.Background(), &models.PresignRequest{FileName: "a.zip", ContentType: "application/zip"})
		assert.ErrorIs(t, err, models.ErrFileTypeNotAllowed)
	})

	t.Run("driver without presign", func(t *testing.T) {
		f, files := newSubmissionFixture()
		files.presignErr = storage.ErrPresignUnsupported
		svc := newTestSubmissionService(f, files)

		_, err := svc.Presign(context.Background(), &models.PresignRequest{FileName: "a.pdf", ContentType: "application/pdf"})
		assert.ErrorIs(t, err, storage.ErrPresignUnsupported)
	})
}

func TestSubmissionService_OpenFile(t *testing.T) {
	f, files := newSubmissionFixture()
	files.objects["uploads/abc-a.pdf"] = "%PDF"
	svc := newTestSubmissionService(f, files)

	rc, err := svc.OpenFile(context.Background(), "uploads/abc-a.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, err = svc.OpenFile(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, models.ErrNotFound)

	files.openErr = os.ErrNotExist
	_, err = svc.OpenFile(context.Background(), "uploads/missing.pdf")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
