package services

import (
	"context"
	"testing"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.Hebrew)
	require.NoError(t, err)
	return catalog
}

// studentFixture is a cohort of four weeks, one enrollment and two checklist items per week
type studentFixture struct {
	users       *mockUserRepository
	cohorts     *mockCohortRepository
	enrollments *mockEnrollmentRepository
	weeks       *mockWeekRepository
	submissions *mockSubmissionRepository
	checklist   *mockChecklistProgressRepository
}

func newStudentFixture() *studentFixture {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &studentFixture{
		users:       &mockUserRepository{user: &models.User{ID: 8, Name: "dana levi", Email: "dana@example.com"}},
		cohorts:     &mockCohortRepository{cohort: &models.Cohort{ID: 3, Name: "Spring 2024"}},
		enrollments: &mockEnrollmentRepository{enrollment: &models.Enrollment{ID: 7, UserID: 8, CohortID: 3, Track: models.TrackGroup}},
		weeks:       &mockWeekRepository{itemCohort: map[int]int{}},
		submissions: &mockSubmissionRepository{},
		checklist:   &mockChecklistProgressRepository{},
	}
	for n := 1; n <= models.WeeksPerCohort; n++ {
		deadline := start.AddDate(0, 0, 7*n)
		f.weeks.weeks = append(f.weeks.weeks, models.Week{ID: 100 + n, CohortID: 3, WeekNumber: n, Title: models.DefaultWeekTitles[n-1], Deadline: &deadline})
		for i := 0; i < 2; i++ {
			id := n*10 + i
			f.weeks.items = append(f.weeks.items, models.ChecklistItem{ID: id, WeekID: 100 + n, SortOrder: i})
			f.weeks.itemCohort[id] = 3
		}
	}
	f.weeks.itemCohort[99] = 4
	return f
}

func (f *studentFixture) service(t *testing.T) *studentService {
	svc := NewStudentService(f.users, f.cohorts, f.enrollments, f.weeks, f.submissions, f.checklist, newTestCatalog(t))
	svc.now = func() time.Time { return studentNow }
	return svc
}

func historyItem(id, weekNumber int, status models.SubmissionStatus, submittedAt *time.Time) models.SubmissionHistoryItem {
	return models.SubmissionHistoryItem{Submission: models.Submission{
		ID: id, WeekID: 100 + weekNumber, WeekNumber: weekNumber, Status: status, SubmittedAt: submittedAt,
	}}
}

func TestStudentService_Dashboard(t *testing.T) {
	t.Run("computes weeks, overall progress and recent submissions", func(t *testing.T) {
		f := newStudentFixture()
		f.submissions.history = []models.SubmissionHistoryItem{
			historyItem(1, 1, models.StatusCompleted, timePtr(studentNow.Add(-96*time.Hour))),
			historyItem(2, 2, models.StatusLate, timePtr(studentNow.Add(-time.Hour))),
			historyItem(3, 3, models.StatusInProgress, nil),
		}
		// Half of week 3 done
		f.checklist.rows = []models.ChecklistProgress{{ChecklistItemID: 30, IsDone: true}, {ChecklistItemID: 31, IsDone: false}}

		dashboard, err := f.service(t).Dashboard(context.Background(), 8, "en")
		require.NoError(t, err)

		assert.Equal(t, "dana levi", dashboard.UserName)
		assert.Equal(t, "DL", dashboard.Initials)
		assert.Equal(t, "Spring 2024", dashboard.CohortName)
		assert.Equal(t, models.TrackGroup, dashboard.Track)
		require.Len(t, dashboard.Weeks, 4)

		assert.Equal(t, models.StatusCompleted, dashboard.Weeks[0].Status)
		assert.True(t, dashboard.Weeks[0].DeadlinePassed)
		assert.Equal(t, models.StatusLate, dashboard.Weeks[1].Status)
		assert.Equal(t, 50, dashboard.Weeks[2].ChecklistProgress)
		assert.Equal(t, models.StatusNotStarted, dashboard.Weeks[3].Status)
		assert.False(t, dashboard.Weeks[3].DeadlinePassed)
		assert.NotEmpty(t, dashboard.Weeks[3].StatusLabel)

		// 25 (completed) + 0 (late) + 50*0.25 (in progress) = 37.5
		assert.Equal(t, 38, dashboard.OverallProgress)

		require.Len(t, dashboard.RecentSubmissions, 2)
		assert.Equal(t, 2, dashboard.RecentSubmissions[0].SubmissionID)
		assert.Equal(t, 1, dashboard.RecentSubmissions[1].SubmissionID)
	})

	t.Run("recent list is capped at three", func(t *testing.T) {
		f := newStudentFixture()
		for n := 1; n <= 4; n++ {
			f.submissions.history = append(f.submissions.history,
				historyItem(n, n, models.StatusSubmitted, timePtr(studentNow.Add(time.Duration(n)*time.Minute))))
		}

		dashboard, err := f.service(t).Dashboard(context.Background(), 8, "he")
		require.NoError(t, err)

		require.Len(t, dashboard.RecentSubmissions, 3)
		assert.Equal(t, 4, dashboard.RecentSubmissions[0].WeekNumber)
		assert.Equal(t, 80, dashboard.OverallProgress)
	})

	t.Run("no enrollment", func(t *testing.T) {
		f := newStudentFixture()
		f.enrollments.enrollment = nil

		_, err := f.service(t).Dashboard(context.Background(), 8, "he")
		assert.ErrorIs(t, err, models.ErrNoEnrollment)
	})
}

func TestStudentService_Week(t *testing.T) {
	tests := []struct {
		name          string
		weekNumber    int
		setup         func(f *studentFixture)
		expectedError error
		check         func(t *testing.T, view *models.WeekView)
	}{
		{name: "week zero", weekNumber: 0, expectedError: models.ErrNotFound},
		{name: "week five", weekNumber: 5, expectedError: models.ErrNotFound},
		{
			name:          "no enrollment",
			weekNumber:    1,
			setup:         func(f *studentFixture) { f.enrollments.enrollment = nil },
			expectedError: models.ErrNoEnrollment,
		},
		{
			name:       "without submission",
			weekNumber: 4,
			setup: func(f *studentFixture) {
				f.checklist.rows = []models.ChecklistProgress{{ChecklistItemID: 41, IsDone: true}}
			},
			check: func(t *testing.T, view *models.WeekView) {
				assert.Equal(t, 4, view.Week.WeekNumber)
				assert.False(t, view.DeadlinePassed)
				require.Len(t, view.Checklist, 2)
				assert.False(t, view.Checklist[0].IsDone)
				assert.True(t, view.Checklist[1].IsDone)
				assert.Equal(t, 50, view.ChecklistProgress)
				assert.Nil(t, view.Submission)
			},
		},
		{
			name:       "with submission",
			weekNumber: 1,
			setup: func(f *studentFixture) {
				f.submissions.submission = &models.Submission{ID: 1, WeekID: 101, Status: models.StatusSubmitted}
				f.weeks.assets = []models.WeekAsset{{ID: 1, WeekID: 101, Title: "Template", Type: models.AssetTemplate}}
			},
			check: func(t *testing.T, view *models.WeekView) {
				assert.True(t, view.DeadlinePassed)
				require.NotNil(t, view.Submission)
				assert.Equal(t, models.StatusSubmitted, view.Submission.Status)
				assert.Len(t, view.Assets, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStudentFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			view, err := f.service(t).Week(context.Background(), 8, tt.weekNumber)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			tt.check(t, view)
		})
	}
}

func TestStudentService_Submissions(t *testing.T) {
	f := newStudentFixture()
	f.submissions.history = []models.SubmissionHistoryItem{historyItem(1, 1, models.StatusSubmitted, nil)}

	history, err := f.service(t).Submissions(context.Background(), 8)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = f.service(t).Submissions(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNoEnrollment)
}

func TestStudentService_ToggleChecklist(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		req           models.ToggleChecklistRequest
		expectedError error
	}{
		{name: "success", userID: 8, req: models.ToggleChecklistRequest{EnrollmentID: 7, ChecklistItemID: 20, IsDone: true}},
		{name: "enrollment of another user", userID: 9, req: models.ToggleChecklistRequest{EnrollmentID: 7, ChecklistItemID: 20}, expectedError: models.ErrNotFound},
		{name: "unknown enrollment", userID: 8, req: models.ToggleChecklistRequest{EnrollmentID: 70, ChecklistItemID: 20}, expectedError: models.ErrNotFound},
		{name: "item of another cohort", userID: 8, req: models.ToggleChecklistRequest{EnrollmentID: 7, ChecklistItemID: 99}, expectedError: models.ErrNotFound},
		{name: "unknown item", userID: 8, req: models.ToggleChecklistRequest{EnrollmentID: 7, ChecklistItemID: 500}, expectedError: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStudentFixture()

			row, err := f.service(t).ToggleChecklist(context.Background(), tt.userID, &tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, f.checklist.upserted)
				return
			}
			require.NoError(t, err)
			assert.True(t, row.IsDone)
			assert.Equal(t, 7, row.EnrollmentID)
			assert.Equal(t, studentNow, row.UpdatedAt)
		})
	}
}
