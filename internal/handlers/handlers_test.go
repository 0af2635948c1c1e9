package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/services"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testUserID  = 8
	testAdminID = 1
)

func newTestCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.Hebrew)
	require.NoError(t, err)
	return catalog
}

func newTestValidator(t *testing.T, catalog *i18n.Catalog) *validation.Validator {
	t.Helper()
	v, err := validation.New(catalog)
	require.NoError(t, err)
	return v
}

// newTestRouter mounts routes behind locale resolution and, for userID > 0, a fixed identity
func newTestRouter(catalog *i18n.Catalog, userID, role int, register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(i18n.Middleware(catalog))
	if userID > 0 {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithIdentity(req.Context(), userID, role)))
			})
		})
	}
	register(r)
	return r
}

// doJSON sends body as JSON in English and returns the recorded response
func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	decodeBody(t, w, &body)
	msg, _ := body["error"].(string)
	return msg
}

func intPtr(i int) *int { return &i }

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	registerResp *models.RegisterResponse
	access       string
	refresh      string
	err          error
	gotLocale    string
	gotRefresh   string
	logoutToken  string
	logoutCalled bool
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest, locale string) (*models.RegisterResponse, string, string, error) {
	m.gotLocale = locale
	if m.err != nil {
		return nil, "", "", m.err
	}
	return m.registerResp, m.access, m.refresh, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return m.access, m.refresh, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	m.gotRefresh = refreshToken
	if m.err != nil {
		return "", "", m.err
	}
	return m.access, m.refresh, nil
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	m.logoutCalled = true
	m.logoutToken = refreshToken
	return m.err
}

// mockProfileService is a mock implementation of ProfileService
type mockProfileService struct {
	profile *models.ProfileResponse
	err     error
	updated *models.UpdateProfileRequest
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	return m.profile, m.err
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	m.updated = req
	if m.err != nil {
		return nil, m.err
	}
	p := *m.profile
	if req.PreferredLocale != nil {
		p.PreferredLocale = *req.PreferredLocale
	}
	return &p, nil
}

// PreferredLocale lets the profile mock back the preferred locale middleware
func (m *mockProfileService) PreferredLocale(ctx context.Context, userID int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.profile.PreferredLocale, nil
}

// mockEnrollmentService is a mock implementation of EnrollmentService
type mockEnrollmentService struct {
	enrollment *models.Enrollment
	err        error
	gotUserID  int
}

func (m *mockEnrollmentService) Join(ctx context.Context, userID int, req *models.JoinCohortRequest) (*models.Enrollment, error) {
	m.gotUserID = userID
	return m.enrollment, m.err
}

// mockStudentService is a mock implementation of StudentService
type mockStudentService struct {
	dashboard   *models.Dashboard
	week        *models.WeekView
	submissions []models.SubmissionHistoryItem
	progress    *models.ChecklistProgress
	err         error
	gotLocale   string
	gotWeek     int
}

func (m *mockStudentService) Dashboard(ctx context.Context, userID int, locale string) (*models.Dashboard, error) {
	m.gotLocale = locale
	return m.dashboard, m.err
}

func (m *mockStudentService) Week(ctx context.Context, userID, weekNumber int) (*models.WeekView, error) {
	m.gotWeek = weekNumber
	return m.week, m.err
}

func (m *mockStudentService) Submissions(ctx context.Context, userID int) ([]models.SubmissionHistoryItem, error) {
	return m.submissions, m.err
}

func (m *mockStudentService) ToggleChecklist(ctx context.Context, userID int, req *models.ToggleChecklistRequest) (*models.ChecklistProgress, error) {
	return m.progress, m.err
}

// mockSubmissionService is a mock implementation of SubmissionService
type mockSubmissionService struct {
	submission *models.Submission
	presigned  *models.PresignResponse
	content    string
	err        error
	gotReq     *models.SubmitRequest
	gotFiles   []services.UploadFile
	gotData    []string
	gotKey     string
}

func (m *mockSubmissionService) Submit(ctx context.Context, userID int, req *models.SubmitRequest, files []services.UploadFile) (*models.Submission, error) {
	m.gotReq = req
	m.gotFiles = files
	for _, f := range files {
		data, _ := io.ReadAll(f.Content)
		m.gotData = append(m.gotData, string(data))
	}
	return m.submission, m.err
}

func (m *mockSubmissionService) Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error) {
	return m.presigned, m.err
}

func (m *mockSubmissionService) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	m.gotKey = key
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.content)), nil
}

// mockAdminService is a mock implementation of AdminService
type mockAdminService struct {
	overview   *models.Overview
	cohorts    []models.Cohort
	cohort     *models.Cohort
	list       *models.ParticipantList
	detail     *models.ParticipantDetail
	note       *models.AdminNote
	submission *models.Submission
	enrollment *models.Enrollment
	err        error

	gotFilter   models.ParticipantFilter
	gotAuthorID int
	gotIDs      []int
	gotUpdate   *models.UpdateCohortRequest
}

func (m *mockAdminService) Overview(ctx context.Context, locale string) (*models.Overview, error) {
	return m.overview, m.err
}

func (m *mockAdminService) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	return m.cohorts, m.err
}

func (m *mockAdminService) CreateCohort(ctx context.Context, req *models.CreateCohortRequest) (*models.Cohort, error) {
	return m.cohort, m.err
}

func (m *mockAdminService) UpdateCohort(ctx context.Context, id int, req *models.UpdateCohortRequest) (*models.Cohort, error) {
	m.gotIDs = append(m.gotIDs, id)
	m.gotUpdate = req
	return m.cohort, m.err
}

func (m *mockAdminService) Participants(ctx context.Context, cohortID int, filter models.ParticipantFilter) (*models.ParticipantList, error) {
	m.gotIDs = append(m.gotIDs, cohortID)
	m.gotFilter = filter
	return m.list, m.err
}

func (m *mockAdminService) ParticipantDetail(ctx context.Context, cohortID, enrollmentID int) (*models.ParticipantDetail, error) {
	m.gotIDs = append(m.gotIDs, cohortID, enrollmentID)
	return m.detail, m.err
}

func (m *mockAdminService) CreateNote(ctx context.Context, authorID int, req *models.CreateNoteRequest) (*models.AdminNote, error) {
	m.gotAuthorID = authorID
	return m.note, m.err
}

func (m *mockAdminService) CompleteSubmission(ctx context.Context, submissionID int) (*models.Submission, error) {
	m.gotIDs = append(m.gotIDs, submissionID)
	return m.submission, m.err
}

func (m *mockAdminService) UpdateTrack(ctx context.Context, enrollmentID int, req *models.UpdateTrackRequest) (*models.Enrollment, error) {
	m.gotIDs = append(m.gotIDs, enrollmentID)
	return m.enrollment, m.err
}

// mockJobs is a mock implementation of ReminderRunner and TokenCleaner
type mockJobs struct {
	count int
	err   error
}

func (m *mockJobs) Run(ctx context.Context) (int, error) { return m.count, m.err }

func (m *mockJobs) CleanupExpiredTokens(ctx context.Context) (int, error) { return m.count, m.err }

var testLogger = zap.NewNop()
