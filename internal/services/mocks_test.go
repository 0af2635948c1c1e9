package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/storage"
	"github.com/businesscontrol/portal/internal/tasks"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user         *models.User
	err          error
	exists       bool
	existsErr    error
	created      *models.User
	updated      *models.User
	updateErr    error
	createErr    error
	getByIDCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.getByIDCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	u := *m.user
	return &u, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	m.updated = user
	return m.updateErr
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository
type mockUserTokenRepository struct {
	token          *models.UserToken
	err            error
	createErr      error
	updateTokenErr error
	deleted        string
	expiredBefore  time.Time
	expiredCount   int
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	return m.createErr
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.token, nil
}

func (m *mockUserTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	return m.updateTokenErr
}

func (m *mockUserTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	m.deleted = token
	return m.err
}

func (m *mockUserTokenRepository) DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error) {
	m.expiredBefore = expiryTime
	if m.err != nil {
		return 0, m.err
	}
	return m.expiredCount, nil
}

// mockCohortRepository is a mock implementation of CohortRepository
type mockCohortRepository struct {
	cohort      *models.Cohort
	cohorts     []models.Cohort
	err         error
	createErr   error
	updateErr   error
	created     *models.Cohort
	weeks       []models.Week
	updated     *models.Cohort
	total       int
	active      int
	requestCode string
}

func (m *mockCohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	return m.cohorts, m.err
}

func (m *mockCohortRepository) GetByID(ctx context.Context, id int) (*models.Cohort, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cohort == nil || m.cohort.ID != id {
		return nil, fmt.Errorf("cohort %w", models.ErrNotFound)
	}
	c := *m.cohort
	return &c, nil
}

func (m *mockCohortRepository) GetActiveByCode(ctx context.Context, code string) (*models.Cohort, error) {
	m.requestCode = code
	if m.err != nil {
		return nil, m.err
	}
	if m.cohort == nil {
		return nil, fmt.Errorf("cohort %w", models.ErrNotFound)
	}
	return m.cohort, nil
}

func (m *mockCohortRepository) CreateWithWeeks(ctx context.Context, cohort *models.Cohort, weeks []models.Week) error {
	if m.createErr != nil {
		return m.createErr
	}
	cohort.ID = 10
	for i := range weeks {
		weeks[i].ID = 100 + i
		weeks[i].CohortID = cohort.ID
	}
	m.created = cohort
	m.weeks = weeks
	return nil
}

func (m *mockCohortRepository) Update(ctx context.Context, cohort *models.Cohort) error {
	m.updated = cohort
	return m.updateErr
}

func (m *mockCohortRepository) Counts(ctx context.Context) (int, int, error) {
	return m.total, m.active, m.err
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	enrollment   *models.Enrollment
	err          error
	joinErr      error
	joined       *models.Enrollment
	count        int
	recent       []models.RecentEnrollment
	records      []models.ParticipantRecord
	participant  *models.ParticipantDetail
	due          []models.DueReminder
	dueFrom      time.Time
	dueTo        time.Time
	trackUpdated models.Track
}

func (m *mockEnrollmentRepository) Join(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	enrollment.ID = 7
	enrollment.CohortID = cohort.ID
	m.joined = enrollment
	return nil
}

func (m *mockEnrollmentRepository) GetByID(ctx context.Context, id int) (*models.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.enrollment == nil || m.enrollment.ID != id {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	e := *m.enrollment
	if m.trackUpdated != "" {
		e.Track = m.trackUpdated
	}
	return &e, nil
}

func (m *mockEnrollmentRepository) GetLatestByUser(ctx context.Context, userID int) (*models.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.enrollment == nil || m.enrollment.UserID != userID {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentRepository) UpdateTrack(ctx context.Context, id int, track models.Track) error {
	if m.err != nil {
		return m.err
	}
	m.trackUpdated = track
	return nil
}

func (m *mockEnrollmentRepository) Count(ctx context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockEnrollmentRepository) ListRecent(ctx context.Context, limit int) ([]models.RecentEnrollment, error) {
	return m.recent, m.err
}

func (m *mockEnrollmentRepository) ListParticipants(ctx context.Context, cohortID int, filter models.ParticipantFilter) ([]models.ParticipantRecord, error) {
	return m.records, m.err
}

func (m *mockEnrollmentRepository) GetParticipant(ctx context.Context, enrollmentID int) (*models.ParticipantDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.participant == nil || m.participant.EnrollmentID != enrollmentID {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	p := *m.participant
	return &p, nil
}

func (m *mockEnrollmentRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.DueReminder, error) {
	m.dueFrom, m.dueTo = from, to
	return m.due, m.err
}

// mockWeekRepository is a mock implementation of WeekRepository
type mockWeekRepository struct {
	weeks      []models.Week
	items      []models.ChecklistItem
	assets     []models.WeekAsset
	itemCohort map[int]int
	err        error
}

func (m *mockWeekRepository) ListByCohort(ctx context.Context, cohortID int) ([]models.Week, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Week, 0)
	for _, w := range m.weeks {
		if w.CohortID == cohortID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (m *mockWeekRepository) GetByCohortAndNumber(ctx context.Context, cohortID, weekNumber int) (*models.Week, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, w := range m.weeks {
		if w.CohortID == cohortID && w.WeekNumber == weekNumber {
			week := w
			return &week, nil
		}
	}
	return nil, fmt.Errorf("week %w", models.ErrNotFound)
}

func (m *mockWeekRepository) GetByID(ctx context.Context, id int) (*models.Week, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, w := range m.weeks {
		if w.ID == id {
			week := w
			return &week, nil
		}
	}
	return nil, fmt.Errorf("week %w", models.ErrNotFound)
}

func (m *mockWeekRepository) ListChecklistItems(ctx context.Context, weekIDs []int) ([]models.ChecklistItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[int]bool, len(weekIDs))
	for _, id := range weekIDs {
		wanted[id] = true
	}
	result := make([]models.ChecklistItem, 0)
	for _, item := range m.items {
		if wanted[item.WeekID] {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockWeekRepository) GetChecklistItemCohortID(ctx context.Context, itemID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	cohortID, ok := m.itemCohort[itemID]
	if !ok {
		return 0, fmt.Errorf("checklist item %w", models.ErrNotFound)
	}
	return cohortID, nil
}

func (m *mockWeekRepository) ListAssets(ctx context.Context, weekID int) ([]models.WeekAsset, error) {
	return m.assets, m.err
}

// mockSubmissionRepository is a mock implementation of SubmissionRepository
type mockSubmissionRepository struct {
	submission   *models.Submission
	history      []models.SubmissionHistoryItem
	recent       []models.RecentSubmission
	pending      int
	err          error
	saveErr      error
	updateErr    error
	saved        *models.Submission
	savedFiles   []models.SubmissionFile
	statusUpdate models.SubmissionStatus
}

func (m *mockSubmissionRepository) GetByEnrollmentAndWeek(ctx context.Context, enrollmentID, weekID int) (*models.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.saved != nil {
		sub := *m.saved
		if m.submission != nil {
			sub.Files = append(append([]models.SubmissionFile{}, m.submission.Files...), m.savedFiles...)
		} else {
			sub.Files = m.savedFiles
		}
		return &sub, nil
	}
	if m.submission == nil {
		return nil, fmt.Errorf("submission %w", models.ErrNotFound)
	}
	sub := *m.submission
	return &sub, nil
}

func (m *mockSubmissionRepository) GetByID(ctx context.Context, id int) (*models.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.submission == nil || m.submission.ID != id {
		return nil, fmt.Errorf("submission %w", models.ErrNotFound)
	}
	sub := *m.submission
	return &sub, nil
}

func (m *mockSubmissionRepository) Save(ctx context.Context, sub *models.Submission, files []models.SubmissionFile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	sub.ID = 55
	m.saved = sub
	m.savedFiles = files
	return nil
}

func (m *mockSubmissionRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.SubmissionHistoryItem, error) {
	return m.history, m.err
}

func (m *mockSubmissionRepository) UpdateStatus(ctx context.Context, id int, status models.SubmissionStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.statusUpdate = status
	return nil
}

func (m *mockSubmissionRepository) CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error) {
	return m.pending, m.err
}

func (m *mockSubmissionRepository) ListRecentSubmitted(ctx context.Context, limit int) ([]models.RecentSubmission, error) {
	return m.recent, m.err
}

// mockChecklistProgressRepository is a mock implementation of ChecklistProgressRepository
type mockChecklistProgressRepository struct {
	rows     []models.ChecklistProgress
	err      error
	upserted *models.ChecklistProgress
}

func (m *mockChecklistProgressRepository) Upsert(ctx context.Context, progress *models.ChecklistProgress) error {
	if m.err != nil {
		return m.err
	}
	progress.ID = 3
	m.upserted = progress
	return nil
}

func (m *mockChecklistProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.ChecklistProgress, error) {
	return m.rows, m.err
}

// mockAdminNoteRepository is a mock implementation of AdminNoteRepository
type mockAdminNoteRepository struct {
	notes   []models.AdminNote
	created *models.AdminNote
	err     error
}

func (m *mockAdminNoteRepository) Create(ctx context.Context, note *models.AdminNote) error {
	if m.err != nil {
		return m.err
	}
	note.ID = 9
	m.created = note
	return nil
}

func (m *mockAdminNoteRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.AdminNote, error) {
	return m.notes, m.err
}

// mockNotifier records enqueued emails, Enqueue fails with err and records nothing then
type mockNotifier struct {
	types    []string
	payloads []tasks.EmailPayload
	err      error
	attempts int
}

func (m *mockNotifier) EnqueueEmail(ctx context.Context, taskType string, payload tasks.EmailPayload) {
	m.types = append(m.types, taskType)
	m.payloads = append(m.payloads, payload)
}

func (m *mockNotifier) Enqueue(ctx context.Context, taskType string, payload tasks.EmailPayload) error {
	m.attempts++
	if m.err != nil {
		return m.err
	}
	m.EnqueueEmail(ctx, taskType, payload)
	return nil
}

// mockFileStorage keeps uploads in memory
type mockFileStorage struct {
	objects    map[string]string
	deleted    []string
	putErr     error
	putErrAt   int
	puts       int
	openErr    error
	presignErr error
	lifetime   time.Duration
}

func newMockFileStorage() *mockFileStorage {
	return &mockFileStorage{objects: map[string]string{}}
}

func (m *mockFileStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error) {
	m.puts++
	if m.putErr != nil && m.puts >= m.putErrAt {
		return nil, m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.objects[key] = string(data)
	return &storage.Object{Key: key, URL: "https://files.example.com/" + key, Size: int64(len(data))}, nil
}

func (m *mockFileStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", key, storage.ErrInvalidKey)
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (m *mockFileStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func (m *mockFileStorage) Presign(ctx context.Context, key, contentType string, lifetime time.Duration) (*storage.Presigned, error) {
	if m.presignErr != nil {
		return nil, m.presignErr
	}
	m.lifetime = lifetime
	return &storage.Presigned{UploadURL: "https://upload.example.com/" + key, FileURL: "https://files.example.com/" + key}, nil
}

// mockReminderLock hands out every key once
type mockReminderLock struct {
	held     map[string]bool
	ttl      time.Duration
	err      error
	released []string
}

func (m *mockReminderLock) Release(ctx context.Context, key string) error {
	m.released = append(m.released, key)
	delete(m.held, key)
	return nil
}

func (m *mockReminderLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.ttl = ttl
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
