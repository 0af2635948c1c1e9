package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/progress"
	"github.com/businesscontrol/portal/internal/tasks"
	"go.uber.org/zap"
)

// overviewListLimit is the length of both recent lists on the admin overview
const overviewListLimit = 5

// AdminNoteRepository is the interface that wraps methods for AdminNote table data access
type AdminNoteRepository interface {
	// Method Create inserts a new note, its ID and creation time are filled on success.
	Create(ctx context.Context, note *models.AdminNote) error
	// Method ListByEnrollment returns the notes of an enrollment, newest first, with week numbers.
	ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.AdminNote, error)
}

// adminService implements AdminService
type adminService struct {
	cohortRepo     CohortRepository
	enrollmentRepo EnrollmentRepository
	weekRepo       WeekRepository
	submissionRepo SubmissionRepository
	checklistRepo  ChecklistProgressRepository
	noteRepo       AdminNoteRepository
	userRepo       UserRepository
	notifier       Notifier
	catalog        *i18n.Catalog
	logger         *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	cohortRepo CohortRepository,
	enrollmentRepo EnrollmentRepository,
	weekRepo WeekRepository,
	submissionRepo SubmissionRepository,
	checklistRepo ChecklistProgressRepository,
	noteRepo AdminNoteRepository,
	userRepo UserRepository,
	notifier Notifier,
	catalog *i18n.Catalog,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		cohortRepo:     cohortRepo,
		enrollmentRepo: enrollmentRepo,
		weekRepo:       weekRepo,
		submissionRepo: submissionRepo,
		checklistRepo:  checklistRepo,
		noteRepo:       noteRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		catalog:        catalog,
		logger:         logger,
	}
}

// Overview returns the counters and recent activity of the admin landing page
func (s *adminService) Overview(ctx context.Context, locale string) (*models.Overview, error) {
	total, active, err := s.cohortRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	participants, err := s.enrollmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.submissionRepo.CountByStatus(ctx, models.StatusSubmitted)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.ListRecent(ctx, overviewListLimit)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.ListRecentSubmitted(ctx, overviewListLimit)
	if err != nil {
		return nil, err
	}

	unknown := s.catalog.T(locale, i18n.MsgUnknown)
	for i := range enrollments {
		if enrollments[i].UserName == "" {
			enrollments[i].UserName = unknown
		}
	}
	for i := range submissions {
		if submissions[i].UserName == "" {
			submissions[i].UserName = unknown
		}
	}

	return &models.Overview{
		TotalCohorts:       total,
		ActiveCohorts:      active,
		TotalParticipants:  participants,
		PendingSubmissions: pending,
		RecentEnrollments:  enrollments,
		RecentSubmissions:  submissions,
	}, nil
}

// ListCohorts returns every cohort with its participant count, newest first
func (s *adminService) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	return s.cohortRepo.List(ctx)
}

// CreateCohort creates a cohort and its four weeks. Week n is due n*7 days after the start date.
func (s *adminService) CreateCohort(ctx context.Context, req *models.CreateCohortRequest) (*models.Cohort, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrValidation
	}

	code, err := normalizeCode(req.EnrollmentCode)
	if err != nil {
		return nil, err
	}

	cohort := &models.Cohort{
		Name:           name,
		StartDate:      req.StartDate,
		EnrollmentCode: code,
		Capacity:       req.Capacity,
		IsActive:       true,
	}
	if req.IsActive != nil {
		cohort.IsActive = *req.IsActive
	}

	weeks := make([]models.Week, models.WeeksPerCohort)
	for i := range weeks {
		deadline := req.StartDate.AddDate(0, 0, 7*(i+1))
		weeks[i] = models.Week{
			WeekNumber: i + 1,
			Title:      models.DefaultWeekTitles[i],
			Deadline:   &deadline,
		}
	}

	if err := s.cohortRepo.CreateWithWeeks(ctx, cohort, weeks); err != nil {
		return nil, err
	}
	cohort.CreatedAt = time.Now()
	cohort.Weeks = weeks

	s.logger.Info("cohort created", zap.Int("cohortId", cohort.ID), zap.String("name", cohort.Name))
	return cohort, nil
}

// UpdateCohort applies the non-nil fields of req. An empty code removes the code.
func (s *adminService) UpdateCohort(ctx context.Context, id int, req *models.UpdateCohortRequest) (*models.Cohort, error) {
	cohort, err := s.cohortRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.ErrValidation
		}
		cohort.Name = name
	}
	if req.EnrollmentCode != nil {
		code, err := normalizeCode(req.EnrollmentCode)
		if err != nil {
			return nil, err
		}
		cohort.EnrollmentCode = code
	}
	if req.Capacity != nil {
		cohort.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		cohort.IsActive = *req.IsActive
	}

	if err := s.cohortRepo.Update(ctx, cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

// Participants returns the participants table of a cohort
func (s *adminService) Participants(ctx context.Context, cohortID int, filter models.ParticipantFilter) (*models.ParticipantList, error) {
	cohort, err := s.cohortRepo.GetByID(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	records, err := s.enrollmentRepo.ListParticipants(ctx, cohortID, filter)
	if err != nil {
		return nil, err
	}

	list := &models.ParticipantList{
		CohortID:     cohort.ID,
		CohortName:   cohort.Name,
		Participants: make([]models.ParticipantRow, 0, len(records)),
	}
	for _, rec := range records {
		byWeek := make(map[int]models.SubmissionStatus, len(rec.Submissions))
		for _, sub := range rec.Submissions {
			byWeek[sub.WeekNumber] = sub.Status
		}
		statuses := progress.WeekStatuses(byWeek, models.WeeksPerCohort)
		if !progress.Matches(statuses, filter.Week, filter.Status) {
			continue
		}

		list.Participants = append(list.Participants, models.ParticipantRow{
			EnrollmentID: rec.EnrollmentID,
			UserID:       rec.UserID,
			Name:         rec.Name,
			Email:        rec.Email,
			Track:        rec.Track,
			WeekStatuses: statuses,
			LastActivity: progress.LastActivity(rec.Submissions, rec.EnrolledAt),
		})
	}

	return list, nil
}

// ParticipantDetail returns one enrollment of a cohort with weeks, submissions and notes.
// An enrollment of another cohort is reported as not found.
func (s *adminService) ParticipantDetail(ctx context.Context, cohortID, enrollmentID int) (*models.ParticipantDetail, error) {
	detail, err := s.enrollmentRepo.GetParticipant(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if detail.CohortID != cohortID {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	detail.Initials = i18n.Initials(detail.Name)

	weeks, err := s.weekRepo.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	itemsByWeek, done, err := loadChecklistState(ctx, s.weekRepo, s.checklistRepo, enrollmentID, weeks)
	if err != nil {
		return nil, err
	}
	history, err := s.submissionRepo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	byWeek := make(map[int]*models.Submission, len(history))
	for i := range history {
		byWeek[history[i].WeekID] = &history[i].Submission
	}

	detail.Weeks = make([]models.ParticipantWeek, 0, len(weeks))
	for _, week := range weeks {
		detail.Weeks = append(detail.Weeks, models.ParticipantWeek{
			Week:              week,
			Submission:        byWeek[week.ID],
			ChecklistProgress: progress.ChecklistPercent(itemsByWeek[week.ID], done),
		})
	}

	notes, err := s.noteRepo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	detail.Notes = notes

	return detail, nil
}

// CreateNote stores a note of authorID on an enrollment, optionally tied to a week of its cohort
func (s *adminService) CreateNote(ctx context.Context, authorID int, req *models.CreateNoteRequest) (*models.AdminNote, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.ErrValidation
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	note := &models.AdminNote{
		EnrollmentID: enrollment.ID,
		AuthorID:     &authorID,
		Content:      content,
	}
	if req.WeekID != nil {
		week, err := s.weekRepo.GetByID(ctx, *req.WeekID)
		if err != nil {
			return nil, err
		}
		if week.CohortID != enrollment.CohortID {
			return nil, fmt.Errorf("week %w", models.ErrNotFound)
		}
		note.WeekID = &week.ID
		note.WeekNumber = &week.WeekNumber
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// CompleteSubmission marks a handed in submission as reviewed and emails the student.
// Completing an already completed submission changes nothing.
func (s *adminService) CompleteSubmission(ctx context.Context, submissionID int) (*models.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.StatusCompleted {
		return sub, nil
	}
	if !progress.CanTransition(sub.Status, models.StatusCompleted) {
		return nil, models.ErrInvalidTransition
	}

	if err := s.submissionRepo.UpdateStatus(ctx, sub.ID, models.StatusCompleted); err != nil {
		return nil, err
	}
	sub.Status = models.StatusCompleted

	s.notifyCompleted(ctx, sub)
	return sub, nil
}

// notifyCompleted enqueues the review email, missing data is only logged
func (s *adminService) notifyCompleted(ctx context.Context, sub *models.Submission) {
	participant, err := s.enrollmentRepo.GetParticipant(ctx, sub.EnrollmentID)
	if err != nil {
		s.logger.Warn("skipping completion email", zap.Error(err), zap.Int("submissionId", sub.ID))
		return
	}
	week, err := s.weekRepo.GetByID(ctx, sub.WeekID)
	if err != nil {
		s.logger.Warn("skipping completion email", zap.Error(err), zap.Int("submissionId", sub.ID))
		return
	}

	locale := ""
	user, err := s.userRepo.GetByID(ctx, participant.UserID)
	if err == nil {
		locale = user.PreferredLocale
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Warn("using default email locale", zap.Error(err), zap.Int("userId", participant.UserID))
	}

	s.notifier.EnqueueEmail(ctx, tasks.TypeSubmissionCompleted, tasks.EmailPayload{
		UserID:     participant.UserID,
		Email:      participant.Email,
		Name:       participant.Name,
		Locale:     locale,
		CohortName: participant.CohortName,
		WeekNumber: week.WeekNumber,
		WeekTitle:  week.Title,
	})
}

// UpdateTrack changes the pricing track of an enrollment
func (s *adminService) UpdateTrack(ctx context.Context, enrollmentID int, req *models.UpdateTrackRequest) (*models.Enrollment, error) {
	if !req.Track.Valid() {
		return nil, models.ErrValidation
	}
	if err := s.enrollmentRepo.UpdateTrack(ctx, enrollmentID, req.Track); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.GetByID(ctx, enrollmentID)
}

// normalizeCode trims and upper-cases an enrollment code, blank codes become nil
func normalizeCode(code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(*code))
	if normalized == "" {
		return nil, nil
	}
	if !models.ValidEnrollmentCode(normalized) {
		return nil, fmt.Errorf("%w: enrollment code must be 3 to 32 letters, digits, '-' or '_'", models.ErrValidation)
	}
	return &normalized, nil
}
