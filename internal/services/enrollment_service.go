package services

import (
	"context"
	"errors"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/tasks"
	"go.uber.org/zap"
)

// CohortRepository is the interface that wraps methods for Cohort table data access
type CohortRepository interface {
	// Method List returns every cohort, newest first, with participant counts.
	List(ctx context.Context) ([]models.Cohort, error)
	// Method GetByID retrieves a cohort by ID.
	//
	// If cohort with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Cohort, error)
	// Method GetActiveByCode retrieves an active cohort by its enrollment code.
	//
	// "code" parameter must already be normalized.
	//
	// If no active cohort uses the code, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetActiveByCode(ctx context.Context, code string) (*models.Cohort, error)
	// Method CreateWithWeeks inserts a cohort and its weeks atomically.
	//
	// "cohort" and "weeks" parameters get their IDs filled on success.
	//
	// If the enrollment code is taken, models.ErrCodeExists will be returned.
	CreateWithWeeks(ctx context.Context, cohort *models.Cohort, weeks []models.Week) error
	// Method Update stores name, code, capacity and activity of a cohort.
	//
	// If the enrollment code is taken, models.ErrCodeExists will be returned.
	Update(ctx context.Context, cohort *models.Cohort) error
	// Method Counts returns the number of all cohorts and of active cohorts.
	Counts(ctx context.Context) (int, int, error)
}

// EnrollmentRepository is the interface that wraps methods for Enrollment table data access
type EnrollmentRepository interface {
	// Method Join enrolls a user into a cohort while holding a lock on the cohort.
	//
	// "cohort" parameter is the cohort to join, its capacity is enforced.
	// "enrollment" parameter carries the user and the track, its ID is filled on success.
	//
	// If the cohort is full models.ErrCohortFull is returned, if the user is already enrolled models.ErrAlreadyEnrolled.
	Join(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error
	// Method GetByID retrieves an enrollment by ID.
	//
	// If enrollment with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Enrollment, error)
	// Method GetLatestByUser retrieves the most recently created enrollment of a user.
	//
	// If the user has no enrollment, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetLatestByUser(ctx context.Context, userID int) (*models.Enrollment, error)
	// Method UpdateTrack changes the track of an enrollment.
	//
	// If enrollment with such ID does not exist, an error wrapping models.ErrNotFound will be returned.
	UpdateTrack(ctx context.Context, id int, track models.Track) error
	// Method Count returns the number of enrollments.
	Count(ctx context.Context) (int, error)
	// Method ListRecent returns the latest "limit" enrollments with user and cohort names.
	ListRecent(ctx context.Context, limit int) ([]models.RecentEnrollment, error)
	// Method ListParticipants returns the enrollments of a cohort with their submissions.
	//
	// "filter" parameter track and search fields are applied, week and status are not.
	ListParticipants(ctx context.Context, cohortID int, filter models.ParticipantFilter) ([]models.ParticipantRecord, error)
	// Method GetParticipant returns an enrollment with its user and cohort name.
	//
	// If enrollment with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetParticipant(ctx context.Context, enrollmentID int) (*models.ParticipantDetail, error)
	// Method ListDueReminders returns the enrollments of active cohorts that have not handed in
	// a week whose deadline is after "from" and not after "to".
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.DueReminder, error)
}

// Notifier is the interface that wraps email task enqueueing.
// Implementations never fail the caller, errors are logged.
type Notifier interface {
	EnqueueEmail(ctx context.Context, taskType string, payload tasks.EmailPayload)
}

// enrollmentService implements EnrollmentService
type enrollmentService struct {
	cohortRepo     CohortRepository
	enrollmentRepo EnrollmentRepository
	userRepo       UserRepository
	notifier       Notifier
	logger         *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	cohortRepo CohortRepository,
	enrollmentRepo EnrollmentRepository,
	userRepo UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *enrollmentService {
	return &enrollmentService{
		cohortRepo:     cohortRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// Join enrolls userID into the active cohort with the given code on the SELF track
func (s *enrollmentService) Join(ctx context.Context, userID int, req *models.JoinCohortRequest) (*models.Enrollment, error) {
	code := req.NormalizedCode()
	if code == "" {
		return nil, models.ErrInvalidCode
	}

	cohort, err := s.cohortRepo.GetActiveByCode(ctx, code)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID: userID,
		Track:  models.TrackSelf,
	}
	if err := s.enrollmentRepo.Join(ctx, cohort, enrollment); err != nil {
		return nil, err
	}
	enrollment.CreatedAt = time.Now()

	s.logger.Info("user joined cohort", zap.Int("userId", userID), zap.Int("cohortId", cohort.ID), zap.Int("enrollmentId", enrollment.ID))

	// The enrollment is committed at this point, a missing welcome email is only logged
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("skipping welcome email", zap.Error(err), zap.Int("userId", userID))
		return enrollment, nil
	}
	s.notifier.EnqueueEmail(ctx, tasks.TypeWelcomeEmail, tasks.EmailPayload{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Locale:     user.PreferredLocale,
		CohortName: cohort.Name,
	})

	return enrollment, nil
}
