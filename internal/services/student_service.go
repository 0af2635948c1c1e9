package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/progress"
)

// recentSubmissionsOnDashboard is the length of the dashboard recent list
const recentSubmissionsOnDashboard = 3

// WeekRepository is the interface that wraps methods for Week, ChecklistItem and WeekAsset tables data access
type WeekRepository interface {
	// Method ListByCohort returns the weeks of a cohort ordered by week number.
	ListByCohort(ctx context.Context, cohortID int) ([]models.Week, error)
	// Method GetByCohortAndNumber retrieves a week of a cohort by its number.
	//
	// If such week does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByCohortAndNumber(ctx context.Context, cohortID, weekNumber int) (*models.Week, error)
	// Method GetByID retrieves a week by ID.
	//
	// If week with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Week, error)
	// Method ListChecklistItems returns the checklist items of the given weeks ordered by week and sort order.
	ListChecklistItems(ctx context.Context, weekIDs []int) ([]models.ChecklistItem, error)
	// Method GetChecklistItemCohortID returns the cohort owning a checklist item.
	//
	// If checklist item with such ID does not exist, an error wrapping models.ErrNotFound will be returned.
	GetChecklistItemCohortID(ctx context.Context, itemID int) (int, error)
	// Method ListAssets returns the downloadable assets of a week.
	ListAssets(ctx context.Context, weekID int) ([]models.WeekAsset, error)
}

// SubmissionRepository is the interface that wraps methods for Submission and SubmissionFile tables data access
type SubmissionRepository interface {
	// Method GetByEnrollmentAndWeek retrieves the submission of an enrollment for a week with its files.
	//
	// If there is no such submission, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByEnrollmentAndWeek(ctx context.Context, enrollmentID, weekID int) (*models.Submission, error)
	// Method GetByID retrieves a submission by ID without files.
	//
	// If submission with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Submission, error)
	// Method Save inserts or updates the submission of (enrollment, week) and appends "files" to it.
	//
	// The status change is checked under a row lock, if the stored status cannot move to the new one
	// models.ErrAlreadySubmitted will be returned.
	Save(ctx context.Context, sub *models.Submission, files []models.SubmissionFile) error
	// Method ListByEnrollment returns the submissions of an enrollment ordered by week number, files included.
	ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.SubmissionHistoryItem, error)
	// Method UpdateStatus changes the status of a submission under a row lock.
	//
	// If submission with such ID does not exist, an error wrapping models.ErrNotFound will be returned.
	// If the stored status cannot move to "status", models.ErrInvalidTransition will be returned.
	UpdateStatus(ctx context.Context, id int, status models.SubmissionStatus) error
	// Method CountByStatus returns the number of submissions in a status.
	CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error)
	// Method ListRecentSubmitted returns the latest "limit" handed in submissions.
	ListRecentSubmitted(ctx context.Context, limit int) ([]models.RecentSubmission, error)
}

// ChecklistProgressRepository is the interface that wraps methods for ChecklistProgress table data access
type ChecklistProgressRepository interface {
	// Method Upsert stores the done flag of an item for an enrollment.
	Upsert(ctx context.Context, progress *models.ChecklistProgress) error
	// Method ListByEnrollment returns every progress row of an enrollment.
	ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.ChecklistProgress, error)
}

// studentService implements StudentService
type studentService struct {
	userRepo       UserRepository
	cohortRepo     CohortRepository
	enrollmentRepo EnrollmentRepository
	weekRepo       WeekRepository
	submissionRepo SubmissionRepository
	checklistRepo  ChecklistProgressRepository
	catalog        *i18n.Catalog
	now            func() time.Time
}

// NewStudentService creates a new student service
func NewStudentService(
	userRepo UserRepository,
	cohortRepo CohortRepository,
	enrollmentRepo EnrollmentRepository,
	weekRepo WeekRepository,
	submissionRepo SubmissionRepository,
	checklistRepo ChecklistProgressRepository,
	catalog *i18n.Catalog,
) *studentService {
	return &studentService{
		userRepo:       userRepo,
		cohortRepo:     cohortRepo,
		enrollmentRepo: enrollmentRepo,
		weekRepo:       weekRepo,
		submissionRepo: submissionRepo,
		checklistRepo:  checklistRepo,
		catalog:        catalog,
		now:            time.Now,
	}
}

// Dashboard builds the home page of the latest enrollment of userID
func (s *studentService) Dashboard(ctx context.Context, userID int, locale string) (*models.Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.latestEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	cohort, err := s.cohortRepo.GetByID(ctx, enrollment.CohortID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.weekRepo.ListByCohort(ctx, cohort.ID)
	if err != nil {
		return nil, err
	}

	itemsByWeek, done, err := s.checklistState(ctx, enrollment.ID, weeks)
	if err != nil {
		return nil, err
	}

	history, err := s.submissionRepo.ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	statusByWeek := make(map[int]models.SubmissionStatus, len(history))
	for _, item := range history {
		statusByWeek[item.WeekID] = item.Status
	}

	now := s.now()
	dashboard := &models.Dashboard{
		UserName:          user.Name,
		Initials:          i18n.Initials(user.Name),
		EnrollmentID:      enrollment.ID,
		CohortName:        cohort.Name,
		Track:             enrollment.Track,
		Weeks:             make([]models.WeekProgress, 0, len(weeks)),
		RecentSubmissions: make([]models.SubmissionSummary, 0, recentSubmissionsOnDashboard),
	}

	states := make([]progress.WeekState, 0, len(weeks))
	for _, week := range weeks {
		status, ok := statusByWeek[week.ID]
		if !ok {
			status = models.StatusNotStarted
		}
		percent := progress.ChecklistPercent(itemsByWeek[week.ID], done)

		dashboard.Weeks = append(dashboard.Weeks, models.WeekProgress{
			WeekID:            week.ID,
			WeekNumber:        week.WeekNumber,
			Title:             week.Title,
			Deadline:          week.Deadline,
			DeadlinePassed:    progress.IsDeadlinePassed(week.Deadline, now),
			Status:            status,
			StatusLabel:       s.catalog.StatusLabel(locale, string(status)),
			ChecklistProgress: percent,
		})
		states = append(states, progress.WeekState{Status: status, ChecklistPercent: percent})
	}
	dashboard.OverallProgress = progress.OverallProgress(states)

	// Only handed in submissions have a time to sort by
	recent := make([]models.SubmissionHistoryItem, 0, len(history))
	for _, item := range history {
		if item.SubmittedAt != nil {
			recent = append(recent, item)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmittedAt.After(*recent[j].SubmittedAt)
	})
	for i := 0; i < len(recent) && i < recentSubmissionsOnDashboard; i++ {
		dashboard.RecentSubmissions = append(dashboard.RecentSubmissions, models.SubmissionSummary{
			SubmissionID: recent[i].ID,
			WeekNumber:   recent[i].WeekNumber,
			Status:       recent[i].Status,
			StatusLabel:  s.catalog.StatusLabel(locale, string(recent[i].Status)),
			SubmittedAt:  recent[i].SubmittedAt,
		})
	}

	return dashboard, nil
}

// Week builds the page of one week of the latest enrollment of userID
func (s *studentService) Week(ctx context.Context, userID, weekNumber int) (*models.WeekView, error) {
	if weekNumber < 1 || weekNumber > models.WeeksPerCohort {
		return nil, fmt.Errorf("week %w", models.ErrNotFound)
	}

	enrollment, err := s.latestEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	week, err := s.weekRepo.GetByCohortAndNumber(ctx, enrollment.CohortID, weekNumber)
	if err != nil {
		return nil, err
	}

	itemsByWeek, done, err := s.checklistState(ctx, enrollment.ID, []models.Week{*week})
	if err != nil {
		return nil, err
	}
	items := itemsByWeek[week.ID]

	assets, err := s.weekRepo.ListAssets(ctx, week.ID)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByEnrollmentAndWeek(ctx, enrollment.ID, week.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	view := &models.WeekView{
		EnrollmentID:      enrollment.ID,
		Week:              *week,
		DeadlinePassed:    progress.IsDeadlinePassed(week.Deadline, s.now()),
		Checklist:         make([]models.ChecklistEntry, 0, len(items)),
		ChecklistProgress: progress.ChecklistPercent(items, done),
		Assets:            assets,
		Submission:        submission,
	}
	for _, item := range items {
		view.Checklist = append(view.Checklist, models.ChecklistEntry{ChecklistItem: item, IsDone: done[item.ID]})
	}

	return view, nil
}

// Submissions returns the submission history of the latest enrollment of userID
func (s *studentService) Submissions(ctx context.Context, userID int) ([]models.SubmissionHistoryItem, error) {
	enrollment, err := s.latestEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByEnrollment(ctx, enrollment.ID)
}

// ToggleChecklist marks a checklist item done or undone for an enrollment of userID.
// Enrollments of other users and items of other cohorts are reported as not found.
func (s *studentService) ToggleChecklist(ctx context.Context, userID int, req *models.ToggleChecklistRequest) (*models.ChecklistProgress, error) {
	enrollment, err := s.ownedEnrollment(ctx, userID, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	cohortID, err := s.weekRepo.GetChecklistItemCohortID(ctx, req.ChecklistItemID)
	if err != nil {
		return nil, err
	}
	if cohortID != enrollment.CohortID {
		return nil, fmt.Errorf("checklist item %w", models.ErrNotFound)
	}

	row := &models.ChecklistProgress{
		EnrollmentID:    enrollment.ID,
		ChecklistItemID: req.ChecklistItemID,
		IsDone:          req.IsDone,
	}
	if err := s.checklistRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	row.UpdatedAt = s.now()

	return row, nil
}

// latestEnrollment maps a missing enrollment to models.ErrNoEnrollment
func (s *studentService) latestEnrollment(ctx context.Context, userID int) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetLatestByUser(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNoEnrollment
	}
	return enrollment, err
}

// ownedEnrollment returns the enrollment when it belongs to userID
func (s *studentService) ownedEnrollment(ctx context.Context, userID, enrollmentID int) (*models.Enrollment, error) {
	return loadOwnedEnrollment(ctx, s.enrollmentRepo, userID, enrollmentID)
}

// checklistState loads the items of weeks grouped by week and the done set of the enrollment
func (s *studentService) checklistState(ctx context.Context, enrollmentID int, weeks []models.Week) (map[int][]models.ChecklistItem, map[int]bool, error) {
	return loadChecklistState(ctx, s.weekRepo, s.checklistRepo, enrollmentID, weeks)
}

func loadOwnedEnrollment(ctx context.Context, repo EnrollmentRepository, userID, enrollmentID int) (*models.Enrollment, error) {
	enrollment, err := repo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	return enrollment, nil
}

func loadChecklistState(
	ctx context.Context,
	weekRepo WeekRepository,
	checklistRepo ChecklistProgressRepository,
	enrollmentID int,
	weeks []models.Week,
) (map[int][]models.ChecklistItem, map[int]bool, error) {
	weekIDs := make([]int, len(weeks))
	for i, week := range weeks {
		weekIDs[i] = week.ID
	}

	items, err := weekRepo.ListChecklistItems(ctx, weekIDs)
	if err != nil {
		return nil, nil, err
	}
	byWeek := make(map[int][]models.ChecklistItem, len(weeks))
	for _, item := range items {
		byWeek[item.WeekID] = append(byWeek[item.WeekID], item)
	}

	rows, err := checklistRepo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, nil, err
	}

	return byWeek, progress.DoneSet(rows), nil
}
