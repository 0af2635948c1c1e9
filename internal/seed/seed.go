// Package seed fills an empty database with a demo cohort, an administrator and two students
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Demo accounts and cohort
const (
	AdminEmail      = "admin@businesscontrol.com"
	CohortCode      = "COHORT2024"
	cohortCapacity  = 30
	adminPassword   = "admin123"
	studentPassword = "student123"
)

// UserRepository is the interface that wraps the user lookups and inserts the seed needs
type UserRepository interface {
	// Method GetByEmail retrieves a user by email, returning an error wrapping models.ErrNotFound when missing.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method Create inserts a user and fills its ID.
	Create(ctx context.Context, user *models.User) error
}

// CohortRepository is the interface that wraps cohort creation
type CohortRepository interface {
	// Method GetActiveByCode retrieves an active cohort by its code, returning an error wrapping models.ErrNotFound when missing.
	GetActiveByCode(ctx context.Context, code string) (*models.Cohort, error)
	// Method CreateWithWeeks inserts a cohort and its weeks, filling their IDs.
	CreateWithWeeks(ctx context.Context, cohort *models.Cohort, weeks []models.Week) error
}

// WeekRepository is the interface that wraps week content inserts
type WeekRepository interface {
	// Method ListByCohort returns the weeks of a cohort ordered by number.
	ListByCohort(ctx context.Context, cohortID int) ([]models.Week, error)
	// Method ListChecklistItems returns the checklist items of the given weeks.
	ListChecklistItems(ctx context.Context, weekIDs []int) ([]models.ChecklistItem, error)
	// Method CreateChecklistItem inserts a checklist item and fills its ID.
	CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error
	// Method CreateAsset inserts a week asset and fills its ID.
	CreateAsset(ctx context.Context, asset *models.WeekAsset) error
}

// EnrollmentRepository is the interface that wraps enrollment creation
type EnrollmentRepository interface {
	// Method Join enrolls a user, returning models.ErrAlreadyEnrolled when the user is enrolled.
	Join(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error
}

// ChecklistProgressRepository is the interface that wraps checklist progress writes
type ChecklistProgressRepository interface {
	// Method Upsert stores the state of one checklist item.
	Upsert(ctx context.Context, progress *models.ChecklistProgress) error
}

// SubmissionRepository is the interface that wraps submission writes
type SubmissionRepository interface {
	// Method Save creates or updates a submission together with its files.
	Save(ctx context.Context, sub *models.Submission, files []models.SubmissionFile) error
}

// Repositories groups the stores the seeder writes to
type Repositories struct {
	Users       UserRepository
	Cohorts     CohortRepository
	Weeks       WeekRepository
	Enrollments EnrollmentRepository
	Checklist   ChecklistProgressRepository
	Submissions SubmissionRepository
}

// Seeder creates the demo data. Running it twice changes nothing.
type Seeder struct {
	repos  Repositories
	logger *zap.Logger
	now    func() time.Time
	cost   int
}

// New creates a new seeder
func New(repos Repositories, logger *zap.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		logger: logger,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

type demoUser struct {
	name     string
	email    string
	password string
	role     models.Role
	locale   string
}

var demoUsers = []demoUser{
	{"Admin User", AdminEmail, adminPassword, models.RoleAdmin, "he"},
	{"David Cohen", "student@example.com", studentPassword, models.RoleStudent, "he"},
	{"Sarah Levy", "student2@example.com", studentPassword, models.RoleStudent, "en"},
}

type demoWeek struct {
	title       string
	description string
	checklist   []models.ChecklistItem
	assets      []models.WeekAsset
}

const demoVideoURL = "https://www.youtube.com/embed/dQw4w9WgXcQ"

var demoWeeks = [models.WeeksPerCohort]demoWeek{
	{
		title:       "מיפוי המצב הנוכחי",
		description: "<h2>ברוכים הבאים לשבוע הראשון!</h2><p>נמפה את המצב הנוכחי של העסק ונגדיר את המדדים החשובים.</p>",
		checklist: []models.ChecklistItem{
			{Text: "צפיתי בסרטון השבועי", IsRequired: true},
			{Text: "הגדרתי 3-5 יעדים לעסק", IsRequired: true},
			{Text: "זיהיתי את המדדים החשובים", IsRequired: true},
			{Text: "מילאתי את תבנית מיפוי המצב", IsRequired: true},
			{Text: "קראתי את החומר הנוסף"},
			{Text: "שיתפתי בקבוצה (אופציונלי)"},
		},
		assets: []models.WeekAsset{
			{Title: "תבנית מיפוי מצב עסקי", URL: "/templates/mapping-template.xlsx", Type: models.AssetTemplate},
			{Title: "רשימת KPIs נפוצים", URL: "/templates/kpi-list.pdf", Type: models.AssetTemplate},
			{Title: "דוגמה למילוי התבנית", URL: "/templates/example-mapping.pdf", Type: models.AssetOther},
		},
	},
	{
		title:       "בניית מערכת המעקב",
		description: "<h2>שבוע 2: בניית מערכת המעקב</h2><p>נבחר כלי מעקב ונקים דשבורד אישי.</p>",
		checklist: []models.ChecklistItem{
			{Text: "צפיתי בסרטון השבועי", IsRequired: true},
			{Text: "בחרתי כלי מעקב", IsRequired: true},
			{Text: "בניתי דשבורד ראשוני", IsRequired: true},
			{Text: "הזנתי נתונים ראשוניים", IsRequired: true},
			{Text: "הגדרתי תזכורת שבועית"},
		},
		assets: []models.WeekAsset{
			{Title: "תבנית דשבורד", URL: "/templates/dashboard-template.xlsx", Type: models.AssetTemplate},
			{Title: "מדריך שימוש בתבנית", URL: "/templates/dashboard-guide.pdf", Type: models.AssetOther},
		},
	},
	{
		title:       "ניתוח והבנת הנתונים",
		description: "<h2>שבוע 3: ניתוח והבנת הנתונים</h2><p>נלמד לקרוא את הנתונים ולזהות מגמות.</p>",
		checklist: []models.ChecklistItem{
			{Text: "צפיתי בסרטון השבועי", IsRequired: true},
			{Text: "ניתחתי את הנתונים שאספתי", IsRequired: true},
			{Text: "זיהיתי לפחות מגמה אחת", IsRequired: true},
			{Text: "רשמתי 3 תובנות מהנתונים", IsRequired: true},
		},
		assets: []models.WeekAsset{
			{Title: "מדריך לניתוח נתונים", URL: "/templates/analysis-guide.pdf", Type: models.AssetTemplate},
			{Title: "דוח לדוגמה", URL: "/templates/sample-report.pdf", Type: models.AssetReport},
		},
	},
	{
		title:       "פעולה ותכנון להמשך",
		description: "<h2>שבוע 4: פעולה ותכנון להמשך</h2><p>נהפוך תובנות לתוכנית פעולה חודשית.</p>",
		checklist: []models.ChecklistItem{
			{Text: "צפיתי בסרטון השבועי", IsRequired: true},
			{Text: "בניתי תוכנית פעולה לחודש הקרוב", IsRequired: true},
			{Text: "הגדרתי 3 יעדים חודשיים", IsRequired: true},
			{Text: "קבעתי זמן שבועי קבוע למעקב", IsRequired: true},
			{Text: "מילאתי את משוב הקורס"},
		},
		assets: []models.WeekAsset{
			{Title: "תבנית תוכנית פעולה חודשית", URL: "/templates/monthly-plan.xlsx", Type: models.AssetTemplate},
			{Title: "צ'קליסט תחזוקה שבועית", URL: "/templates/maintenance-checklist.pdf", Type: models.AssetTemplate},
		},
	},
}

// Run creates whatever part of the demo data is missing
func (s *Seeder) Run(ctx context.Context) error {
	users := make(map[string]*models.User, len(demoUsers))
	for _, u := range demoUsers {
		user, err := s.ensureUser(ctx, u)
		if err != nil {
			return err
		}
		users[u.email] = user
	}

	cohort, created, err := s.ensureCohort(ctx)
	if err != nil {
		return err
	}
	if created {
		if err := s.createWeekContent(ctx, cohort); err != nil {
			return err
		}
	}

	first, err := s.ensureEnrollment(ctx, cohort, users["student@example.com"], models.TrackGroup)
	if err != nil {
		return err
	}
	if first != nil {
		if err := s.createDemoProgress(ctx, cohort, first); err != nil {
			return err
		}
	}
	if _, err := s.ensureEnrollment(ctx, cohort, users["student2@example.com"], models.TrackPremium); err != nil {
		return err
	}

	s.logger.Info("seed completed", zap.Int("cohortId", cohort.ID))
	return nil
}

// ensureUser returns the user with the demo email, creating it when missing
func (s *Seeder) ensureUser(ctx context.Context, u demoUser) (*models.User, error) {
	user, err := s.repos.Users.GetByEmail(ctx, u.email)
	if err == nil {
		s.logger.Debug("user exists, skipping", zap.String("email", u.email))
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user = &models.User{
		Name:            u.name,
		Email:           u.email,
		PasswordHash:    string(hash),
		Role:            u.role,
		PreferredLocale: u.locale,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("created user", zap.String("email", u.email), zap.String("role", u.role.String()))
	return user, nil
}

// ensureCohort returns the demo cohort and whether this run created it
func (s *Seeder) ensureCohort(ctx context.Context) (*models.Cohort, bool, error) {
	cohort, err := s.repos.Cohorts.GetActiveByCode(ctx, CohortCode)
	if err == nil {
		return cohort, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	// Started a week ago so the first deadline is today
	start := s.now().AddDate(0, 0, -7)
	code := CohortCode
	capacity := cohortCapacity
	cohort = &models.Cohort{
		Name:           "מחזור ינואר 2024",
		StartDate:      start,
		EnrollmentCode: &code,
		Capacity:       &capacity,
		IsActive:       true,
	}

	weeks := make([]models.Week, models.WeeksPerCohort)
	for i, w := range demoWeeks {
		deadline := start.AddDate(0, 0, 7*(i+1))
		weeks[i] = models.Week{
			WeekNumber:  i + 1,
			Title:       w.title,
			Description: w.description,
			VideoURL:    demoVideoURL,
			Deadline:    &deadline,
		}
	}

	if err := s.repos.Cohorts.CreateWithWeeks(ctx, cohort, weeks); err != nil {
		return nil, false, err
	}
	s.logger.Info("created cohort", zap.String("code", CohortCode), zap.Int("cohortId", cohort.ID))
	return cohort, true, nil
}

// createWeekContent adds checklists and assets to the weeks of a new cohort
func (s *Seeder) createWeekContent(ctx context.Context, cohort *models.Cohort) error {
	weeks, err := s.repos.Weeks.ListByCohort(ctx, cohort.ID)
	if err != nil {
		return err
	}

	for _, week := range weeks {
		if week.WeekNumber < 1 || week.WeekNumber > models.WeeksPerCohort {
			continue
		}
		content := demoWeeks[week.WeekNumber-1]
		for i, item := range content.checklist {
			item.WeekID = week.ID
			item.SortOrder = i + 1
			if err := s.repos.Weeks.CreateChecklistItem(ctx, &item); err != nil {
				return err
			}
		}
		for _, asset := range content.assets {
			asset.WeekID = week.ID
			if err := s.repos.Weeks.CreateAsset(ctx, &asset); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureEnrollment enrolls user on track and returns the new enrollment, or nil when it already existed
func (s *Seeder) ensureEnrollment(ctx context.Context, cohort *models.Cohort, user *models.User, track models.Track) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{UserID: user.ID, Track: track}
	err := s.repos.Enrollments.Join(ctx, cohort, enrollment)
	if errors.Is(err, models.ErrAlreadyEnrolled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("created enrollment", zap.String("email", user.Email), zap.String("track", string(track)))
	return enrollment, nil
}

// createDemoProgress completes the first week of an enrollment
func (s *Seeder) createDemoProgress(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error {
	weeks, err := s.repos.Weeks.ListByCohort(ctx, cohort.ID)
	if err != nil {
		return err
	}

	var first *models.Week
	for i := range weeks {
		if weeks[i].WeekNumber == 1 {
			first = &weeks[i]
			break
		}
	}
	if first == nil {
		return nil
	}

	items, err := s.repos.Weeks.ListChecklistItems(ctx, []int{first.ID})
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.repos.Checklist.Upsert(ctx, &models.ChecklistProgress{
			EnrollmentID:    enrollment.ID,
			ChecklistItemID: item.ID,
			IsDone:          true,
		}); err != nil {
			return err
		}
	}

	submittedAt := cohort.StartDate.AddDate(0, 0, 6)
	return s.repos.Submissions.Save(ctx, &models.Submission{
		EnrollmentID: enrollment.ID,
		WeekID:       first.ID,
		TextAnswer:   "הגדרתי את היעדים העיקריים של העסק שלי: הגדלת מחזור המכירות ב-20%, שיפור שימור לקוחות, והגברת הנוכחות הדיגיטלית.",
		Status:       models.StatusCompleted,
		SubmittedAt:  &submittedAt,
	}, nil)
}
