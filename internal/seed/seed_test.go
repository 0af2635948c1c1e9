package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore keeps seeded rows in memory and implements every repository the seeder uses
type fakeStore struct {
	users       map[string]*models.User
	cohorts     map[string]*models.Cohort
	weeks       []models.Week
	items       []models.ChecklistItem
	assets      []models.WeekAsset
	enrollments []models.Enrollment
	progress    []models.ChecklistProgress
	submissions []models.Submission
	nextID      int

	createUserErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*models.User{},
		cohorts: map[string]*models.Cohort{},
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %w", models.ErrNotFound)
}

func (f *fakeStore) Create(ctx context.Context, user *models.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	user.ID = f.id()
	f.users[user.Email] = user
	return nil
}

func (f *fakeStore) GetActiveByCode(ctx context.Context, code string) (*models.Cohort, error) {
	if c, ok := f.cohorts[code]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("cohort %w", models.ErrNotFound)
}

func (f *fakeStore) CreateWithWeeks(ctx context.Context, cohort *models.Cohort, weeks []models.Week) error {
	cohort.ID = f.id()
	for i := range weeks {
		weeks[i].ID = f.id()
		weeks[i].CohortID = cohort.ID
		f.weeks = append(f.weeks, weeks[i])
	}
	f.cohorts[*cohort.EnrollmentCode] = cohort
	return nil
}

func (f *fakeStore) ListByCohort(ctx context.Context, cohortID int) ([]models.Week, error) {
	var weeks []models.Week
	for _, w := range f.weeks {
		if w.CohortID == cohortID {
			weeks = append(weeks, w)
		}
	}
	return weeks, nil
}

func (f *fakeStore) ListChecklistItems(ctx context.Context, weekIDs []int) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	for _, item := range f.items {
		for _, id := range weekIDs {
			if item.WeekID == id {
				items = append(items, item)
			}
		}
	}
	return items, nil
}

func (f *fakeStore) CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	item.ID = f.id()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeStore) CreateAsset(ctx context.Context, asset *models.WeekAsset) error {
	asset.ID = f.id()
	f.assets = append(f.assets, *asset)
	return nil
}

func (f *fakeStore) Join(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error {
	for _, e := range f.enrollments {
		if e.UserID == enrollment.UserID && e.CohortID == cohort.ID {
			return models.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = f.id()
	enrollment.CohortID = cohort.ID
	f.enrollments = append(f.enrollments, *enrollment)
	return nil
}

func (f *fakeStore) Upsert(ctx context.Context, progress *models.ChecklistProgress) error {
	f.progress = append(f.progress, *progress)
	return nil
}

func (f *fakeStore) Save(ctx context.Context, sub *models.Submission, files []models.SubmissionFile) error {
	sub.ID = f.id()
	f.submissions = append(f.submissions, *sub)
	return nil
}

func newTestSeeder(store *fakeStore, now time.Time) *Seeder {
	s := New(Repositories{
		Users:       store,
		Cohorts:     store,
		Weeks:       store,
		Enrollments: store,
		Checklist:   store,
		Submissions: store,
	}, zap.NewNop())
	s.now = func() time.Time { return now }
	s.cost = bcrypt.MinCost
	return s
}

func TestSeeder_Run(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()

	require.NoError(t, newTestSeeder(store, now).Run(context.Background()))

	t.Run("users", func(t *testing.T) {
		require.Len(t, store.users, 3)
		admin := store.users[AdminEmail]
		require.NotNil(t, admin)
		assert.Equal(t, models.RoleAdmin, admin.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(adminPassword)))
		assert.Equal(t, "en", store.users["student2@example.com"].PreferredLocale)
	})

	t.Run("cohort and weeks", func(t *testing.T) {
		cohort := store.cohorts[CohortCode]
		require.NotNil(t, cohort)
		assert.Equal(t, now.AddDate(0, 0, -7), cohort.StartDate)
		require.NotNil(t, cohort.Capacity)
		assert.Equal(t, cohortCapacity, *cohort.Capacity)

		require.Len(t, store.weeks, models.WeeksPerCohort)
		for i, w := range store.weeks {
			assert.Equal(t, i+1, w.WeekNumber)
			require.NotNil(t, w.Deadline)
			assert.Equal(t, cohort.StartDate.AddDate(0, 0, 7*(i+1)), *w.Deadline)
		}
		assert.Len(t, store.items, 6+5+4+5)
		assert.Len(t, store.assets, 3+2+2+2)
	})

	t.Run("enrollments and progress", func(t *testing.T) {
		require.Len(t, store.enrollments, 2)
		assert.Equal(t, models.TrackGroup, store.enrollments[0].Track)
		assert.Equal(t, models.TrackPremium, store.enrollments[1].Track)

		assert.Len(t, store.progress, 6)
		for _, p := range store.progress {
			assert.True(t, p.IsDone)
			assert.Equal(t, store.enrollments[0].ID, p.EnrollmentID)
		}

		require.Len(t, store.submissions, 1)
		sub := store.submissions[0]
		assert.Equal(t, models.StatusCompleted, sub.Status)
		assert.Equal(t, store.weeks[0].ID, sub.WeekID)
		require.NotNil(t, sub.SubmittedAt)
		assert.Equal(t, now.AddDate(0, 0, -1), *sub.SubmittedAt)
	})
}

func TestSeeder_RunTwice(t *testing.T) {
	store := newFakeStore()
	seeder := newTestSeeder(store, time.Now())

	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	assert.Len(t, store.users, 3)
	assert.Len(t, store.cohorts, 1)
	assert.Len(t, store.weeks, models.WeeksPerCohort)
	assert.Len(t, store.items, 20)
	assert.Len(t, store.enrollments, 2)
	assert.Len(t, store.progress, 6)
	assert.Len(t, store.submissions, 1)
}

func TestSeeder_RunUserError(t *testing.T) {
	store := newFakeStore()
	store.createUserErr = errors.New("db down")

	err := newTestSeeder(store, time.Now()).Run(context.Background())

	assert.EqualError(t, err, "db down")
	assert.Empty(t, store.cohorts)
}
