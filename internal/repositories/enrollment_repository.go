package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/internal/models"
	"go.uber.org/zap"
)

// enrollmentRepository implements EnrollmentRepository
type enrollmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB, logger *zap.Logger) *enrollmentRepository {
	return &enrollmentRepository{
		db:     db,
		logger: logger,
	}
}

const enrollmentColumns = `id, user_id, cohort_id, track, created_at`

func scanEnrollment(row interface{ Scan(...any) error }) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := row.Scan(&e.ID, &e.UserID, &e.CohortID, &e.Track, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Join enrolls a user into a cohort.
//
// The cohort row is locked while the capacity is checked so concurrent joins cannot overfill it.
// Returns models.ErrCohortFull or models.ErrAlreadyEnrolled when the enrollment is refused.
func (r *enrollmentRepository) Join(ctx context.Context, cohort *models.Cohort, enrollment *models.Enrollment) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var lockedID int
		if err := tx.QueryRowContext(ctx, `SELECT id FROM cohorts WHERE id = ? FOR UPDATE`, cohort.ID).Scan(&lockedID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("cohort %w", models.ErrNotFound)
			}
			return fmt.Errorf("failed to lock cohort: %w", err)
		}

		var enrolled int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments WHERE cohort_id = ?`, cohort.ID).Scan(&enrolled); err != nil {
			return fmt.Errorf("failed to count enrollments: %w", err)
		}
		if cohort.IsFull(enrolled) {
			return models.ErrCohortFull
		}

		var exists bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND cohort_id = ?)`
		if err := tx.QueryRowContext(ctx, existsQuery, enrollment.UserID, cohort.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if exists {
			return models.ErrAlreadyEnrolled
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO enrollments (user_id, cohort_id, track) VALUES (?, ?, ?)`,
			enrollment.UserID, cohort.ID, enrollment.Track)
		if isDuplicateKey(err) {
			return models.ErrAlreadyEnrolled
		}
		if err != nil {
			return fmt.Errorf("failed to create enrollment: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		enrollment.ID = int(id)
		enrollment.CohortID = cohort.ID
		return nil
	})
	if err != nil && !errors.Is(err, models.ErrCohortFull) && !errors.Is(err, models.ErrAlreadyEnrolled) {
		r.logger.Error("failed to join cohort", zap.Error(err), zap.Int("cohortId", cohort.ID), zap.Int("userId", enrollment.UserID))
	}
	return err
}

// GetByID retrieves an enrollment by ID
func (r *enrollmentRepository) GetByID(ctx context.Context, id int) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = ?`

	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get enrollment", zap.Error(err), zap.Int("enrollmentId", id))
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// GetLatestByUser retrieves the most recent enrollment of a user
func (r *enrollmentRepository) GetLatestByUser(ctx context.Context, userID int) (*models.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	enrollment, err := scanEnrollment(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get latest enrollment", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get latest enrollment: %w", err)
	}

	return enrollment, nil
}

// UpdateTrack changes the track of an enrollment
func (r *enrollmentRepository) UpdateTrack(ctx context.Context, id int, track models.Track) error {
	query := `UPDATE enrollments SET track = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, track, id)
	if err != nil {
		r.logger.Error("failed to update track", zap.Error(err), zap.Int("enrollmentId", id))
		return fmt.Errorf("failed to update track: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// unchanged track also reports 0 rows
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of enrollments across all cohorts
func (r *enrollmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		r.logger.Error("failed to count enrollments", zap.Error(err))
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

// ListRecent returns the latest enrollments with user and cohort names
func (r *enrollmentRepository) ListRecent(ctx context.Context, limit int) ([]models.RecentEnrollment, error) {
	query := `
		SELECT e.id, COALESCE(u.name, ''), COALESCE(u.email, ''), c.name, e.track, e.created_at
		FROM enrollments e
		LEFT JOIN users u ON u.id = e.user_id
		JOIN cohorts c ON c.id = e.cohort_id
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to list recent enrollments", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent enrollments: %w", err)
	}
	defer rows.Close()

	result := make([]models.RecentEnrollment, 0, limit)
	for rows.Next() {
		var item models.RecentEnrollment
		if err := rows.Scan(&item.EnrollmentID, &item.UserName, &item.UserEmail, &item.CohortName, &item.Track, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent enrollment: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent enrollments: %w", err)
	}

	return result, nil
}

// ListParticipants returns the enrollments of a cohort with their users and submissions.
//
// Track and search filters are applied in SQL, status filters are left to the caller.
func (r *enrollmentRepository) ListParticipants(ctx context.Context, cohortID int, filter models.ParticipantFilter) ([]models.ParticipantRecord, error) {
	var (
		conditions = []string{"e.cohort_id = ?"}
		args       = []any{cohortID}
	)
	if filter.Track != "" {
		conditions = append(conditions, "e.track = ?")
		args = append(args, filter.Track)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conditions = append(conditions, "(LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	query := `
		SELECT e.id, e.user_id, u.name, u.email, e.track, e.created_at
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.created_at DESC, e.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list participants", zap.Error(err), zap.Int("cohortId", cohortID))
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	records := make([]models.ParticipantRecord, 0)
	index := make(map[int]int)
	for rows.Next() {
		var rec models.ParticipantRecord
		if err := rows.Scan(&rec.EnrollmentID, &rec.UserID, &rec.Name, &rec.Email, &rec.Track, &rec.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		index[rec.EnrollmentID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int, len(records))
	for i, rec := range records {
		ids[i] = rec.EnrollmentID
	}

	subQuery := `
		SELECT s.id, s.enrollment_id, s.week_id, s.status, s.submitted_at, s.updated_at, w.week_number
		FROM submissions s
		JOIN weeks w ON w.id = s.week_id
		WHERE s.enrollment_id IN (` + placeholders(len(ids)) + `)
		ORDER BY w.week_number
	`

	subRows, err := r.db.QueryContext(ctx, subQuery, intArgs(ids)...)
	if err != nil {
		r.logger.Error("failed to list participant submissions", zap.Error(err), zap.Int("cohortId", cohortID))
		return nil, fmt.Errorf("failed to list participant submissions: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var (
			sub         models.Submission
			submittedAt sql.NullTime
		)
		if err := subRows.Scan(&sub.ID, &sub.EnrollmentID, &sub.WeekID, &sub.Status, &submittedAt, &sub.UpdatedAt, &sub.WeekNumber); err != nil {
			return nil, fmt.Errorf("failed to scan participant submission: %w", err)
		}
		if submittedAt.Valid {
			t := submittedAt.Time
			sub.SubmittedAt = &t
		}
		if i, ok := index[sub.EnrollmentID]; ok {
			records[i].Submissions = append(records[i].Submissions, sub)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant submissions: %w", err)
	}

	return records, nil
}

// GetParticipant returns one enrollment with its user, cohort name included
func (r *enrollmentRepository) GetParticipant(ctx context.Context, enrollmentID int) (*models.ParticipantDetail, error) {
	query := `
		SELECT e.id, e.cohort_id, c.name, e.user_id, u.name, u.email, e.track, e.created_at
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		JOIN cohorts c ON c.id = e.cohort_id
		WHERE e.id = ?
	`

	var detail models.ParticipantDetail
	err := r.db.QueryRowContext(ctx, query, enrollmentID).Scan(
		&detail.EnrollmentID,
		&detail.CohortID,
		&detail.CohortName,
		&detail.UserID,
		&detail.Name,
		&detail.Email,
		&detail.Track,
		&detail.EnrolledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enrollment %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get participant", zap.Error(err), zap.Int("enrollmentId", enrollmentID))
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &detail, nil
}

// ListDueReminders returns enrollments of active cohorts with a week deadline in (from, to]
// that have not handed in that week yet
func (r *enrollmentRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.DueReminder, error) {
	query := `
		SELECT e.id, u.id, u.email, u.name, u.preferred_locale, c.name, w.id, w.week_number, w.title, w.deadline
		FROM enrollments e
		JOIN cohorts c ON c.id = e.cohort_id AND c.is_active = TRUE
		JOIN users u ON u.id = e.user_id
		JOIN weeks w ON w.cohort_id = c.id
		LEFT JOIN submissions s ON s.enrollment_id = e.id AND s.week_id = w.id
		WHERE w.deadline > ? AND w.deadline <= ?
		  AND (s.id IS NULL OR s.status IN ('NOT_STARTED', 'IN_PROGRESS'))
		ORDER BY w.deadline, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		r.logger.Error("failed to list due reminders", zap.Error(err))
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]models.DueReminder, 0)
	for rows.Next() {
		var d models.DueReminder
		err := rows.Scan(
			&d.EnrollmentID,
			&d.UserID,
			&d.Email,
			&d.Name,
			&d.Locale,
			&d.CohortName,
			&d.WeekID,
			&d.WeekNumber,
			&d.WeekTitle,
			&d.Deadline,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due reminder: %w", err)
		}
		reminders = append(reminders, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due reminders: %w", err)
	}

	return reminders, nil
}
