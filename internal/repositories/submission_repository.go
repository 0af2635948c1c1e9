package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/progress"
	"go.uber.org/zap"
)

// submissionRepository implements SubmissionRepository
type submissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *submissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

const submissionColumns = `s.id, s.enrollment_id, s.week_id, s.text_answer, s.status, s.submitted_at, s.created_at, s.updated_at`

func scanSubmission(row interface{ Scan(...any) error }, extra ...any) (*models.Submission, error) {
	var (
		sub         models.Submission
		submittedAt sql.NullTime
	)
	dest := append([]any{
		&sub.ID,
		&sub.EnrollmentID,
		&sub.WeekID,
		&sub.TextAnswer,
		&sub.Status,
		&submittedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if submittedAt.Valid {
		sub.SubmittedAt = &submittedAt.Time
	}
	sub.Files = make([]models.SubmissionFile, 0)
	return &sub, nil
}

// GetByEnrollmentAndWeek retrieves the submission of an enrollment for a week, files included
func (r *submissionRepository) GetByEnrollmentAndWeek(ctx context.Context, enrollmentID, weekID int) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.enrollment_id = ? AND s.week_id = ?`

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, enrollmentID, weekID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get submission", zap.Error(err), zap.Int("enrollmentId", enrollmentID), zap.Int("weekId", weekID))
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if err := r.attachFiles(ctx, []*models.Submission{sub}); err != nil {
		return nil, err
	}

	return sub, nil
}

// GetByID retrieves a submission by ID without its files
func (r *submissionRepository) GetByID(ctx context.Context, id int) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.id = ?`

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get submission", zap.Error(err), zap.Int("submissionId", id))
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return sub, nil
}

// Save inserts or updates the submission of (enrollment, week) and appends files to it.
//
// The stored row is locked first, if its status cannot move to sub.Status models.ErrAlreadySubmitted is returned.
// The submission ID and the file IDs are filled in place.
func (r *submissionRepository) Save(ctx context.Context, sub *models.Submission, files []models.SubmissionFile) error {
	lockQuery := `SELECT status FROM submissions WHERE enrollment_id = ? AND week_id = ? FOR UPDATE`
	upsertQuery := `
		INSERT INTO submissions (enrollment_id, week_id, text_answer, status, submitted_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			text_answer = VALUES(text_answer),
			status = VALUES(status),
			submitted_at = VALUES(submitted_at)
	`
	fileQuery := `
		INSERT INTO submission_files (submission_id, file_name, file_url, file_type, size)
		VALUES (?, ?, ?, ?, ?)
	`

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var current models.SubmissionStatus
		err := tx.QueryRowContext(ctx, lockQuery, sub.EnrollmentID, sub.WeekID).Scan(&current)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to lock submission: %w", err)
		case !progress.CanTransition(current, sub.Status):
			return models.ErrAlreadySubmitted
		}

		result, err := tx.ExecContext(ctx, upsertQuery, sub.EnrollmentID, sub.WeekID, sub.TextAnswer, sub.Status, sub.SubmittedAt)
		if err != nil {
			return fmt.Errorf("failed to save submission: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		sub.ID = int(id)

		for i := range files {
			files[i].SubmissionID = sub.ID
			result, err := tx.ExecContext(ctx, fileQuery, sub.ID, files[i].FileName, files[i].FileURL, files[i].FileType, files[i].Size)
			if err != nil {
				return fmt.Errorf("failed to save submission file: %w", err)
			}
			fileID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get last insert id: %w", err)
			}
			files[i].ID = int(fileID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, models.ErrAlreadySubmitted) {
		r.logger.Error("failed to save submission", zap.Error(err), zap.Int("enrollmentId", sub.EnrollmentID), zap.Int("weekId", sub.WeekID))
	}
	return err
}

// ListByEnrollment returns all submissions of an enrollment ordered by week number, files included
func (r *submissionRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.SubmissionHistoryItem, error) {
	query := `
		SELECT ` + submissionColumns + `, w.week_number, w.title
		FROM submissions s
		JOIN weeks w ON w.id = s.week_id
		WHERE s.enrollment_id = ?
		ORDER BY w.week_number
	`

	rows, err := r.db.QueryContext(ctx, query, enrollmentID)
	if err != nil {
		r.logger.Error("failed to list submissions", zap.Error(err), zap.Int("enrollmentId", enrollmentID))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	items := make([]models.SubmissionHistoryItem, 0)
	for rows.Next() {
		var (
			weekNumber int
			weekTitle  string
		)
		sub, err := scanSubmission(rows, &weekNumber, &weekTitle)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.WeekNumber = weekNumber
		items = append(items, models.SubmissionHistoryItem{Submission: *sub, WeekTitle: weekTitle})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	subs := make([]*models.Submission, len(items))
	for i := range items {
		subs[i] = &items[i].Submission
	}
	if err := r.attachFiles(ctx, subs); err != nil {
		return nil, err
	}

	return items, nil
}

// attachFiles loads the files of the given submissions in one query
func (r *submissionRepository) attachFiles(ctx context.Context, subs []*models.Submission) error {
	if len(subs) == 0 {
		return nil
	}

	ids := make([]int, len(subs))
	byID := make(map[int]*models.Submission, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
		byID[sub.ID] = sub
	}

	query := `
		SELECT id, submission_id, file_name, file_url, file_type, size, created_at
		FROM submission_files
		WHERE submission_id IN (` + placeholders(len(ids)) + `)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, intArgs(ids)...)
	if err != nil {
		r.logger.Error("failed to list submission files", zap.Error(err))
		return fmt.Errorf("failed to list submission files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.SubmissionFile
		if err := rows.Scan(&f.ID, &f.SubmissionID, &f.FileName, &f.FileURL, &f.FileType, &f.Size, &f.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan submission file: %w", err)
		}
		if sub, ok := byID[f.SubmissionID]; ok {
			sub.Files = append(sub.Files, f)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating submission files: %w", err)
	}

	return nil
}

// UpdateStatus moves a submission to status while holding a lock on its row.
//
// Setting the status it already has is a no-op. If the stored status cannot move to status, models.ErrInvalidTransition is returned.
func (r *submissionRepository) UpdateStatus(ctx context.Context, id int, status models.SubmissionStatus) error {
	lockQuery := `SELECT status FROM submissions WHERE id = ? FOR UPDATE`
	updateQuery := `UPDATE submissions SET status = ? WHERE id = ?`

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var current models.SubmissionStatus
		err := tx.QueryRowContext(ctx, lockQuery, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("submission %w", models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock submission: %w", err)
		}
		if current == status {
			return nil
		}
		if !progress.CanTransition(current, status) {
			return models.ErrInvalidTransition
		}

		if _, err := tx.ExecContext(ctx, updateQuery, status, id); err != nil {
			return fmt.Errorf("failed to update submission status: %w", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrInvalidTransition) {
		r.logger.Error("failed to update submission status", zap.Error(err), zap.Int("submissionId", id))
	}
	return err
}

// CountByStatus returns the number of submissions in the given status
func (r *submissionRepository) CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions WHERE status = ?`, status).Scan(&count); err != nil {
		r.logger.Error("failed to count submissions", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// ListRecentSubmitted returns the latest handed in submissions with user name and week number
func (r *submissionRepository) ListRecentSubmitted(ctx context.Context, limit int) ([]models.RecentSubmission, error) {
	query := `
		SELECT s.id, s.enrollment_id, e.cohort_id, COALESCE(u.name, ''), w.week_number, s.status, s.submitted_at
		FROM submissions s
		JOIN enrollments e ON e.id = s.enrollment_id
		LEFT JOIN users u ON u.id = e.user_id
		JOIN weeks w ON w.id = s.week_id
		WHERE s.submitted_at IS NOT NULL
		ORDER BY s.submitted_at DESC, s.id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to list recent submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent submissions: %w", err)
	}
	defer rows.Close()

	result := make([]models.RecentSubmission, 0, limit)
	for rows.Next() {
		var item models.RecentSubmission
		err := rows.Scan(&item.SubmissionID, &item.EnrollmentID, &item.CohortID, &item.UserName, &item.WeekNumber, &item.Status, &item.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent submission: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent submissions: %w", err)
	}

	return result, nil
}
