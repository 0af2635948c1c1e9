package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/internal/models"
	"go.uber.org/zap"
)

// cohortRepository implements CohortRepository
type cohortRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCohortRepository creates a new cohort repository
func NewCohortRepository(db *sql.DB, logger *zap.Logger) *cohortRepository {
	return &cohortRepository{
		db:     db,
		logger: logger,
	}
}

const cohortColumns = `c.id, c.name, c.start_date, c.enrollment_code, c.capacity, c.is_active, c.created_at`

func scanCohort(row interface{ Scan(...any) error }, extra ...any) (*models.Cohort, error) {
	var (
		cohort   models.Cohort
		code     sql.NullString
		capacity sql.NullInt64
	)
	dest := append([]any{
		&cohort.ID,
		&cohort.Name,
		&cohort.StartDate,
		&code,
		&capacity,
		&cohort.IsActive,
		&cohort.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if code.Valid {
		cohort.EnrollmentCode = &code.String
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		cohort.Capacity = &c
	}
	return &cohort, nil
}

// List returns all cohorts, newest first, with their participant counts
func (r *cohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	query := `
		SELECT ` + cohortColumns + `, COUNT(e.id)
		FROM cohorts c
		LEFT JOIN enrollments e ON e.cohort_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list cohorts", zap.Error(err))
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	defer rows.Close()

	cohorts := make([]models.Cohort, 0)
	for rows.Next() {
		var count int
		cohort, err := scanCohort(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohort.ParticipantCount = count
		cohorts = append(cohorts, *cohort)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohorts: %w", err)
	}

	return cohorts, nil
}

// GetByID retrieves a cohort by ID
func (r *cohortRepository) GetByID(ctx context.Context, id int) (*models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts c WHERE c.id = ?`

	cohort, err := scanCohort(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cohort %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get cohort", zap.Error(err), zap.Int("cohortId", id))
		return nil, fmt.Errorf("failed to get cohort: %w", err)
	}

	return cohort, nil
}

// GetActiveByCode retrieves an active cohort by its enrollment code
func (r *cohortRepository) GetActiveByCode(ctx context.Context, code string) (*models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts c WHERE c.enrollment_code = ? AND c.is_active = TRUE`

	cohort, err := scanCohort(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cohort %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get cohort by code", zap.Error(err))
		return nil, fmt.Errorf("failed to get cohort by code: %w", err)
	}

	return cohort, nil
}

// CreateWithWeeks inserts the cohort and its weeks in one transaction and fills their IDs
func (r *cohortRepository) CreateWithWeeks(ctx context.Context, cohort *models.Cohort, weeks []models.Week) error {
	cohortQuery := `
		INSERT INTO cohorts (name, start_date, enrollment_code, capacity, is_active)
		VALUES (?, ?, ?, ?, ?)
	`
	weekQuery := `
		INSERT INTO weeks (cohort_id, week_number, title, description, video_url, deadline)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, cohortQuery,
			cohort.Name, cohort.StartDate, cohort.EnrollmentCode, cohort.Capacity, cohort.IsActive)
		if isDuplicateKey(err) {
			return models.ErrCodeExists
		}
		if err != nil {
			return fmt.Errorf("failed to create cohort: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		cohort.ID = int(id)

		for i := range weeks {
			weeks[i].CohortID = cohort.ID
			result, err := tx.ExecContext(ctx, weekQuery,
				cohort.ID, weeks[i].WeekNumber, weeks[i].Title, weeks[i].Description, weeks[i].VideoURL, weeks[i].Deadline)
			if err != nil {
				return fmt.Errorf("failed to create week %d: %w", weeks[i].WeekNumber, err)
			}
			weekID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get last insert id: %w", err)
			}
			weeks[i].ID = int(weekID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, models.ErrCodeExists) {
		r.logger.Error("failed to create cohort with weeks", zap.Error(err), zap.String("name", cohort.Name))
	}
	return err
}

// Update stores the editable fields of a cohort
func (r *cohortRepository) Update(ctx context.Context, cohort *models.Cohort) error {
	query := `
		UPDATE cohorts
		SET name = ?, enrollment_code = ?, capacity = ?, is_active = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, cohort.Name, cohort.EnrollmentCode, cohort.Capacity, cohort.IsActive, cohort.ID)
	if isDuplicateKey(err) {
		return models.ErrCodeExists
	}
	if err != nil {
		r.logger.Error("failed to update cohort", zap.Error(err), zap.Int("cohortId", cohort.ID))
		return fmt.Errorf("failed to update cohort: %w", err)
	}

	return nil
}

// Counts returns the number of all cohorts and of active ones
func (r *cohortRepository) Counts(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM cohorts`

	var total, active int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		r.logger.Error("failed to count cohorts", zap.Error(err))
		return 0, 0, fmt.Errorf("failed to count cohorts: %w", err)
	}

	return total, active, nil
}
