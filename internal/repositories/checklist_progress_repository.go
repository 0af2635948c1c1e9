package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/businesscontrol/portal/internal/models"
)

// checklistProgressRepository implements ChecklistProgressRepository
type checklistProgressRepository struct {
	db *sql.DB
}

// NewChecklistProgressRepository creates a new checklist progress repository
func NewChecklistProgressRepository(db *sql.DB) *checklistProgressRepository {
	return &checklistProgressRepository{
		db: db,
	}
}

// Upsert stores the done flag of a checklist item for an enrollment
func (r *checklistProgressRepository) Upsert(ctx context.Context, progress *models.ChecklistProgress) error {
	query := `
		INSERT INTO checklist_progress (enrollment_id, checklist_item_id, is_done)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), is_done = VALUES(is_done)
	`

	result, err := r.db.ExecContext(ctx, query, progress.EnrollmentID, progress.ChecklistItemID, progress.IsDone)
	if err != nil {
		return fmt.Errorf("failed to save checklist progress: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	progress.ID = int(id)

	return nil
}

// ListByEnrollment returns all checklist progress rows of an enrollment
func (r *checklistProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.ChecklistProgress, error) {
	query := `
		SELECT id, enrollment_id, checklist_item_id, is_done, updated_at
		FROM checklist_progress
		WHERE enrollment_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist progress: %w", err)
	}
	defer rows.Close()

	result := make([]models.ChecklistProgress, 0)
	for rows.Next() {
		var p models.ChecklistProgress
		if err := rows.Scan(&p.ID, &p.EnrollmentID, &p.ChecklistItemID, &p.IsDone, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist progress: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist progress: %w", err)
	}

	return result, nil
}
