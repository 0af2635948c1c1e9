package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/businesscontrol/portal/internal/models"
)

// adminNoteRepository implements AdminNoteRepository
type adminNoteRepository struct {
	db *sql.DB
}

// NewAdminNoteRepository creates a new admin note repository
func NewAdminNoteRepository(db *sql.DB) *adminNoteRepository {
	return &adminNoteRepository{
		db: db,
	}
}

// Create inserts an admin note
func (r *adminNoteRepository) Create(ctx context.Context, note *models.AdminNote) error {
	query := `INSERT INTO admin_notes (enrollment_id, week_id, author_id, content) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, note.EnrollmentID, note.WeekID, note.AuthorID, note.Content)
	if err != nil {
		return fmt.Errorf("failed to create admin note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	note.ID = int(id)

	return nil
}

// ListByEnrollment returns the notes of an enrollment, newest first, with the week number when set
func (r *adminNoteRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]models.AdminNote, error) {
	query := `
		SELECT n.id, n.enrollment_id, n.week_id, n.author_id, n.content, n.created_at, w.week_number
		FROM admin_notes n
		LEFT JOIN weeks w ON w.id = n.week_id
		WHERE n.enrollment_id = ?
		ORDER BY n.created_at DESC, n.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.AdminNote, 0)
	for rows.Next() {
		var (
			note       models.AdminNote
			weekID     sql.NullInt64
			authorID   sql.NullInt64
			weekNumber sql.NullInt64
		)
		if err := rows.Scan(&note.ID, &note.EnrollmentID, &weekID, &authorID, &note.Content, &note.CreatedAt, &weekNumber); err != nil {
			return nil, fmt.Errorf("failed to scan admin note: %w", err)
		}
		note.WeekID = nullIntPtr(weekID)
		note.AuthorID = nullIntPtr(authorID)
		note.WeekNumber = nullIntPtr(weekNumber)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin notes: %w", err)
	}

	return notes, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
