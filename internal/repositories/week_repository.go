package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/businesscontrol/portal/internal/models"
	"go.uber.org/zap"
)

// weekRepository implements WeekRepository
type weekRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWeekRepository creates a new week repository
func NewWeekRepository(db *sql.DB, logger *zap.Logger) *weekRepository {
	return &weekRepository{
		db:     db,
		logger: logger,
	}
}

const weekColumns = `id, cohort_id, week_number, title, description, video_url, deadline`

func scanWeek(row interface{ Scan(...any) error }) (*models.Week, error) {
	var (
		week     models.Week
		deadline sql.NullTime
	)
	err := row.Scan(
		&week.ID,
		&week.CohortID,
		&week.WeekNumber,
		&week.Title,
		&week.Description,
		&week.VideoURL,
		&deadline,
	)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		week.Deadline = &deadline.Time
	}
	return &week, nil
}

// ListByCohort returns the weeks of a cohort ordered by week number
func (r *weekRepository) ListByCohort(ctx context.Context, cohortID int) ([]models.Week, error) {
	query := `SELECT ` + weekColumns + ` FROM weeks WHERE cohort_id = ? ORDER BY week_number`

	rows, err := r.db.QueryContext(ctx, query, cohortID)
	if err != nil {
		r.logger.Error("failed to list weeks", zap.Error(err), zap.Int("cohortId", cohortID))
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	weeks := make([]models.Week, 0, models.WeeksPerCohort)
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, *week)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weeks: %w", err)
	}

	return weeks, nil
}

// GetByCohortAndNumber retrieves the week with the given number of a cohort
func (r *weekRepository) GetByCohortAndNumber(ctx context.Context, cohortID, weekNumber int) (*models.Week, error) {
	query := `SELECT ` + weekColumns + ` FROM weeks WHERE cohort_id = ? AND week_number = ?`

	week, err := scanWeek(r.db.QueryRowContext(ctx, query, cohortID, weekNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("week %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}

	return week, nil
}

// GetByID retrieves a week by ID
func (r *weekRepository) GetByID(ctx context.Context, id int) (*models.Week, error) {
	query := `SELECT ` + weekColumns + ` FROM weeks WHERE id = ?`

	week, err := scanWeek(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("week %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}

	return week, nil
}

// UpdateContent stores the title, description, video and deadline of a week
func (r *weekRepository) UpdateContent(ctx context.Context, week *models.Week) error {
	query := `UPDATE weeks SET title = ?, description = ?, video_url = ?, deadline = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, week.Title, week.Description, week.VideoURL, week.Deadline, week.ID); err != nil {
		r.logger.Error("failed to update week", zap.Error(err), zap.Int("weekId", week.ID))
		return fmt.Errorf("failed to update week: %w", err)
	}

	return nil
}

// ListChecklistItems returns the checklist items of the given weeks ordered by week and sort order
func (r *weekRepository) ListChecklistItems(ctx context.Context, weekIDs []int) ([]models.ChecklistItem, error) {
	items := make([]models.ChecklistItem, 0)
	if len(weekIDs) == 0 {
		return items, nil
	}

	query := `
		SELECT id, week_id, text, sort_order, is_required
		FROM checklist_items
		WHERE week_id IN (` + placeholders(len(weekIDs)) + `)
		ORDER BY week_id, sort_order, id
	`

	rows, err := r.db.QueryContext(ctx, query, intArgs(weekIDs)...)
	if err != nil {
		r.logger.Error("failed to list checklist items", zap.Error(err))
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.WeekID, &item.Text, &item.SortOrder, &item.IsRequired); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist items: %w", err)
	}

	return items, nil
}

// GetChecklistItemCohortID returns the cohort that owns a checklist item
func (r *weekRepository) GetChecklistItemCohortID(ctx context.Context, itemID int) (int, error) {
	query := `
		SELECT w.cohort_id
		FROM checklist_items ci
		JOIN weeks w ON w.id = ci.week_id
		WHERE ci.id = ?
	`

	var cohortID int
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&cohortID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checklist item %w", models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get checklist item: %w", err)
	}

	return cohortID, nil
}

// CreateChecklistItem inserts a checklist item
func (r *weekRepository) CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	query := `INSERT INTO checklist_items (week_id, text, sort_order, is_required) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, item.WeekID, item.Text, item.SortOrder, item.IsRequired)
	if err != nil {
		return fmt.Errorf("failed to create checklist item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = int(id)

	return nil
}

// ListAssets returns the downloadable assets of a week
func (r *weekRepository) ListAssets(ctx context.Context, weekID int) ([]models.WeekAsset, error) {
	query := `SELECT id, week_id, title, url, type FROM week_assets WHERE week_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, weekID)
	if err != nil {
		r.logger.Error("failed to list week assets", zap.Error(err), zap.Int("weekId", weekID))
		return nil, fmt.Errorf("failed to list week assets: %w", err)
	}
	defer rows.Close()

	assets := make([]models.WeekAsset, 0)
	for rows.Next() {
		var asset models.WeekAsset
		if err := rows.Scan(&asset.ID, &asset.WeekID, &asset.Title, &asset.URL, &asset.Type); err != nil {
			return nil, fmt.Errorf("failed to scan week asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating week assets: %w", err)
	}

	return assets, nil
}

// CreateAsset inserts a week asset
func (r *weekRepository) CreateAsset(ctx context.Context, asset *models.WeekAsset) error {
	query := `INSERT INTO week_assets (week_id, title, url, type) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, asset.WeekID, asset.Title, asset.URL, asset.Type)
	if err != nil {
		return fmt.Errorf("failed to create week asset: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	asset.ID = int(id)

	return nil
}
