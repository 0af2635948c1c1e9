package repositories

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/businesscontrol/portal/internal/models"
)

// userTokenRepository implements UserTokenRepository.
//
// Refresh tokens are bearer credentials, so only their SHA-256 digest is stored.
type userTokenRepository struct {
	db *sql.DB
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB) *userTokenRepository {
	return &userTokenRepository{
		db: db,
	}
}

// hashToken returns the hex digest stored in place of a refresh token
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Create stores the digest of a refresh token
func (r *userTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_tokens (user_id, token_hash) VALUES (?, ?)`,
		userToken.UserID, hashToken(userToken.Token))
	if err != nil {
		return fmt.Errorf("failed to create user token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	userToken.ID = int(id)
	return nil
}

// GetByToken looks a refresh token up by its digest
func (r *userTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	userToken := &models.UserToken{Token: token}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id FROM user_tokens WHERE token_hash = ?`,
		hashToken(token),
	).Scan(&userToken.ID, &userToken.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("token %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}
	return userToken, nil
}

// UpdateToken swaps the digest of oldToken for the digest of newToken and restarts its lifetime.
// A token that was already rotated by a concurrent refresh no longer matches and yields ErrNotFound.
func (r *userTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_tokens
		SET token_hash = ?, created_at = CURRENT_TIMESTAMP
		WHERE token_hash = ? AND user_id = ?`,
		hashToken(newToken), hashToken(oldToken), userID)
	if err != nil {
		return fmt.Errorf("failed to rotate user token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token %w", models.ErrNotFound)
	}
	return nil
}

// DeleteByToken forgets a refresh token, a missing token is not an error
func (r *userTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE token_hash = ?`, hashToken(token)); err != nil {
		return fmt.Errorf("failed to delete user token: %w", err)
	}
	return nil
}

// DeleteExpiredTokens deletes the tokens issued at or before expiryTime and returns how many were removed
func (r *userTokenRepository) DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE created_at <= ?`, expiryTime)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
