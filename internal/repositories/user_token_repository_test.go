package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserTokenTestRepository creates a user token repository with a mock database
func setupUserTokenTestRepository(t *testing.T) (*userTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewUserTokenRepository(db), mock, func() { db.Close() }
}

func TestUserTokenRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupUserTokenTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO user_tokens`).
		WithArgs(4, hashToken("refresh")).
		WillReturnResult(sqlmock.NewResult(12, 1))

	token := &models.UserToken{UserID: 4, Token: "refresh"}
	err := repo.Create(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, 12, token.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserTokenRepository_GetByToken(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id FROM user_tokens WHERE token_hash = \?`).
					WithArgs(hashToken("refresh")).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, 4))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id FROM user_tokens`).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			token, err := repo.GetByToken(context.Background(), "refresh")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 4, token.UserID)
				assert.Equal(t, "refresh", token.Token)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_UpdateToken(t *testing.T) {
	tests := []struct {
		name          string
		result        sql.Result
		execErr       error
		expectedError bool
	}{
		{name: "rotated", result: sqlmock.NewResult(0, 1)},
		{name: "old token missing", result: sqlmock.NewResult(0, 0), expectedError: true},
		{name: "database error", execErr: errors.New("database error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			exp := mock.ExpectExec(`UPDATE user_tokens`).WithArgs(hashToken("new"), hashToken("old"), 4)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.UpdateToken(context.Background(), "old", "new", 4)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_DeleteExpiredTokens(t *testing.T) {
	repo, mock, cleanup := setupUserTokenTestRepository(t)
	defer cleanup()

	expiry := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at <= \?`).
		WithArgs(expiry).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpiredTokens(context.Background(), expiry)

	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserTokenRepository_DeleteByToken(t *testing.T) {
	repo, mock, cleanup := setupUserTokenTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM user_tokens WHERE token_hash = \?`).
		WithArgs(hashToken("refresh")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteByToken(context.Background(), "refresh"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashToken(t *testing.T) {
	digest := hashToken("refresh")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, hashToken("refresh"))
	assert.NotEqual(t, digest, hashToken("refresh2"))
}
