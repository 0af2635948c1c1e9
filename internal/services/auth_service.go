package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/libs/auth/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user, its ID is filled on success.
	//
	// If a user with the same email exists, models.ErrEmailExists will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "id" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method UpdateProfile stores the name and the preferred locale of a user.
	//
	// "user" parameter carries the user ID and the new values.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned.
	UpdateProfile(ctx context.Context, user *models.User) error
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method Create inserts a new user token into the database.
	//
	// "userToken" parameter is used to create a new user token.
	//
	// If some error occurs during user token creation, the error will be returned.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a user token by token string.
	//
	// "token" parameter is used to retrieve a user token by token string.
	//
	// If user token with such token does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken replaces the old token of a user with a new one.
	//
	// "oldToken" parameter is the token being rotated.
	// "newToken" parameter is the token replacing it.
	// "userID" parameter is the owner of both tokens.
	//
	// If the old token does not exist, an error wrapping models.ErrNotFound will be returned.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// Method DeleteByToken deletes a user token by token string.
	//
	// "token" parameter is used to delete a user token by token string.
	//
	// Deleting a missing token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpiredTokens deletes every token created at or before expiryTime.
	//
	// "expiryTime" parameter is the creation time limit.
	//
	// The number of deleted tokens will be returned.
	DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	refreshExpiry  time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	refreshExpiry time.Duration,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		refreshExpiry:  refreshExpiry,
		logger:         logger,
		now:            time.Now,
	}
}

// Register creates a new student account and signs it in.
// locale is the language the visitor used while registering and becomes the preferred locale.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, locale string) (*models.RegisterResponse, string, string, error) {
	email := normalizeEmail(req.Email)

	// Check email uniqueness before paying for the hash
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", models.ErrEmailExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	preferred := i18n.Normalize(locale)
	if preferred == "" {
		preferred = i18n.DefaultLocale
	}

	user := &models.User{
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		PasswordHash:    hash,
		Role:            models.RoleStudent,
		PreferredLocale: preferred,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))
	return &models.RegisterResponse{ID: user.ID, Email: user.Email}, accessToken, refreshToken, nil
}

// Login checks the credentials and returns a new token pair
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token and returns a new token pair
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrInvalidToken
	}
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrInvalidToken
	}
	if err != nil {
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, int(user.Role))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, user.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", models.ErrInvalidToken
		}
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout forgets the refresh token, an empty token is a no-op
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userTokenRepo.DeleteByToken(ctx, refreshToken)
}

// CreateAdmin creates an administrator account
func (s *authService) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Name) == "" || len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: name, email and a password of at least %d characters are required", models.ErrValidation, minPasswordLength)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		PasswordHash:    hash,
		Role:            models.RoleAdmin,
		PreferredLocale: i18n.DefaultLocale,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin created", zap.Int("userId", user.ID))
	return user, nil
}

// CleanupExpiredTokens deletes refresh tokens older than the refresh token lifetime
func (s *authService) CleanupExpiredTokens(ctx context.Context) (int, error) {
	deleted, err := s.userTokenRepo.DeleteExpiredTokens(ctx, s.now().Add(-s.refreshExpiry))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("expired refresh tokens deleted", zap.Int("count", deleted))
	}
	return deleted, nil
}

// issueTokens generates a token pair for user and stores the refresh token
func (s *authService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, int(user.Role))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userTokenRepo.Create(ctx, &models.UserToken{UserID: user.ID, Token: refreshToken}); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

const minPasswordLength = 6

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
