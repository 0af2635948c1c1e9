package services

import (
	"context"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
)

// profileService implements ProfileService
type profileService struct {
	userRepo UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo UserRepository) *profileService {
	return &profileService{
		userRepo: userRepo,
	}
}

// GetProfile returns the profile of a user
func (s *profileService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// UpdateProfile applies the non-nil fields of req
func (s *profileService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.PreferredLocale != nil {
		if l := i18n.Normalize(*req.PreferredLocale); l != "" {
			user.PreferredLocale = l
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return toProfile(user), nil
}

// PreferredLocale returns the language a user picked in the profile
func (s *profileService) PreferredLocale(ctx context.Context, userID int) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.PreferredLocale, nil
}

func toProfile(user *models.User) *models.ProfileResponse {
	return &models.ProfileResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role.String(),
		PreferredLocale: user.PreferredLocale,
	}
}
