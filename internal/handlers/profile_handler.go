package handlers

import (
	"context"
	"net/http"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic.
type ProfileService interface {
	// Method GetProfile returns the profile of a user.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error)
	// Method UpdateProfile applies the non-nil fields of "req" and returns the updated profile.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	portalHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, catalog *i18n.Catalog, validator *validation.Validator, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		portalHandler:  newPortalHandler(catalog, validator, logger),
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.GetProfile)
	r.Patch("/profile", h.UpdateProfile)
}

// GetProfile handles GET /profile
// @Summary Get current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /profile
// @Summary Update current user's profile
// @Description Changes name and preferred language. A new language is also remembered in the locale cookie.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /profile [patch]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if req.PreferredLocale != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.LocaleCookie,
			Value:    profile.PreferredLocale,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("Content-Language", profile.PreferredLocale)
	}

	h.RespondJSON(w, http.StatusOK, profile)
}
