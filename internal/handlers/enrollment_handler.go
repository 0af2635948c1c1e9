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

// EnrollmentService is the interface that wraps the join-by-code flow.
type EnrollmentService interface {
	// Method Join enrolls a user into the active cohort with the given code.
	//
	// Returns models.ErrInvalidCode, models.ErrCohortFull or models.ErrAlreadyEnrolled when the user cannot join.
	Join(ctx context.Context, userID int, req *models.JoinCohortRequest) (*models.Enrollment, error)
}

// EnrollmentHandler handles enrollment-related HTTP requests
type EnrollmentHandler struct {
	portalHandler
	enrollmentService EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentService EnrollmentService, catalog *i18n.Catalog, validator *validation.Validator, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		portalHandler:     newPortalHandler(catalog, validator, logger),
		enrollmentService: enrollmentService,
	}
}

// RegisterRoutes registers all enrollment handler routes.
// limiter slows down code guessing and may be nil.
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	if limiter != nil {
		r = r.With(limiter)
	}
	r.Post("/enrollments/join", h.Join)
}

// Join handles POST /enrollments/join
// @Summary Join a cohort
// @Description Enrolls the current user on the SELF track of the active cohort using its enrollment code.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body models.JoinCohortRequest true "Enrollment code"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]string "Cohort is full or user already enrolled"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invalid enrollment code"
// @Security BearerAuth
// @Router /enrollments/join [post]
func (h *EnrollmentHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.JoinCohortRequest
	if !h.decode(w, r, &req) {
		return
	}

	enrollment, err := h.enrollmentService.Join(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, enrollment)
}
