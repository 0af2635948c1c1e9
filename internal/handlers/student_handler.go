package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StudentService is the interface that wraps the student's own views of the program.
type StudentService interface {
	// Method Dashboard returns the home page of a user built from the latest enrollment.
	//
	// "locale" parameter selects the language of status labels.
	//
	// If the user has no enrollment, models.ErrNoEnrollment is returned.
	Dashboard(ctx context.Context, userID int, locale string) (*models.Dashboard, error)
	// Method Week returns one week of the latest enrollment with checklist, assets and submission.
	//
	// If "weekNumber" is outside 1..4 an error wrapping models.ErrNotFound is returned.
	Week(ctx context.Context, userID, weekNumber int) (*models.WeekView, error)
	// Method Submissions returns every submission of the latest enrollment ordered by week.
	Submissions(ctx context.Context, userID int) ([]models.SubmissionHistoryItem, error)
	// Method ToggleChecklist marks a checklist item as done or not done.
	//
	// The enrollment must belong to the user and the item to a week of its cohort, otherwise an error wrapping models.ErrNotFound is returned.
	ToggleChecklist(ctx context.Context, userID int, req *models.ToggleChecklistRequest) (*models.ChecklistProgress, error)
}

// StudentHandler handles the student area
type StudentHandler struct {
	portalHandler
	studentService StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService StudentService, catalog *i18n.Catalog, validator *validation.Validator, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		portalHandler:  newPortalHandler(catalog, validator, logger),
		studentService: studentService,
	}
}

// RegisterRoutes registers all student handler routes
func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/weeks/{weekNumber}", h.Week)
		r.Get("/submissions", h.Submissions)
	})
	r.Post("/checklist/toggle", h.ToggleChecklist)
}

// Dashboard handles GET /me/dashboard
// @Summary Get the student dashboard
// @Description Returns the weeks, overall progress and recent submissions of the latest enrollment.
// @Tags student
// @Produce json
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not enrolled in any cohort"
// @Security BearerAuth
// @Router /me/dashboard [get]
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.studentService.Dashboard(r.Context(), userID, h.locale(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, dashboard)
}

// Week handles GET /me/weeks/{weekNumber}
// @Summary Get a week of the program
// @Tags student
// @Produce json
// @Param weekNumber path int true "Week number (1-4)"
// @Success 200 {object} models.WeekView
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Week not found or not enrolled"
// @Security BearerAuth
// @Router /me/weeks/{weekNumber} [get]
func (h *StudentHandler) Week(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Anything that is not a week number is simply an unknown week
	weekNumber, err := strconv.Atoi(chi.URLParam(r, "weekNumber"))
	if err != nil {
		h.respondMessage(w, r, http.StatusNotFound, i18n.MsgWeekNotFound)
		return
	}

	view, err := h.studentService.Week(r.Context(), userID, weekNumber)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// Submissions handles GET /me/submissions
// @Summary List own submissions
// @Tags student
// @Produce json
// @Success 200 {array} models.SubmissionHistoryItem
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not enrolled in any cohort"
// @Security BearerAuth
// @Router /me/submissions [get]
func (h *StudentHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	submissions, err := h.studentService.Submissions(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if submissions == nil {
		submissions = []models.SubmissionHistoryItem{}
	}

	h.RespondJSON(w, http.StatusOK, submissions)
}

// ToggleChecklist handles POST /checklist/toggle
// @Summary Tick or untick a checklist item
// @Tags student
// @Accept json
// @Produce json
// @Param request body models.ToggleChecklistRequest true "Checklist toggle"
// @Success 200 {object} models.ChecklistProgress
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment or checklist item not found"
// @Security BearerAuth
// @Router /checklist/toggle [post]
func (h *StudentHandler) ToggleChecklist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ToggleChecklistRequest
	if !h.decode(w, r, &req) {
		return
	}

	progress, err := h.studentService.ToggleChecklist(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}
