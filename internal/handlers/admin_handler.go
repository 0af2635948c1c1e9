package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for cohort administration.
type AdminService interface {
	// Method Overview returns the counters and recent activity of the admin landing page.
	//
	// "locale" parameter selects the placeholder used for missing user names.
	Overview(ctx context.Context, locale string) (*models.Overview, error)
	// Method ListCohorts returns every cohort, newest first, with participant counts.
	ListCohorts(ctx context.Context) ([]models.Cohort, error)
	// Method CreateCohort creates a cohort together with its four weeks.
	//
	// If the enrollment code is taken, models.ErrCodeExists is returned.
	CreateCohort(ctx context.Context, req *models.CreateCohortRequest) (*models.Cohort, error)
	// Method UpdateCohort applies the non-nil fields of "req" to a cohort.
	//
	// If cohort with such ID does not exist, an error wrapping models.ErrNotFound is returned.
	UpdateCohort(ctx context.Context, id int, req *models.UpdateCohortRequest) (*models.Cohort, error)
	// Method Participants returns the participants table of a cohort narrowed by "filter".
	//
	// If cohort with such ID does not exist, an error wrapping models.ErrNotFound is returned.
	Participants(ctx context.Context, cohortID int, filter models.ParticipantFilter) (*models.ParticipantList, error)
	// Method ParticipantDetail returns one enrollment of a cohort with weeks, submissions and notes.
	//
	// If the enrollment does not exist or belongs to another cohort, an error wrapping models.ErrNotFound is returned.
	ParticipantDetail(ctx context.Context, cohortID, enrollmentID int) (*models.ParticipantDetail, error)
	// Method CreateNote stores a private note written by "authorID".
	CreateNote(ctx context.Context, authorID int, req *models.CreateNoteRequest) (*models.AdminNote, error)
	// Method CompleteSubmission marks a handed in submission as completed and notifies the student.
	//
	// A submission that was never handed in returns models.ErrInvalidTransition.
	CompleteSubmission(ctx context.Context, submissionID int) (*models.Submission, error)
	// Method UpdateTrack changes the pricing track of an enrollment.
	UpdateTrack(ctx context.Context, enrollmentID int, req *models.UpdateTrackRequest) (*models.Enrollment, error)
}

// AdminHandler handles admin area HTTP requests
type AdminHandler struct {
	portalHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, catalog *i18n.Catalog, validator *validation.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		portalHandler: newPortalHandler(catalog, validator, logger),
		adminService:  adminService,
	}
}

// RegisterRoutes registers all admin handler routes.
// The router must already be guarded by the admin role middleware.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/overview", h.Overview)
		r.Route("/cohorts", func(r chi.Router) {
			r.Get("/", h.ListCohorts)
			r.Post("/", h.CreateCohort)
			r.Patch("/{id}", h.UpdateCohort)
			r.Get("/{id}/participants", h.Participants)
			r.Get("/{id}/participants/{enrollmentId}", h.ParticipantDetail)
		})
		r.Post("/notes", h.CreateNote)
		r.Post("/submissions/{id}/complete", h.CompleteSubmission)
		r.Patch("/enrollments/{id}/track", h.UpdateTrack)
	})
}

// Overview handles GET /admin/overview
// @Summary Get the admin overview
// @Tags admin
// @Produce json
// @Success 200 {object} models.Overview
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.adminService.Overview(r.Context(), h.locale(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, overview)
}

// ListCohorts handles GET /admin/cohorts
// @Summary List cohorts
// @Tags admin
// @Produce json
// @Success 200 {array} models.Cohort
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/cohorts [get]
func (h *AdminHandler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	cohorts, err := h.adminService.ListCohorts(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if cohorts == nil {
		cohorts = []models.Cohort{}
	}

	h.RespondJSON(w, http.StatusOK, cohorts)
}

// CreateCohort handles POST /admin/cohorts
// @Summary Create a cohort
// @Description Creates a cohort and its four weeks with default titles and weekly deadlines.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateCohortRequest true "New cohort"
// @Success 201 {object} models.Cohort
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 409 {object} map[string]string "Enrollment code already used"
// @Security BearerAuth
// @Router /admin/cohorts [post]
func (h *AdminHandler) CreateCohort(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCohortRequest
	if !h.decode(w, r, &req) {
		return
	}

	cohort, err := h.adminService.CreateCohort(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, cohort)
}

// UpdateCohort handles PATCH /admin/cohorts/{id}
// @Summary Update a cohort
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Cohort ID"
// @Param request body models.UpdateCohortRequest true "Cohort changes"
// @Success 200 {object} models.Cohort
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 404 {object} map[string]string "Cohort not found"
// @Failure 409 {object} map[string]string "Enrollment code already used"
// @Security BearerAuth
// @Router /admin/cohorts/{id} [patch]
func (h *AdminHandler) UpdateCohort(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCohortRequest
	if !h.decode(w, r, &req) {
		return
	}

	cohort, err := h.adminService.UpdateCohort(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cohort)
}

// Participants handles GET /admin/cohorts/{id}/participants
// @Summary List the participants of a cohort
// @Tags admin
// @Produce json
// @Param id path int true "Cohort ID"
// @Param track query string false "Track filter (SELF, GROUP, PREMIUM)"
// @Param search query string false "Name or email contains"
// @Param week query int false "Week number the status filter applies to"
// @Param status query string false "Submission status filter"
// @Success 200 {object} models.ParticipantList
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 404 {object} map[string]string "Cohort not found"
// @Security BearerAuth
// @Router /admin/cohorts/{id}/participants [get]
func (h *AdminHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	filter, ok := h.participantFilter(w, r)
	if !ok {
		return
	}

	list, err := h.adminService.Participants(r.Context(), id, filter)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}

// ParticipantDetail handles GET /admin/cohorts/{id}/participants/{enrollmentId}
// @Summary Get a participant of a cohort
// @Tags admin
// @Produce json
// @Param id path int true "Cohort ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} models.ParticipantDetail
// @Failure 404 {object} map[string]string "Enrollment not found in this cohort"
// @Security BearerAuth
// @Router /admin/cohorts/{id}/participants/{enrollmentId} [get]
func (h *AdminHandler) ParticipantDetail(w http.ResponseWriter, r *http.Request) {
	cohortID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	enrollmentID, ok := h.pathID(w, r, "enrollmentId")
	if !ok {
		return
	}

	detail, err := h.adminService.ParticipantDetail(r.Context(), cohortID, enrollmentID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// CreateNote handles POST /admin/notes
// @Summary Add a note to an enrollment
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateNoteRequest true "Note"
// @Success 201 {object} models.AdminNote
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 404 {object} map[string]string "Enrollment or week not found"
// @Security BearerAuth
// @Router /admin/notes [post]
func (h *AdminHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	authorID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	note, err := h.adminService.CreateNote(r.Context(), authorID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, note)
}

// CompleteSubmission handles POST /admin/submissions/{id}/complete
// @Summary Mark a submission as completed
// @Tags admin
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "Submission was not handed in"
// @Security BearerAuth
// @Router /admin/submissions/{id}/complete [post]
func (h *AdminHandler) CompleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	submission, err := h.adminService.CompleteSubmission(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, submission)
}

// UpdateTrack handles PATCH /admin/enrollments/{id}/track
// @Summary Change the track of an enrollment
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body models.UpdateTrackRequest true "New track"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Security BearerAuth
// @Router /admin/enrollments/{id}/track [patch]
func (h *AdminHandler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateTrackRequest
	if !h.decode(w, r, &req) {
		return
	}

	enrollment, err := h.adminService.UpdateTrack(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, enrollment)
}

// participantFilter reads the participants query, responding 400 for unknown values
func (h *AdminHandler) participantFilter(w http.ResponseWriter, r *http.Request) (models.ParticipantFilter, bool) {
	q := r.URL.Query()
	filter := models.ParticipantFilter{
		Track:  models.Track(strings.ToUpper(strings.TrimSpace(q.Get("track")))),
		Search: strings.TrimSpace(q.Get("search")),
		Status: models.SubmissionStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
	}

	if filter.Track != "" && !filter.Track.Valid() {
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return filter, false
	}
	if filter.Status != "" && !filter.Status.Valid() {
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return filter, false
	}
	if v := q.Get("week"); v != "" {
		week, err := strconv.Atoi(v)
		if err != nil || week < 1 || week > models.WeeksPerCohort {
			h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
			return filter, false
		}
		filter.Week = week
	}
	return filter, true
}
