package handlers

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/services"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/businesscontrol/portal/libs/handlers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxMultipartMemory is the part of a submission form kept in memory, the rest spills to temp files
const maxMultipartMemory = 8 << 20

// SubmissionService is the interface that wraps methods for handing in work and uploaded files.
type SubmissionService interface {
	// Method Submit saves a draft or hands in the work of an enrollment for a week.
	//
	// "files" parameter holds the attachments, empty ones are skipped.
	//
	// If a file type is not allowed models.ErrFileTypeNotAllowed is returned, a draft over handed in work returns models.ErrAlreadySubmitted.
	Submit(ctx context.Context, userID int, req *models.SubmitRequest, files []services.UploadFile) (*models.Submission, error)
	// Method Presign returns a direct upload URL for an allowed file type.
	//
	// If the storage driver cannot presign, storage.ErrPresignUnsupported is returned.
	Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error)
	// Method OpenFile returns the content of a stored upload.
	//
	// If the key is unknown or malformed, an error wrapping models.ErrNotFound is returned.
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)
}

// SubmissionHandler handles submissions and uploads
type SubmissionHandler struct {
	portalHandler
	submissionService SubmissionService
	serveFiles        bool
}

// NewSubmissionHandler creates a new submission handler.
// serveFiles enables GET /files/* and is set for the local storage driver only.
func NewSubmissionHandler(
	submissionService SubmissionService,
	serveFiles bool,
	catalog *i18n.Catalog,
	validator *validation.Validator,
	logger *zap.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		portalHandler:     newPortalHandler(catalog, validator, logger),
		submissionService: submissionService,
		serveFiles:        serveFiles,
	}
}

// RegisterRoutes registers all submission handler routes
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/submissions", h.Submit)
	r.Post("/uploads/presign", h.Presign)
	if h.serveFiles {
		r.Get("/files/*", h.GetFile)
	}
}

// Submit handles POST /submissions
// @Summary Save or hand in a week's work
// @Description Drafts become IN_PROGRESS. Handed in work becomes SUBMITTED, or LATE after the deadline.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param enrollmentId formData int true "Enrollment ID"
// @Param weekId formData int true "Week ID"
// @Param textAnswer formData string false "Text answer"
// @Param draft formData bool false "Save as draft"
// @Param files formData file false "Attachments"
// @Success 201 {object} models.Submission
// @Failure 400 {object} map[string]string "Invalid form or file type not allowed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment or week not found"
// @Failure 409 {object} map[string]string "Week already handed in"
// @Security BearerAuth
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.Logger.Debug("failed to parse multipart form", zap.Error(err))
		if handlers.BodyTooLarge(err) {
			h.respondMessage(w, r, http.StatusRequestEntityTooLarge, i18n.MsgBodyTooLarge)
			return
		}
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := submitRequestFromForm(r)
	if err != nil {
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return
	}
	if !h.validate(w, r, req) {
		return
	}

	headers := r.MultipartForm.File["files"]
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.Logger.Error("failed to open uploaded file", zap.Error(err), zap.String("file", fh.Filename))
			h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
			return
		}
		defer f.Close()
		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: partContentType(fh),
			Size:        fh.Size,
			Content:     f,
		})
	}

	submission, err := h.submissionService.Submit(r.Context(), userID, req, files)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, submission)
}

// Presign handles POST /uploads/presign
// @Summary Get a direct upload URL
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body models.PresignRequest true "File to upload"
// @Success 200 {object} models.PresignResponse
// @Failure 400 {object} map[string]string "File type not allowed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 501 {object} map[string]string "Storage driver cannot presign"
// @Security BearerAuth
// @Router /uploads/presign [post]
func (h *SubmissionHandler) Presign(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	var req models.PresignRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.submissionService.Presign(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetFile handles GET /files/*
// @Summary Download an uploaded file
// @Tags submissions
// @Produce octet-stream
// @Param key path string true "Object key"
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "File not found"
// @Security BearerAuth
// @Router /files/{key} [get]
func (h *SubmissionHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	key := chi.URLParam(r, "*")
	rc, err := h.submissionService.OpenFile(r.Context(), key)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filepath.Base(key)}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warn("failed to stream file", zap.Error(err), zap.String("key", key))
	}
}

// submitRequestFromForm reads the non-file fields of a submission form
func submitRequestFromForm(r *http.Request) (*models.SubmitRequest, error) {
	req := &models.SubmitRequest{TextAnswer: r.FormValue("textAnswer")}

	var err error
	if req.EnrollmentID, err = atoiField(r, "enrollmentId"); err != nil {
		return nil, err
	}
	if req.WeekID, err = atoiField(r, "weekId"); err != nil {
		return nil, err
	}
	if v := r.FormValue("draft"); v != "" {
		if req.Draft, err = strconv.ParseBool(v); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// atoiField parses an integer form field, a missing field is zero and left to validation
func atoiField(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// partContentType returns the declared content type of a part, guessing from the extension when the client sent none
func partContentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if guessed := mime.TypeByExtension(filepath.Ext(fh.Filename)); guessed != "" {
		return guessed
	}
	return ct
}
