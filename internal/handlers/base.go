// Package handlers exposes the portal JSON API over chi
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/storage"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"github.com/businesscontrol/portal/libs/handlers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// portalHandler adds localized errors and request validation to handlers.BaseHandler
type portalHandler struct {
	handlers.BaseHandler
	catalog   *i18n.Catalog
	validator *validation.Validator
}

func newPortalHandler(catalog *i18n.Catalog, validator *validation.Validator, logger *zap.Logger) portalHandler {
	return portalHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		catalog:     catalog,
		validator:   validator,
	}
}

// locale returns the language resolved for the request
func (h *portalHandler) locale(r *http.Request) string {
	return i18n.FromContext(r.Context())
}

// respondMessage sends status with the catalog text of key
func (h *portalHandler) respondMessage(w http.ResponseWriter, r *http.Request, status int, key string) {
	h.RespondError(w, status, h.catalog.T(h.locale(r), key))
}

// decode reads the JSON body into dst and validates it, responding 400 on failure
func (h *portalHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := h.DecodeJSON(r, dst); err != nil {
		if handlers.BodyTooLarge(err) {
			h.respondMessage(w, r, http.StatusRequestEntityTooLarge, i18n.MsgBodyTooLarge)
			return false
		}
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return false
	}
	return h.validate(w, r, dst)
}

// validate checks dst, responding 400 with per-field messages on failure
func (h *portalHandler) validate(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := h.validator.Struct(h.locale(r), dst)
	if err == nil {
		return true
	}
	h.respondServiceError(w, r, err)
	return false
}

// userID returns the authenticated user, responding 401 when the request has none
func (h *portalHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondMessage(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID parses a positive integer URL parameter, responding 400 when malformed
func (h *portalHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return 0, false
	}
	return id, true
}

// notFoundMessages picks the message of a not found error by the entity it names
var notFoundMessages = []struct {
	prefix string
	key    string
}{
	{"cohort", i18n.MsgCohortNotFound},
	{"enrollment", i18n.MsgEnrollmentNotFound},
	{"week", i18n.MsgWeekNotFound},
	{"submission", i18n.MsgSubmissionNotFound},
	{"checklist item", i18n.MsgChecklistNotFound},
}

// errorStatuses maps domain errors to HTTP statuses and message keys
var errorStatuses = []struct {
	err    error
	status int
	key    string
}{
	{models.ErrNoEnrollment, http.StatusNotFound, i18n.MsgNoEnrollment},
	{models.ErrInvalidCode, http.StatusNotFound, i18n.MsgInvalidCode},
	{models.ErrCohortFull, http.StatusBadRequest, i18n.MsgCohortFull},
	{models.ErrAlreadyEnrolled, http.StatusBadRequest, i18n.MsgAlreadyEnrolled},
	{models.ErrEmailExists, http.StatusConflict, i18n.MsgEmailExists},
	{models.ErrCodeExists, http.StatusConflict, i18n.MsgCodeExists},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, i18n.MsgInvalidCredentials},
	{models.ErrInvalidToken, http.StatusUnauthorized, i18n.MsgInvalidRefreshToken},
	{models.ErrForbidden, http.StatusForbidden, i18n.MsgForbidden},
	{models.ErrFileTypeNotAllowed, http.StatusBadRequest, i18n.MsgFileTypeNotAllowed},
	{models.ErrAlreadySubmitted, http.StatusConflict, i18n.MsgAlreadySubmitted},
	{models.ErrInvalidTransition, http.StatusConflict, i18n.MsgInvalidTransition},
	{storage.ErrPresignUnsupported, http.StatusNotImplemented, i18n.MsgPresignUnsupported},
	{models.ErrValidation, http.StatusBadRequest, i18n.MsgValidationFailed},
}

// respondServiceError maps err to a status and a localized message. Unknown errors are logged and hidden.
func (h *portalHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		h.RespondValidationError(w, h.catalog.T(h.locale(r), i18n.MsgValidationFailed), validationErr.Fields)
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		key := i18n.MsgNotFound
		for _, m := range notFoundMessages {
			if strings.HasPrefix(err.Error(), m.prefix+" ") {
				key = m.key
				break
			}
		}
		h.respondMessage(w, r, http.StatusNotFound, key)
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			h.respondMessage(w, r, e.status, e.key)
			return
		}
	}

	h.Logger.Error("request failed", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	h.respondMessage(w, r, http.StatusInternalServerError, i18n.MsgInternal)
}
