package handlers

import (
	"context"
	"net/http"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReminderRunner is the interface that wraps the deadline reminder scan.
type ReminderRunner interface {
	// Method Run enqueues a reminder for every enrollment with a close deadline and returns how many were sent.
	Run(ctx context.Context) (int, error)
}

// TokenCleaner is the interface that wraps the removal of expired refresh tokens.
type TokenCleaner interface {
	// Method CleanupExpiredTokens deletes expired refresh tokens and returns how many were deleted.
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// InternalHandler exposes maintenance jobs to internal callers holding the API key
type InternalHandler struct {
	portalHandler
	reminders ReminderRunner
	tokens    TokenCleaner
}

// NewInternalHandler creates a new internal handler
func NewInternalHandler(reminders ReminderRunner, tokens TokenCleaner, catalog *i18n.Catalog, logger *zap.Logger) *InternalHandler {
	return &InternalHandler{
		portalHandler: newPortalHandler(catalog, nil, logger),
		reminders:     reminders,
		tokens:        tokens,
	}
}

// RegisterRoutes registers all internal routes.
// The router must already be guarded by the API key middleware.
func (h *InternalHandler) RegisterRoutes(r chi.Router) {
	r.Route("/internal", func(r chi.Router) {
		r.Post("/reminders/run", h.RunReminders)
		r.Post("/tokens/cleanup", h.CleanupTokens)
	})
}

// RunReminders handles POST /internal/reminders/run
// @Summary Run the deadline reminder scan
// @Tags internal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]int "Number of reminders sent"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/reminders/run [post]
func (h *InternalHandler) RunReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.reminders.Run(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"sent": sent})
}

// CleanupTokens handles POST /internal/tokens/cleanup
// @Summary Delete expired refresh tokens
// @Tags internal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]int "Number of deleted tokens"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/tokens/cleanup [post]
func (h *InternalHandler) CleanupTokens(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.tokens.CleanupExpiredTokens(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
