package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// EmailHandler processes email tasks on the worker
type EmailHandler struct {
	renderer *Renderer
	sender   Sender
	logger   *zap.Logger
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(renderer *Renderer, sender Sender, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		renderer: renderer,
		sender:   sender,
		logger:   logger,
	}
}

// Register binds the handler to every email task type of mux
func (h *EmailHandler) Register(mux *asynq.ServeMux) {
	mux.Handle(TypeWelcomeEmail, h)
	mux.Handle(TypeSubmissionCompleted, h)
	mux.Handle(TypeDeadlineReminderEmail, h)
}

// ProcessTask renders and sends one email.
// Malformed tasks are not retried, SMTP failures are.
func (h *EmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := ParseEmailPayload(t)
	if err != nil {
		h.logger.Error("dropping malformed email task", zap.Error(err), zap.String("type", t.Type()))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	subject, body, err := h.renderer.Render(t.Type(), payload)
	if err != nil {
		h.logger.Error("dropping unrenderable email task", zap.Error(err), zap.String("type", t.Type()))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := h.sender.Send(payload.Email, subject, body); err != nil {
		h.logger.Warn("failed to send email", zap.Error(err), zap.String("type", t.Type()), zap.Int("userId", payload.UserID))
		return err
	}

	h.logger.Info("email sent", zap.String("type", t.Type()), zap.Int("userId", payload.UserID))
	return nil
}
