package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskClient is the part of *asynq.Client used to enqueue tasks
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer puts email tasks on the queue.
// EnqueueEmail logs and swallows failures so a lost email never fails the request that caused it.
type Enqueuer struct {
	client TaskClient
	logger *zap.Logger
}

// NewEnqueuer creates a new enqueuer, a nil client turns it into a no-op
func NewEnqueuer(client TaskClient, logger *zap.Logger) *Enqueuer {
	return &Enqueuer{
		client: client,
		logger: logger,
	}
}

// ErrQueueDisabled is returned by Enqueue when the enqueuer has no client
var ErrQueueDisabled = errors.New("task queue is not configured")

// EnqueueEmail schedules an email of taskType for payload, failures are only logged
func (e *Enqueuer) EnqueueEmail(ctx context.Context, taskType string, payload EmailPayload) {
	err := e.Enqueue(ctx, taskType, payload)
	if err == nil || errors.Is(err, ErrQueueDisabled) {
		return
	}
	e.logger.Error("failed to enqueue email task",
		zap.Error(err),
		zap.String("type", taskType),
		zap.Int("userId", payload.UserID),
	)
}

// Enqueue schedules an email of taskType for payload and reports whether the queue accepted it
func (e *Enqueuer) Enqueue(ctx context.Context, taskType string, payload EmailPayload) error {
	if e == nil || e.client == nil {
		return ErrQueueDisabled
	}

	task, err := NewEmailTask(taskType, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", taskType, err)
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}

	e.logger.Debug("email task enqueued", zap.String("type", taskType), zap.String("taskId", info.ID), zap.String("queue", info.Queue))
	return nil
}
