package services

import (
	"context"
	"fmt"
	"time"

	"github.com/businesscontrol/portal/internal/tasks"
	"go.uber.org/zap"
)

// ReminderLock is the interface that wraps one-time reminder claiming
type ReminderLock interface {
	// Method Acquire claims "key" for "ttl".
	//
	// It returns "true" only for the first caller while the key is held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Method Release frees "key" so the next scan can claim it again.
	Release(ctx context.Context, key string) error
}

// ReminderQueue is the interface that wraps reminder enqueueing.
// Unlike Notifier it reports failures, a reminder that was not queued must not stay claimed.
type ReminderQueue interface {
	Enqueue(ctx context.Context, taskType string, payload tasks.EmailPayload) error
}

// reminderService implements ReminderService
type reminderService struct {
	enrollmentRepo EnrollmentRepository
	lock           ReminderLock
	queue          ReminderQueue
	window         time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewReminderService creates a new deadline reminder service.
// window is how far ahead of a deadline students are reminded.
func NewReminderService(
	enrollmentRepo EnrollmentRepository,
	lock ReminderLock,
	queue ReminderQueue,
	window time.Duration,
	logger *zap.Logger,
) *reminderService {
	return &reminderService{
		enrollmentRepo: enrollmentRepo,
		lock:           lock,
		queue:          queue,
		window:         window,
		logger:         logger,
		now:            time.Now,
	}
}

// Run enqueues a reminder for every pending week due within the window and returns how many were enqueued.
// Each (enrollment, week) pair is reminded once.
func (s *reminderService) Run(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.enrollmentRepo.ListDueReminders(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, err
	}

	ttl := s.window + 24*time.Hour
	sent := 0
	for _, r := range due {
		key := fmt.Sprintf("reminder:%d:%d", r.EnrollmentID, r.WeekID)
		acquired, err := s.lock.Acquire(ctx, key, ttl)
		if err != nil {
			return sent, fmt.Errorf("failed to claim %s: %w", key, err)
		}
		if !acquired {
			continue
		}

		deadline := r.Deadline
		err = s.queue.Enqueue(ctx, tasks.TypeDeadlineReminderEmail, tasks.EmailPayload{
			UserID:     r.UserID,
			Email:      r.Email,
			Name:       r.Name,
			Locale:     r.Locale,
			CohortName: r.CohortName,
			WeekNumber: r.WeekNumber,
			WeekTitle:  r.WeekTitle,
			Deadline:   &deadline,
		})
		if err != nil {
			if releaseErr := s.lock.Release(ctx, key); releaseErr != nil {
				s.logger.Error("failed to release reminder claim", zap.Error(releaseErr), zap.String("key", key))
			}
			return sent, fmt.Errorf("failed to enqueue reminder %s: %w", key, err)
		}
		sent++
	}

	s.logger.Info("deadline reminders enqueued", zap.Int("due", len(due)), zap.Int("sent", sent))
	return sent, nil
}
