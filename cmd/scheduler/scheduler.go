package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run of a scheduled job
const jobTimeout = 5 * time.Minute

// ReminderRunner defines the deadline reminder scan
type ReminderRunner interface {
	// Run enqueues a reminder for every enrollment with a close deadline and returns how many were sent
	Run(ctx context.Context) (int, error)
}

// TokenCleaner defines the removal of expired refresh tokens
type TokenCleaner interface {
	// CleanupExpiredTokens deletes expired refresh tokens and returns how many were deleted
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// Scheduler runs the periodic maintenance jobs of the portal
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderRunner
	tokens    TokenCleaner
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
// reminderSpec and cleanupSpec are standard five field cron expressions or descriptors such as "@hourly".
func NewScheduler(reminderSpec, cleanupSpec string, reminders ReminderRunner, tokens TokenCleaner, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		reminders: reminders,
		tokens:    tokens,
		logger:    logger,
	}

	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", reminderSpec, err)
	}
	if _, err := s.cron.AddFunc(cleanupSpec, s.cleanupTokens); err != nil {
		return nil, fmt.Errorf("invalid token cleanup schedule %q: %w", cleanupSpec, err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// runReminders executes one reminder scan
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := s.reminders.Run(ctx)
	if err != nil {
		s.logger.Error("Reminder scan failed", zap.Error(err), zap.Int("sent", sent))
		return
	}
	s.logger.Debug("Reminder scan finished", zap.Int("sent", sent))
}

// cleanupTokens deletes expired refresh tokens
func (s *Scheduler) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := s.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		s.logger.Error("Token cleanup failed", zap.Error(err))
		return
	}
	s.logger.Debug("Token cleanup finished", zap.Int("deleted", deleted))
}
