// Package tasks defines the background email jobs of the portal: their payloads,
// how they are enqueued on asynq, and how the worker renders and sends them.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task types
const (
	TypeWelcomeEmail          = "email:welcome"
	TypeSubmissionCompleted   = "email:submission_completed"
	TypeDeadlineReminderEmail = "email:deadline_reminder"
)

// Queue names and their worker priorities
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// Queues is the asynq queue configuration of the worker
var Queues = map[string]int{
	QueueCritical: 5,
	QueueDefault:  1,
}

// maxRetry is the number of delivery attempts for an email
const maxRetry = 5

// EmailPayload carries everything a template needs, so the worker never touches the database
type EmailPayload struct {
	UserID     int        `json:"userId"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Locale     string     `json:"locale"`
	CohortName string     `json:"cohortName,omitempty"`
	WeekNumber int        `json:"weekNumber,omitempty"`
	WeekTitle  string     `json:"weekTitle,omitempty"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

// NewEmailTask builds an asynq task of the given type.
// Reminders go to the default queue, emails triggered by a user action to the critical one.
func NewEmailTask(taskType string, payload EmailPayload) (*asynq.Task, error) {
	switch taskType {
	case TypeWelcomeEmail, TypeSubmissionCompleted, TypeDeadlineReminderEmail:
	default:
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	queue := QueueCritical
	if taskType == TypeDeadlineReminderEmail {
		queue = QueueDefault
	}

	return asynq.NewTask(taskType, data, asynq.Queue(queue), asynq.MaxRetry(maxRetry)), nil
}

// ParseEmailPayload decodes the payload of an email task
func ParseEmailPayload(t *asynq.Task) (*EmailPayload, error) {
	var payload EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("payload has no recipient")
	}
	return &payload, nil
}
