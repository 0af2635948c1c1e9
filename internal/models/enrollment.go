package models

import (
	"strings"
	"time"
)

type Track string

// Track constants
const (
	TrackSelf    Track = "SELF"
	TrackGroup   Track = "GROUP"
	TrackPremium Track = "PREMIUM"
)

// Valid reports whether t is a known track
func (t Track) Valid() bool {
	switch t {
	case TrackSelf, TrackGroup, TrackPremium:
		return true
	}
	return false
}

// Enrollment links a user to a cohort
type Enrollment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CohortID  int       `json:"cohortId"`
	Track     Track     `json:"track"`
	CreatedAt time.Time `json:"createdAt"`
}

// JoinCohortRequest represents a join-by-code request
type JoinCohortRequest struct {
	Code string `json:"code" validate:"required"`
}

// NormalizedCode returns the code trimmed and upper-cased
func (r *JoinCohortRequest) NormalizedCode() string {
	return strings.ToUpper(strings.TrimSpace(r.Code))
}

// UpdateTrackRequest represents a track change by an admin
type UpdateTrackRequest struct {
	Track Track `json:"track" validate:"required,track"`
}

// ChecklistProgress records whether an enrollment ticked a checklist item
type ChecklistProgress struct {
	ID              int       `json:"id"`
	EnrollmentID    int       `json:"enrollmentId"`
	ChecklistItemID int       `json:"checklistItemId"`
	IsDone          bool      `json:"isDone"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToggleChecklistRequest represents a checklist toggle
type ToggleChecklistRequest struct {
	EnrollmentID    int  `json:"enrollmentId" validate:"required,gt=0"`
	ChecklistItemID int  `json:"checklistItemId" validate:"required,gt=0"`
	IsDone          bool `json:"isDone"`
}

// AdminNote is a private remark an admin leaves on an enrollment
type AdminNote struct {
	ID           int       `json:"id"`
	EnrollmentID int       `json:"enrollmentId"`
	WeekID       *int      `json:"weekId"`
	AuthorID     *int      `json:"authorId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	// WeekNumber is filled when the note is listed together with its week
	WeekNumber *int `json:"weekNumber,omitempty"`
}

// CreateNoteRequest represents a new admin note
type CreateNoteRequest struct {
	EnrollmentID int    `json:"enrollmentId" validate:"required,gt=0"`
	WeekID       *int   `json:"weekId,omitempty" validate:"omitempty,gt=0"`
	Content      string `json:"content" validate:"required,notblank"`
}
