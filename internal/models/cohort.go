package models

import (
	"regexp"
	"time"
)

// Cohort is a time-boxed group of students going through the four-week program
type Cohort struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EnrollmentCode *string   `json:"enrollmentCode"`
	// Capacity is the maximum number of enrollments, nil or 0 means unlimited
	Capacity         *int      `json:"capacity"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	ParticipantCount int       `json:"participantCount"`
	// Weeks is only filled right after creation
	Weeks []Week `json:"weeks,omitempty"`
}

// IsFull reports whether the cohort cannot accept another enrollment
func (c *Cohort) IsFull(enrolled int) bool {
	if c.Capacity == nil || *c.Capacity <= 0 {
		return false
	}
	return enrolled >= *c.Capacity
}

// Week is one of the four program units of a cohort
type Week struct {
	ID          int        `json:"id"`
	CohortID    int        `json:"cohortId"`
	WeekNumber  int        `json:"weekNumber"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoURL    string     `json:"videoUrl"`
	Deadline    *time.Time `json:"deadline"`
}

// ChecklistItem is a task the student ticks off during a week
type ChecklistItem struct {
	ID         int    `json:"id"`
	WeekID     int    `json:"weekId"`
	Text       string `json:"text"`
	SortOrder  int    `json:"sortOrder"`
	IsRequired bool   `json:"isRequired"`
}

type AssetType string

// AssetType constants
const (
	AssetTemplate AssetType = "TEMPLATE"
	AssetReport   AssetType = "REPORT"
	AssetOther    AssetType = "OTHER"
)

// WeekAsset is a downloadable resource attached to a week
type WeekAsset struct {
	ID     int       `json:"id"`
	WeekID int       `json:"weekId"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	Type   AssetType `json:"type"`
}

// CreateCohortRequest represents the admin payload for a new cohort
type CreateCohortRequest struct {
	Name           string    `json:"name" validate:"required,notblank"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	EnrollmentCode *string   `json:"enrollmentCode,omitempty" validate:"omitempty,max=64"`
	Capacity       *int      `json:"capacity,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool     `json:"isActive,omitempty"`
}

// UpdateCohortRequest represents a partial cohort update
type UpdateCohortRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,notblank"`
	EnrollmentCode *string `json:"enrollmentCode,omitempty" validate:"omitempty,max=64"`
	Capacity       *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// DefaultWeekTitles are the titles given to the four weeks of a new cohort
var DefaultWeekTitles = [WeeksPerCohort]string{
	"Week 1: Mapping the Situation",
	"Week 2: Building the System",
	"Week 3: Analysis & Understanding",
	"Week 4: Action & Planning",
}

// WeeksPerCohort is the fixed number of weeks in a program
const WeeksPerCohort = 4

// enrollmentCodePattern is the shape of a normalized enrollment code
var enrollmentCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

// ValidEnrollmentCode reports whether an already normalized code can be stored
func ValidEnrollmentCode(code string) bool {
	return enrollmentCodePattern.MatchString(code)
}
