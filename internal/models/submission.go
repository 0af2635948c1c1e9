package models

import "time"

type SubmissionStatus string

// SubmissionStatus constants
const (
	StatusNotStarted SubmissionStatus = "NOT_STARTED"
	StatusInProgress SubmissionStatus = "IN_PROGRESS"
	StatusSubmitted  SubmissionStatus = "SUBMITTED"
	StatusLate       SubmissionStatus = "LATE"
	StatusCompleted  SubmissionStatus = "COMPLETED"
)

// Valid reports whether s is a known status
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusSubmitted, StatusLate, StatusCompleted:
		return true
	}
	return false
}

// IsFinal reports whether the submission was handed in
func (s SubmissionStatus) IsFinal() bool {
	return s == StatusSubmitted || s == StatusLate || s == StatusCompleted
}

// Submission is the deliverable of an enrollment for one week
type Submission struct {
	ID           int              `json:"id"`
	EnrollmentID int              `json:"enrollmentId"`
	WeekID       int              `json:"weekId"`
	TextAnswer   string           `json:"textAnswer"`
	Status       SubmissionStatus `json:"status"`
	SubmittedAt  *time.Time       `json:"submittedAt"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Files        []SubmissionFile `json:"files"`
	// WeekNumber is filled when the submission is listed together with its week
	WeekNumber int `json:"weekNumber,omitempty"`
}

// SubmissionFile is an uploaded attachment of a submission
type SubmissionFile struct {
	ID           int       `json:"id"`
	SubmissionID int       `json:"submissionId"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileUrl"`
	FileType     string    `json:"fileType"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmitRequest carries the non-file fields of a submission form
type SubmitRequest struct {
	EnrollmentID int    `json:"enrollmentId" validate:"required,gt=0"`
	WeekID       int    `json:"weekId" validate:"required,gt=0"`
	TextAnswer   string `json:"textAnswer" validate:"max=20000"`
	Draft        bool   `json:"draft"`
}

// PresignRequest asks for a direct upload URL
type PresignRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
}

// PresignResponse holds the direct upload URL and the final file URL
type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}
