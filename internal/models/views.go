package models

import "time"

// WeekProgress summarizes one week on the student dashboard
type WeekProgress struct {
	WeekID            int              `json:"weekId"`
	WeekNumber        int              `json:"weekNumber"`
	Title             string           `json:"title"`
	Deadline          *time.Time       `json:"deadline"`
	DeadlinePassed    bool             `json:"deadlinePassed"`
	Status            SubmissionStatus `json:"status"`
	StatusLabel       string           `json:"statusLabel"`
	ChecklistProgress int              `json:"checklistProgress"`
}

// SubmissionSummary is a short form of a submission used in recent lists
type SubmissionSummary struct {
	SubmissionID int              `json:"submissionId"`
	WeekNumber   int              `json:"weekNumber"`
	Status       SubmissionStatus `json:"status"`
	StatusLabel  string           `json:"statusLabel"`
	SubmittedAt  *time.Time       `json:"submittedAt"`
}

// Dashboard is the student home page
type Dashboard struct {
	UserName          string              `json:"userName"`
	Initials          string              `json:"initials"`
	EnrollmentID      int                 `json:"enrollmentId"`
	CohortName        string              `json:"cohortName"`
	Track             Track               `json:"track"`
	Weeks             []WeekProgress      `json:"weeks"`
	OverallProgress   int                 `json:"overallProgress"`
	RecentSubmissions []SubmissionSummary `json:"recentSubmissions"`
}

// ChecklistEntry is a checklist item together with the caller's progress
type ChecklistEntry struct {
	ChecklistItem
	IsDone bool `json:"isDone"`
}

// WeekView is the student page of a single week
type WeekView struct {
	EnrollmentID      int              `json:"enrollmentId"`
	Week              Week             `json:"week"`
	DeadlinePassed    bool             `json:"deadlinePassed"`
	Checklist         []ChecklistEntry `json:"checklist"`
	ChecklistProgress int              `json:"checklistProgress"`
	Assets            []WeekAsset      `json:"assets"`
	Submission        *Submission      `json:"submission"`
}

// SubmissionHistoryItem is one row of the student's submission history
type SubmissionHistoryItem struct {
	Submission
	WeekTitle string `json:"weekTitle"`
}

// RecentEnrollment is a row of the admin overview
type RecentEnrollment struct {
	EnrollmentID int       `json:"enrollmentId"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	CohortName   string    `json:"cohortName"`
	Track        Track     `json:"track"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecentSubmission is a row of the admin overview
type RecentSubmission struct {
	SubmissionID int              `json:"submissionId"`
	EnrollmentID int              `json:"enrollmentId"`
	CohortID     int              `json:"cohortId"`
	UserName     string           `json:"userName"`
	WeekNumber   int              `json:"weekNumber"`
	Status       SubmissionStatus `json:"status"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}

// Overview is the admin landing page
type Overview struct {
	TotalCohorts       int                `json:"totalCohorts"`
	ActiveCohorts      int                `json:"activeCohorts"`
	TotalParticipants  int                `json:"totalParticipants"`
	PendingSubmissions int                `json:"pendingSubmissions"`
	RecentEnrollments  []RecentEnrollment `json:"recentEnrollments"`
	RecentSubmissions  []RecentSubmission `json:"recentSubmissions"`
}

// ParticipantFilter narrows the participants table of a cohort
type ParticipantFilter struct {
	Track  Track
	Search string
	// Week restricts Status to one week number, 0 means any week
	Week   int
	Status SubmissionStatus
}

// ParticipantRecord is the raw data of one participant as loaded from storage
type ParticipantRecord struct {
	EnrollmentID int
	UserID       int
	Name         string
	Email        string
	Track        Track
	EnrolledAt   time.Time
	Submissions  []Submission
}

// ParticipantRow is one line of the admin participants table
type ParticipantRow struct {
	EnrollmentID int                `json:"enrollmentId"`
	UserID       int                `json:"userId"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Track        Track              `json:"track"`
	WeekStatuses []SubmissionStatus `json:"weekStatuses"`
	LastActivity time.Time          `json:"lastActivity"`
}

// ParticipantList is the participants table of a cohort
type ParticipantList struct {
	CohortID     int              `json:"cohortId"`
	CohortName   string           `json:"cohortName"`
	Participants []ParticipantRow `json:"participants"`
}

// ParticipantWeek is one week of the participant detail page
type ParticipantWeek struct {
	Week              Week        `json:"week"`
	Submission        *Submission `json:"submission"`
	ChecklistProgress int         `json:"checklistProgress"`
}

// ParticipantDetail is the admin view of a single enrollment
type ParticipantDetail struct {
	EnrollmentID int               `json:"enrollmentId"`
	CohortID     int               `json:"cohortId"`
	CohortName   string            `json:"cohortName"`
	UserID       int               `json:"userId"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Initials     string            `json:"initials"`
	Track        Track             `json:"track"`
	EnrolledAt   time.Time         `json:"enrolledAt"`
	Weeks        []ParticipantWeek `json:"weeks"`
	Notes        []AdminNote       `json:"notes"`
}

// DueReminder is an enrollment that still has to hand in a week whose deadline is close
type DueReminder struct {
	EnrollmentID int
	UserID       int
	Email        string
	Name         string
	Locale       string
	CohortName   string
	WeekID       int
	WeekNumber   int
	WeekTitle    string
	Deadline     time.Time
}
