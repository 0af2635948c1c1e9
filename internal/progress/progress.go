// Package progress derives submission statuses and completion figures of an enrollment.
//
// Every function is pure: callers pass the current time and the loaded rows, nothing here touches storage.
package progress

import (
	"math"
	"time"

	"github.com/businesscontrol/portal/internal/models"
)

// Week weights used by OverallProgress. Four completed weeks add up to 100.
const (
	completedWeight  = 25.0
	submittedWeight  = 20.0
	inProgressWeight = 0.25
)

// CalculateProgress returns completed/total as a rounded percentage, 0 when total is 0
func CalculateProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// IsDeadlinePassed reports whether now is strictly after the deadline. A missing deadline never passes.
func IsDeadlinePassed(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	return now.After(*deadline)
}

// SubmitStatus returns the status a final submission gets at time now
func SubmitStatus(deadline *time.Time, now time.Time) models.SubmissionStatus {
	if IsDeadlinePassed(deadline, now) {
		return models.StatusLate
	}
	return models.StatusSubmitted
}

// ChecklistPercent returns the share of items marked done in progress, keyed by checklist item id.
// Progress rows of items outside the list are ignored.
func ChecklistPercent(items []models.ChecklistItem, progress map[int]bool) int {
	done := 0
	for _, item := range items {
		if progress[item.ID] {
			done++
		}
	}
	return CalculateProgress(done, len(items))
}

// DoneSet indexes checklist progress rows by item id
func DoneSet(rows []models.ChecklistProgress) map[int]bool {
	set := make(map[int]bool, len(rows))
	for _, row := range rows {
		if row.IsDone {
			set[row.ChecklistItemID] = true
		}
	}
	return set
}

// WeekStatuses returns the status of weeks 1..weekCount given submission statuses keyed by week number
func WeekStatuses(byWeek map[int]models.SubmissionStatus, weekCount int) []models.SubmissionStatus {
	statuses := make([]models.SubmissionStatus, weekCount)
	for i := range statuses {
		status, ok := byWeek[i+1]
		if !ok || status == "" {
			status = models.StatusNotStarted
		}
		statuses[i] = status
	}
	return statuses
}

// WeekState is the input of OverallProgress for one week
type WeekState struct {
	Status           models.SubmissionStatus
	ChecklistPercent int
}

// OverallProgress sums the weight of every week and rounds the result.
// A late submission is not counted.
func OverallProgress(weeks []WeekState) int {
	var total float64
	for _, w := range weeks {
		switch w.Status {
		case models.StatusCompleted:
			total += completedWeight
		case models.StatusSubmitted:
			total += submittedWeight
		case models.StatusInProgress:
			total += float64(w.ChecklistPercent) * inProgressWeight
		}
	}
	return int(math.Round(total))
}

// LastActivity returns the latest submission time, falling back to the enrollment time
func LastActivity(submissions []models.Submission, enrolledAt time.Time) time.Time {
	var latest *time.Time
	for i := range submissions {
		at := submissions[i].SubmittedAt
		if at == nil {
			continue
		}
		if latest == nil || at.After(*latest) {
			latest = at
		}
	}
	if latest == nil {
		return enrolledAt
	}
	return *latest
}

// CanTransition reports whether a submission may move from one status to another.
//
// Drafts only ever move a submission forward from NOT_STARTED or IN_PROGRESS.
// Handing in again after review reopens a completed submission.
func CanTransition(from, to models.SubmissionStatus) bool {
	switch from {
	case "", models.StatusNotStarted, models.StatusInProgress:
		return to == models.StatusInProgress || to == models.StatusSubmitted || to == models.StatusLate
	case models.StatusSubmitted, models.StatusLate:
		return to == models.StatusSubmitted || to == models.StatusLate || to == models.StatusCompleted
	case models.StatusCompleted:
		return to == models.StatusSubmitted || to == models.StatusLate
	}
	return false
}

// Matches reports whether statuses satisfy a participant status filter.
// week is 1-based, 0 matches the status in any week.
func Matches(statuses []models.SubmissionStatus, week int, status models.SubmissionStatus) bool {
	if status == "" {
		return true
	}
	if week > 0 {
		return week <= len(statuses) && statuses[week-1] == status
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
