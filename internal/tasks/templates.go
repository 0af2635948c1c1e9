package tasks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
)

// Renderer turns an email payload into a localized subject and body
type Renderer struct {
	catalog    *i18n.Catalog
	appBaseURL string
}

// NewRenderer creates a new renderer, links in emails point to appBaseURL
func NewRenderer(catalog *i18n.Catalog, appBaseURL string) *Renderer {
	return &Renderer{
		catalog:    catalog,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// Render returns the subject and body of an email of taskType
func (r *Renderer) Render(taskType string, p *EmailPayload) (string, string, error) {
	locale := r.catalog.Resolve(p.Locale)
	week := strconv.Itoa(p.WeekNumber)

	var subject, body string
	switch taskType {
	case TypeWelcomeEmail:
		subject = r.catalog.T(locale, i18n.MsgWelcomeSubject, p.CohortName)
		body = r.catalog.T(locale, i18n.MsgWelcomeBody, p.CohortName, r.appBaseURL+"/dashboard")
	case TypeSubmissionCompleted:
		subject = r.catalog.T(locale, i18n.MsgSubmissionCompletedSubj, week)
		body = r.catalog.T(locale, i18n.MsgSubmissionCompletedBody, week, p.WeekTitle, r.weekURL(p.WeekNumber))
	case TypeDeadlineReminderEmail:
		if p.Deadline == nil {
			return "", "", fmt.Errorf("deadline reminder without deadline")
		}
		deadline := r.catalog.FormatDateTime(*p.Deadline, locale)
		subject = r.catalog.T(locale, i18n.MsgDeadlineReminderSubject, week, deadline)
		body = r.catalog.T(locale, i18n.MsgDeadlineReminderBody, week, p.WeekTitle, deadline, r.weekURL(p.WeekNumber))
	default:
		return "", "", fmt.Errorf("unknown task type %q", taskType)
	}

	var sb strings.Builder
	sb.WriteString(r.catalog.T(locale, i18n.MsgEmailGreeting, p.Name))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n\n")
	sb.WriteString(r.catalog.T(locale, i18n.MsgEmailSignature))

	return subject, sb.String(), nil
}

func (r *Renderer) weekURL(weekNumber int) string {
	return fmt.Sprintf("%s/weeks/%d", r.appBaseURL, weekNumber)
}
