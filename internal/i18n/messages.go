package i18n

import "github.com/go-playground/locales"

// Message keys used outside this package
const (
	MsgNotFound            = "error.not_found"
	MsgCohortNotFound      = "error.cohort_not_found"
	MsgEnrollmentNotFound  = "error.enrollment_not_found"
	MsgWeekNotFound        = "error.week_not_found"
	MsgSubmissionNotFound  = "error.submission_not_found"
	MsgChecklistNotFound   = "error.checklist_item_not_found"
	MsgCohortFull          = "error.cohort_full"
	MsgAlreadyEnrolled     = "error.already_enrolled"
	MsgInvalidCode         = "error.invalid_code"
	MsgEmailExists         = "error.email_exists"
	MsgCodeExists          = "error.code_exists"
	MsgInvalidCredentials  = "error.invalid_credentials"
	MsgUnauthorized        = "error.unauthorized"
	MsgForbidden           = "error.forbidden"
	MsgValidationFailed    = "error.validation_failed"
	MsgInvalidRequest      = "error.invalid_request"
	MsgFileTypeNotAllowed  = "error.file_type_not_allowed"
	MsgAlreadySubmitted    = "error.already_submitted"
	MsgNoEnrollment        = "error.no_enrollment"
	MsgInvalidRefreshToken = "error.invalid_refresh_token"
	MsgInternal            = "error.internal"
	MsgInvalidTransition   = "error.invalid_transition"
	MsgPresignUnsupported  = "error.presign_unsupported"
	MsgBodyTooLarge        = "error.body_too_large"
	MsgUnknown             = "label.unknown"

	MsgWelcomeSubject          = "email.welcome.subject"
	MsgWelcomeBody             = "email.welcome.body"
	MsgSubmissionCompletedSubj = "email.completed.subject"
	MsgSubmissionCompletedBody = "email.completed.body"
	MsgDeadlineReminderSubject = "email.reminder.subject"
	MsgDeadlineReminderBody    = "email.reminder.body"
	MsgEmailGreeting           = "email.greeting"
	MsgEmailSignature          = "email.signature"
	msgRelativeNow             = "relative.now"
	msgRelativeSecondsAgo      = "relative.seconds"
	msgRelativeMinutesAgo      = "relative.minutes"
	msgRelativeHoursAgo        = "relative.hours"
	msgRelativeDaysAgo         = "relative.days"
	msgRelativeMonthsAgo       = "relative.months"
	msgRelativeYearsAgo        = "relative.years"
	statusLabelPrefix          = "status."
)

var catalogMessages = map[string]map[string]string{
	English: {
		MsgNotFound:            "not found",
		MsgCohortNotFound:      "cohort not found",
		MsgEnrollmentNotFound:  "enrollment not found",
		MsgWeekNotFound:        "week not found",
		MsgSubmissionNotFound:  "submission not found",
		MsgChecklistNotFound:   "checklist item not found",
		MsgCohortFull:          "cohort is full",
		MsgAlreadyEnrolled:     "you are already enrolled in this cohort",
		MsgInvalidCode:         "invalid enrollment code",
		MsgEmailExists:         "a user with this email already exists",
		MsgCodeExists:          "enrollment code is already used by another cohort",
		MsgInvalidCredentials:  "invalid email or password",
		MsgUnauthorized:        "authentication required",
		MsgForbidden:           "insufficient permissions",
		MsgValidationFailed:    "validation failed",
		MsgInvalidRequest:      "invalid request",
		MsgFileTypeNotAllowed:  "file type not allowed",
		MsgAlreadySubmitted:    "this week was already submitted",
		MsgNoEnrollment:        "you are not enrolled in any cohort",
		MsgInvalidRefreshToken: "invalid or expired refresh token",
		MsgInternal:            "internal server error",
		MsgInvalidTransition:   "the submission cannot be moved to this status",
		MsgPresignUnsupported:  "direct uploads are not available, attach files to the submission instead",
		MsgBodyTooLarge:        "the request is too large",
		MsgUnknown:             "Unknown",

		statusLabelPrefix + "NOT_STARTED": "Not started",
		statusLabelPrefix + "IN_PROGRESS": "In progress",
		statusLabelPrefix + "SUBMITTED":   "Submitted",
		statusLabelPrefix + "LATE":        "Late",
		statusLabelPrefix + "COMPLETED":   "Completed",

		MsgEmailGreeting:           "Hello {0},",
		MsgEmailSignature:          "The Business Control team",
		MsgWelcomeSubject:          "Welcome to {0}",
		MsgWelcomeBody:             "You have joined {0}. Your first week is waiting for you at {1}",
		MsgSubmissionCompletedSubj: "Week {0} is complete",
		MsgSubmissionCompletedBody: "Your submission for week {0} (\"{1}\") was reviewed and marked as completed. See it at {2}",
		MsgDeadlineReminderSubject: "Reminder: week {0} is due {1}",
		MsgDeadlineReminderBody:    "The deadline for week {0} (\"{1}\") is {2}. Submit your work at {3}",

		msgRelativeNow: "just now",
	},
	Hebrew: {
		MsgNotFound:            "לא נמצא",
		MsgCohortNotFound:      "המחזור לא נמצא",
		MsgEnrollmentNotFound:  "ההרשמה לא נמצאה",
		MsgWeekNotFound:        "השבוע לא נמצא",
		MsgSubmissionNotFound:  "ההגשה לא נמצאה",
		MsgChecklistNotFound:   "פריט הרשימה לא נמצא",
		MsgCohortFull:          "המחזור מלא",
		MsgAlreadyEnrolled:     "כבר נרשמת למחזור הזה",
		MsgInvalidCode:         "קוד הרשמה שגוי",
		MsgEmailExists:         "משתמש עם כתובת אימייל זו כבר קיים",
		MsgCodeExists:          "קוד ההרשמה כבר בשימוש במחזור אחר",
		MsgInvalidCredentials:  "אימייל או סיסמה שגויים",
		MsgUnauthorized:        "נדרשת התחברות",
		MsgForbidden:           "אין לך הרשאה לפעולה זו",
		MsgValidationFailed:    "הנתונים שנשלחו אינם תקינים",
		MsgInvalidRequest:      "בקשה לא תקינה",
		MsgFileTypeNotAllowed:  "סוג הקובץ אינו נתמך",
		MsgAlreadySubmitted:    "השבוע הזה כבר הוגש",
		MsgNoEnrollment:        "אינך רשום לאף מחזור",
		MsgInvalidRefreshToken: "אסימון הרענון אינו תקף או שפג תוקפו",
		MsgInternal:            "שגיאת שרת פנימית",
		MsgInvalidTransition:   "לא ניתן להעביר את ההגשה לסטטוס זה",
		MsgPresignUnsupported:  "העלאה ישירה אינה זמינה, יש לצרף את הקבצים להגשה",
		MsgBodyTooLarge:        "הבקשה גדולה מדי",
		MsgUnknown:             "לא ידוע",

		statusLabelPrefix + "NOT_STARTED": "טרם התחיל",
		statusLabelPrefix + "IN_PROGRESS": "בתהליך",
		statusLabelPrefix + "SUBMITTED":   "הוגש",
		statusLabelPrefix + "LATE":        "באיחור",
		statusLabelPrefix + "COMPLETED":   "הושלם",

		MsgEmailGreeting:           "שלום {0},",
		MsgEmailSignature:          "צוות Business Control",
		MsgWelcomeSubject:          "ברוכים הבאים ל{0}",
		MsgWelcomeBody:             "הצטרפת ל{0}. השבוע הראשון מחכה לך בכתובת {1}",
		MsgSubmissionCompletedSubj: "שבוע {0} הושלם",
		MsgSubmissionCompletedBody: "ההגשה שלך עבור שבוע {0} (\"{1}\") נבדקה וסומנה כהושלמה. לצפייה: {2}",
		MsgDeadlineReminderSubject: "תזכורת: ההגשה של שבוע {0} ב-{1}",
		MsgDeadlineReminderBody:    "המועד האחרון להגשת שבוע {0} (\"{1}\") הוא {2}. להגשה: {3}",

		msgRelativeNow: "עכשיו",
	},
}

var pluralMessages = map[string]map[string]map[locales.PluralRule]string{
	English: {
		msgRelativeSecondsAgo: {locales.PluralRuleOne: "{0} second ago", locales.PluralRuleOther: "{0} seconds ago"},
		msgRelativeMinutesAgo: {locales.PluralRuleOne: "{0} minute ago", locales.PluralRuleOther: "{0} minutes ago"},
		msgRelativeHoursAgo:   {locales.PluralRuleOne: "{0} hour ago", locales.PluralRuleOther: "{0} hours ago"},
		msgRelativeDaysAgo:    {locales.PluralRuleOne: "{0} day ago", locales.PluralRuleOther: "{0} days ago"},
		msgRelativeMonthsAgo:  {locales.PluralRuleOne: "{0} month ago", locales.PluralRuleOther: "{0} months ago"},
		msgRelativeYearsAgo:   {locales.PluralRuleOne: "{0} year ago", locales.PluralRuleOther: "{0} years ago"},
	},
	Hebrew: {
		msgRelativeSecondsAgo: {locales.PluralRuleOne: "לפני {0} שנייה", locales.PluralRuleOther: "לפני {0} שניות"},
		msgRelativeMinutesAgo: {locales.PluralRuleOne: "לפני {0} דקה", locales.PluralRuleOther: "לפני {0} דקות"},
		msgRelativeHoursAgo:   {locales.PluralRuleOne: "לפני {0} שעה", locales.PluralRuleOther: "לפני {0} שעות"},
		msgRelativeDaysAgo:    {locales.PluralRuleOne: "לפני {0} יום", locales.PluralRuleOther: "לפני {0} ימים"},
		msgRelativeMonthsAgo:  {locales.PluralRuleOne: "לפני {0} חודש", locales.PluralRuleOther: "לפני {0} חודשים"},
		msgRelativeYearsAgo:   {locales.PluralRuleOne: "לפני {0} שנה", locales.PluralRuleOther: "לפני {0} שנים"},
	},
}

// StatusLabel returns the localized label of a submission status
func (c *Catalog) StatusLabel(locale, status string) string {
	return c.T(locale, statusLabelPrefix+status)
}
