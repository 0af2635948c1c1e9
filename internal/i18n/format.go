package i18n

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FormatDate renders t as a long localized date, e.g. "March 10, 2024"
func (c *Catalog) FormatDate(t time.Time, locale string) string {
	return c.Translator(locale).FmtDateLong(t)
}

// FormatDateTime renders t as a long localized date followed by a short time
func (c *Catalog) FormatDateTime(t time.Time, locale string) string {
	tr := c.Translator(locale)
	return tr.FmtDateLong(t) + " " + tr.FmtTimeShort(t)
}

// RelativeTime renders how long ago t was relative to now, using
// second, minute, hour, day, 30-day month and 365-day year buckets
func (c *Catalog) RelativeTime(t, now time.Time, locale string) string {
	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds <= 0:
		return c.T(locale, msgRelativeNow)
	case seconds < 60:
		return c.Plural(locale, msgRelativeSecondsAgo, seconds)
	case seconds < 3600:
		return c.Plural(locale, msgRelativeMinutesAgo, seconds/60)
	case seconds < 86400:
		return c.Plural(locale, msgRelativeHoursAgo, seconds/3600)
	case seconds < 2592000:
		return c.Plural(locale, msgRelativeDaysAgo, seconds/86400)
	case seconds < 31536000:
		return c.Plural(locale, msgRelativeMonthsAgo, seconds/2592000)
	default:
		return c.Plural(locale, msgRelativeYearsAgo, seconds/31536000)
	}
}

var fileSizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary units and at most two decimals, e.g. "1.5 KB"
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(fileSizeUnits) {
		i = len(fileSizeUnits) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[i]
}

// Initials returns the upper-cased first letters of the first two words of name
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}
