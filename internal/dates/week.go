package dates

import (
	"fmt"
	"time"
)

const (
	weekIdentifierTemplateConstant = "%d-W%02d"
	daysPerWeekConstant            = 7
)

// WeekIdentifier returns the ISO-8601 year-week identifier, for example 2025-W32.
func WeekIdentifier(moment time.Time) string {
	isoYear, isoWeek := moment.ISOWeek()
	return fmt.Sprintf(weekIdentifierTemplateConstant, isoYear, isoWeek)
}

// StartOfWeek returns midnight of the Monday of the ISO week containing moment.
func StartOfWeek(moment time.Time) time.Time {
	day := time.Date(moment.Year(), moment.Month(), moment.Day(), 0, 0, 0, 0, moment.Location())
	daysSinceMonday := (int(day.Weekday()) + daysPerWeekConstant - 1) % daysPerWeekConstant
	return day.AddDate(0, 0, -daysSinceMonday)
}

// WeekIdentifierForOffset returns the identifier of the week offset weeks before the week containing reference.
func WeekIdentifierForOffset(reference time.Time, offset int) string {
	targetMonday := StartOfWeek(reference).AddDate(0, 0, -daysPerWeekConstant*offset)
	return WeekIdentifier(targetMonday)
}

// WeekIdentifierForDay returns the identifier for a canonical day, or the reference week when the day cannot be parsed.
func WeekIdentifierForDay(day string, reference time.Time) (string, bool) {
	parsedDay, parseError := ParseDay(day, reference.Location())
	if parseError != nil {
		return WeekIdentifier(reference), false
	}
	return WeekIdentifier(parsedDay), true
}
