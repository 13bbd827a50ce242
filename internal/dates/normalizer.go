package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// CanonicalDayLayout is the layout of a canonical date without a time component.
	CanonicalDayLayout = "2006-01-02"
	// CanonicalTimestampLayout is the layout of a canonical date with a time component.
	CanonicalTimestampLayout = "2006-01-02 15:04:05"

	midnightSuffixConstant      = " 00:00:00"
	timeSeparatorConstant       = ":"
	justNowChineseLabelConstant = "刚刚"
	justNowEnglishLabelConstant = "just now"
	yesterdayChineseLabelConst  = "昨天"
	yesterdayEnglishLabelConst  = "yesterday"
	agoChineseSuffixConstant    = "以前"
	agoEnglishSuffixConstant    = " ago"
	dayTimeSeparatorConstant    = " "
	canonicalDayLengthConstant  = len(CanonicalDayLayout)
	relativeAmountGroupConstant = 1
)

var (
	canonicalDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}( \d{2}:\d{2}:\d{2})?$`)
	hoursAgoPattern      = regexp.MustCompile(`^(\d+)\s*(?:小时以前|hours?\s+ago)`)
	daysAgoPattern       = regexp.MustCompile(`^(\d+)\s*(?:天以前|days?\s+ago)`)
)

// Normalize converts a commit listing date label into a canonical date string.
//
// "just now" and "N hours/days ago" labels resolve against reference and yield YYYY-MM-DD.
// Canonical labels are returned as YYYY-MM-DD HH:MM:SS, appending midnight when no time is present.
// Any other label is returned unchanged; callers decide how to treat it.
func Normalize(text string, reference time.Time) string {
	trimmedText := strings.TrimSpace(text)
	if isJustNowLabel(trimmedText) {
		return reference.Format(CanonicalDayLayout)
	}

	if canonicalDatePattern.MatchString(trimmedText) {
		if strings.Contains(trimmedText, timeSeparatorConstant) {
			return trimmedText
		}
		return trimmedText + midnightSuffixConstant
	}

	if hours, matched := relativeAmount(hoursAgoPattern, trimmedText); matched {
		return reference.Add(-time.Duration(hours) * time.Hour).Format(CanonicalDayLayout)
	}

	if days, matched := relativeAmount(daysAgoPattern, trimmedText); matched {
		return reference.AddDate(0, 0, -days).Format(CanonicalDayLayout)
	}

	return text
}

// IsCanonical reports whether the value is a canonical YYYY-MM-DD or YYYY-MM-DD HH:MM:SS date.
func IsCanonical(value string) bool {
	return canonicalDatePattern.MatchString(value)
}

// IsRecentLabel reports whether the label is one of the relative "recent" forms shown for fresh commits.
func IsRecentLabel(text string) bool {
	trimmedText := strings.TrimSpace(text)
	if isJustNowLabel(trimmedText) {
		return true
	}
	if trimmedText == yesterdayChineseLabelConst || strings.EqualFold(trimmedText, yesterdayEnglishLabelConst) {
		return true
	}
	if strings.Contains(trimmedText, agoChineseSuffixConstant) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(trimmedText), agoEnglishSuffixConstant)
}

// DayPart strips the time component from a canonical date, leaving other values untouched.
func DayPart(value string) string {
	if !IsCanonical(value) {
		return value
	}
	return value[:canonicalDayLengthConstant]
}

// ParseDay parses the day portion of a canonical date in the provided location.
func ParseDay(value string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.Local
	}
	dayValue := value
	if separatorIndex := strings.Index(value, dayTimeSeparatorConstant); separatorIndex >= 0 {
		dayValue = value[:separatorIndex]
	}
	return time.ParseInLocation(CanonicalDayLayout, dayValue, location)
}

func isJustNowLabel(text string) bool {
	return text == justNowChineseLabelConstant || strings.EqualFold(text, justNowEnglishLabelConstant)
}

func relativeAmount(pattern *regexp.Regexp, text string) (int, bool) {
	matches := pattern.FindStringSubmatch(strings.ToLower(text))
	if len(matches) <= relativeAmountGroupConstant {
		return 0, false
	}
	amount, conversionError := strconv.Atoi(matches[relativeAmountGroupConstant])
	if conversionError != nil {
		return 0, false
	}
	return amount, true
}
