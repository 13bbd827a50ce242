package dates

import "time"

// DefaultRecencyWindowDays is the lookback used to stop scanning commit listings.
const DefaultRecencyWindowDays = 30

// RecencyWindow decides whether commit listing labels are recent enough to keep scanning.
// Listings are assumed to be reverse-chronological, so the first label outside the window ends a scan.
type RecencyWindow struct {
	Days int
}

// NewRecencyWindow builds a window of the given length, using the default when days is not positive.
func NewRecencyWindow(days int) RecencyWindow {
	if days <= 0 {
		days = DefaultRecencyWindowDays
	}
	return RecencyWindow{Days: days}
}

// Cutoff returns local midnight of the reference day minus the window length.
func (window RecencyWindow) Cutoff(reference time.Time) time.Time {
	referenceDay := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	return referenceDay.AddDate(0, 0, -window.Days)
}

// Admits reports whether the raw label is a recent relative label or a date no older than the cutoff.
func (window RecencyWindow) Admits(label string, reference time.Time) bool {
	if IsRecentLabel(label) {
		return true
	}

	normalizedLabel := Normalize(label, reference)
	if !IsCanonical(normalizedLabel) {
		return false
	}

	labelDay, parseError := ParseDay(normalizedLabel, reference.Location())
	if parseError != nil {
		return false
	}
	return !labelDay.Before(window.Cutoff(reference))
}
