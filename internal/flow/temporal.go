// Package flow holds the pure interpreters that turn free text into
// normalized trip-plan values: concrete dates, numeric budgets, and
// lodging preferences. Everything here is stateless; session continuity
// is the conversation manager's job.
package flow

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Trip dates are anchored to the current date in a fixed reference
// timezone so "in 2 days" means the same thing regardless of where the
// server runs.
var referenceTZ = mustLoadLocation("Asia/Jerusalem")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

var (
	relativeOffsetPattern = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(day|days|week|weeks)\b`)
	stayDurationPattern   = regexp.MustCompile(`(?i)\b(\d+)\s+(day|days|night|nights|week|weeks)\b`)
)

// TripWindow is the resolved travel window. A nil/zero field means the
// corresponding cue was absent from the text.
type TripWindow struct {
	Start  *time.Time
	End    *time.Time
	Nights *int
}

// ResolveWindow resolves a relative offset ("in 2 days from now") and a
// stay duration ("staying for 14 days") into a concrete window. If both
// cues are present, End is the checkout-style exclusive end date
// (Start + Nights); if only one is present, only that field is set.
func ResolveWindow(text string) TripWindow {
	now := time.Now().In(referenceTZ)
	return ResolveWindowAt(text, now)
}

// ResolveWindowAt is ResolveWindow with an explicit anchor date.
func ResolveWindowAt(text string, now time.Time) TripWindow {
	var window TripWindow

	remaining := text
	if offset, ok := extractUnits(relativeOffsetPattern, text); ok {
		start := truncateToDate(now).AddDate(0, 0, offset)
		window.Start = &start
		// The offset's own "N days" must not double as the stay duration.
		remaining = relativeOffsetPattern.ReplaceAllString(text, "")
	}
	if nights, ok := extractUnits(stayDurationPattern, remaining); ok {
		window.Nights = &nights
	}
	if window.Start != nil && window.Nights != nil {
		end := window.Start.AddDate(0, 0, *window.Nights)
		window.End = &end
	}
	return window
}

// extractUnits returns the matched quantity in days; weeks are
// multiplied out, and nights are treated the same as days for hotel
// booking windows.
func extractUnits(pattern *regexp.Regexp, text string) (int, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "week") {
		qty *= 7
	}
	return qty, true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
