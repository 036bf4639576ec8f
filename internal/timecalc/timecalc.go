package timecalc

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the wire and storage format for start/end times.
const ClockLayout = "15:04"

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(v string) (int, error) {
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// HoursWorked computes the decimal hours between start and end ("HH:MM"),
// rounded to 2 fractional digits. A non-positive span yields 0.
func HoursWorked(start, end string) (float64, error) {
	if start == "" || end == "" {
		return 0, nil
	}
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	diff := e - s
	if diff <= 0 {
		return 0, nil
	}
	return Round2(float64(diff) / 60), nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WindowDays returns n consecutive dates ending on (and including) the day of
// ref, oldest first, formatted with DateLayout in ref's location.
func WindowDays(ref time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, ref.AddDate(0, 0, -i).Format(DateLayout))
	}
	return days
}

// DisplayDate renders a stored date as a short chart label like "Jan 2".
// Unparseable input is returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// ValidDate reports whether v is a well-formed calendar date.
func ValidDate(v string) bool {
	_, err := time.Parse(DateLayout, v)
	return err == nil
}
