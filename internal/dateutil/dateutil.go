// Package dateutil implements calendar arithmetic over ISO yyyy-mm-dd date
// strings. All inputs and outputs are plain calendar dates with no time zone
// component; comparisons on the strings themselves sort chronologically.
package dateutil

import (
	"fmt"
	"time"
)

// Layout is the ISO calendar date layout used throughout the app.
const Layout = "2006-01-02"

// ParseISO parses a yyyy-mm-dd string into a UTC midnight time.
func ParseISO(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", iso, err)
	}
	return t, nil
}

// FormatISO formats a time as yyyy-mm-dd.
func FormatISO(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the calendar date of the given instant.
func Today(now time.Time) string {
	return FormatISO(now)
}

// AddDays adds n calendar days.
func AddDays(iso string, n int) (string, error) {
	t, err := ParseISO(iso)
	if err != nil {
		return "", err
	}
	return FormatISO(t.AddDate(0, 0, n)), nil
}

// AddMonths adds n months, preserving the day-of-month when the target month
// has that day and clamping to the last day of the target month otherwise.
// A goal started on Jan 31 plus one month lands on Feb 28 (or 29), not Mar 2.
func AddMonths(iso string, n int) (string, error) {
	t, err := ParseISO(iso)
	if err != nil {
		return "", err
	}
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return FormatISO(clampDay(target, d)), nil
}

// AddYears adds n years with the same clamping rule as AddMonths, so a
// Feb 29 start in a leap year lands on Feb 28 in a common year.
func AddYears(iso string, n int) (string, error) {
	t, err := ParseISO(iso)
	if err != nil {
		return "", err
	}
	y, m, d := t.Date()
	target := time.Date(y+n, m, 1, 0, 0, 0, 0, time.UTC)
	return FormatISO(clampDay(target, d)), nil
}

// clampDay places day d in the month of target, clamping to the month's last
// day when d exceeds it. Day zero of the following month is the last day of
// this one.
func clampDay(target time.Time, d int) time.Time {
	last := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

// ComputeEnd returns the inclusive end date for a goal starting on startISO
// with the given period: week = start+6d, month = (start+1mo)-1d,
// year = (start+1y)-1d.
func ComputeEnd(startISO, period string) (string, error) {
	switch period {
	case "week":
		return AddDays(startISO, 6)
	case "month":
		end, err := AddMonths(startISO, 1)
		if err != nil {
			return "", err
		}
		return AddDays(end, -1)
	case "year":
		end, err := AddYears(startISO, 1)
		if err != nil {
			return "", err
		}
		return AddDays(end, -1)
	default:
		return "", fmt.Errorf("unknown period %q", period)
	}
}
