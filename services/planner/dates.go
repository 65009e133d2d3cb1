package planner

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var acceptedLayouts = []string{DateLayout, "2006/01/02"}

// ParseDate reads a calendar date in YYYY-MM-DD or YYYY/MM/DD form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range acceptedLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// dateOnly drops the clock and zone, keeping the calendar date as seen in t's location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// CalculateDays returns the number of calendar days from checkIn to checkOut.
// The result is zero or negative when checkOut is not after checkIn.
// Unix seconds are used because time.Duration saturates after ~292 years.
func CalculateDays(checkIn, checkOut time.Time) int {
	return int((dateOnly(checkOut).Unix() - dateOnly(checkIn).Unix()) / secondsPerDay)
}
