package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCalculateDays(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"four nights", "2024-06-01", "2024-06-05", 4},
		{"one night", "2024-06-01", "2024-06-02", 1},
		{"same day", "2024-06-01", "2024-06-01", 0},
		{"reversed", "2024-06-05", "2024-06-01", -4},
		{"across month", "2024-01-30", "2024-02-02", 3},
		{"leap year", "2024-02-28", "2024-03-01", 2},
		{"across year", "2023-12-31", "2024-01-01", 1},
		{"slash layout", "2024/06/01", "2024/06/05", 4},
		{"beyond duration range", "2026-11-01", "2400-11-01", 136601},
		{"reversed beyond duration range", "2400-11-01", "2026-11-01", -136601},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDays(mustDate(t, tt.checkIn), mustDate(t, tt.checkOut)))
		})
	}
}

func TestCalculateDaysIgnoresClock(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)
	out := time.Date(2024, 3, 10, 0, 15, 0, 0, loc)
	assert.Equal(t, 1, CalculateDays(in, out))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("June 1st")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}
