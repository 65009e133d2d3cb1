package planner

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/models"
)

const (
	MinBudget = 100
	MaxBudget = 50000
)

// CheckDestination reports destination_required for a blank destination.
func CheckDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return newValidationError(CodeDestinationRequired, "Please enter a destination")
	}
	return nil
}

// Validate checks a trip form against the calendar date today. The destination
// is checked first, so an empty destination is always reported as such.
func Validate(req models.TripRequest, today time.Time) (*models.Stay, error) {
	if err := CheckDestination(req.Destination); err != nil {
		return nil, err
	}
	destination := strings.TrimSpace(req.Destination)

	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		return nil, newValidationError(CodeInvalidDate, "Check-in date must be a date in YYYY-MM-DD form")
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		return nil, newValidationError(CodeInvalidDate, "Check-out date must be a date in YYYY-MM-DD form")
	}

	days := CalculateDays(checkIn, checkOut)
	if days < 1 {
		return nil, newValidationError(CodeInvalidStay, "Check-out date must be after check-in date")
	}
	if req.People < 1 {
		return nil, newValidationError(CodeInvalidPartySize, "Number of people must be at least 1")
	}
	if req.Budget < MinBudget || req.Budget > MaxBudget {
		return nil, newValidationError(CodeInvalidBudget,
			fmt.Sprintf("Budget must be between %d and %d USD", MinBudget, MaxBudget))
	}
	if CalculateDays(today, checkIn) < 0 {
		return nil, newValidationError(CodeCheckInPast, "Check-in date cannot be in the past")
	}

	return &models.Stay{
		Destination: destination,
		People:      req.People,
		Budget:      req.Budget,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Days:        days,
	}, nil
}
