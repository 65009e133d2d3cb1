package planner

import (
	"errors"
	"testing"
	"time"

	"tripplanner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

func validRequest() models.TripRequest {
	return models.TripRequest{
		Destination: "Lisbon",
		People:      2,
		Budget:      1500,
		CheckIn:     "2024-06-01",
		CheckOut:    "2024-06-05",
	}
}

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Code
}

func TestValidateAcceptsStay(t *testing.T) {
	stay, err := Validate(validRequest(), today)
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", stay.Destination)
	assert.Equal(t, 4, stay.Days)
	assert.Equal(t, "2024-06-01", stay.CheckIn.Format(DateLayout))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TripRequest)
		code   string
	}{
		{"empty destination", func(r *models.TripRequest) { r.Destination = "" }, CodeDestinationRequired},
		{"blank destination", func(r *models.TripRequest) { r.Destination = "   " }, CodeDestinationRequired},
		{"same day", func(r *models.TripRequest) { r.CheckOut = r.CheckIn }, CodeInvalidStay},
		{"checkout before checkin", func(r *models.TripRequest) { r.CheckOut = "2024-05-30" }, CodeInvalidStay},
		{"bad checkin", func(r *models.TripRequest) { r.CheckIn = "01.06.2024" }, CodeInvalidDate},
		{"bad checkout", func(r *models.TripRequest) { r.CheckOut = "" }, CodeInvalidDate},
		{"no people", func(r *models.TripRequest) { r.People = 0 }, CodeInvalidPartySize},
		{"budget too low", func(r *models.TripRequest) { r.Budget = 99 }, CodeInvalidBudget},
		{"budget too high", func(r *models.TripRequest) { r.Budget = 50001 }, CodeInvalidBudget},
		{"past checkin", func(r *models.TripRequest) { r.CheckIn, r.CheckOut = "2024-05-19", "2024-05-22" }, CodeCheckInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := Validate(req, today)
			assert.Equal(t, tt.code, validationCode(t, err))
		})
	}
}

func TestValidateDestinationCheckedFirst(t *testing.T) {
	// Every other field is also invalid.
	req := models.TripRequest{CheckIn: "2024-06-05", CheckOut: "2024-06-01", Budget: 1}
	_, err := Validate(req, today)
	assert.Equal(t, CodeDestinationRequired, validationCode(t, err))
	assert.EqualError(t, err, "destination_required: Please enter a destination")
}

func TestValidateBudgetBounds(t *testing.T) {
	for _, budget := range []int{MinBudget, MaxBudget} {
		req := validRequest()
		req.Budget = budget
		_, err := Validate(req, today)
		assert.NoError(t, err)
	}
}

func TestValidateCheckInToday(t *testing.T) {
	req := validRequest()
	req.CheckIn, req.CheckOut = "2024-05-20", "2024-05-21"
	stay, err := Validate(req, today)
	require.NoError(t, err)
	assert.Equal(t, 1, stay.Days)
}

func TestValidateLongStayDays(t *testing.T) {
	req := validRequest()
	req.CheckIn = "2026-11-01"
	req.CheckOut = "2400-11-01"

	stay, err := Validate(req, today)
	require.NoError(t, err)
	assert.Equal(t, 136601, stay.Days)
}
