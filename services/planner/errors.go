package planner

import (
	"errors"
	"fmt"
)

const (
	CodeDestinationRequired = "destination_required"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidStay         = "invalid_stay"
	CodeInvalidPartySize    = "invalid_party_size"
	CodeInvalidBudget       = "invalid_budget"
	CodeCheckInPast         = "checkin_in_past"
)

// ValidationError is a user-correctable problem with the trip form.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// ErrMissingCredentials means an API key is absent; nothing downstream was called.
var ErrMissingCredentials = errors.New("missing API keys")
