package services

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a user submits a new meal while a
// previous submission is still being processed.
var ErrSubmissionInFlight = errors.New("a meal submission is already in progress")

// ExternalServiceError wraps a non-success response (or an unreadable body)
// from the classification or nutrition APIs. It is always recoverable: the
// caller falls back to manual entry or asks the user to rephrase.
type ExternalServiceError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Service, e.StatusCode, e.Body)
}

// ValidationError rejects bad input before any network or database call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PersistenceError reports which food item's insert failed. The whole batch
// is rolled back, so no partial submission survives.
type PersistenceError struct {
	FoodName string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.FoodName, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
