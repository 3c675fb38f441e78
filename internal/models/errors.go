package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingNotConfirmed guards the confirmed -> cancelled transition.
	ErrBookingNotConfirmed = errors.New("booking is not in confirmed status")
)

// ValidationError reports a malformed request field. It is raised before any
// ledger interaction, so no compensation is ever needed for it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidSeatsError reports seat ids that do not exist or belong to a
// different event than the one named by the request.
type InvalidSeatsError struct {
	SeatIDs []string
}

func (e *InvalidSeatsError) Error() string {
	return fmt.Sprintf("seats do not belong to event: %s", strings.Join(e.SeatIDs, ", "))
}

// ConflictError names the seats that were no longer available at claim time.
// It is the expected outcome of a lost race, not a fault.
type ConflictError struct {
	SeatIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.SeatIDs, ", "))
}

// ReleaseError escalates a failed compensating release: seats were claimed,
// the booking could not be persisted, and reverting the claim also failed.
type ReleaseError struct {
	SeatIDs []string
	Err     error
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("failed to release claimed seats %s: %v", strings.Join(e.SeatIDs, ", "), e.Err)
}

func (e *ReleaseError) Unwrap() error { return e.Err }
