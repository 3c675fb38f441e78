package models

import (
	"strings"
	"time"
)

type ContactInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BookingRequest struct {
	EventID     string      `json:"eventId"`
	SeatIDs     []string    `json:"seatIds"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// Validate checks the request shape before any ledger interaction.
// It is a pure function: no lookups, no side effects.
func (r BookingRequest) Validate() *ValidationError {
	if strings.TrimSpace(r.EventID) == "" {
		return &ValidationError{Field: "eventId", Reason: "event id is required"}
	}
	if len(r.SeatIDs) == 0 {
		return &ValidationError{Field: "seatIds", Reason: "at least one seat id is required"}
	}
	for _, id := range r.SeatIDs {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{Field: "seatIds", Reason: "seat ids must be non-empty"}
		}
	}
	if strings.TrimSpace(r.ContactInfo.Name) == "" {
		return &ValidationError{Field: "contactInfo.name", Reason: "name is required"}
	}
	email := strings.TrimSpace(r.ContactInfo.Email)
	if email == "" {
		return &ValidationError{Field: "contactInfo.email", Reason: "email is required"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "contactInfo.email", Reason: "email is malformed"}
	}
	return nil
}

type BookingConfirmation struct {
	BookingID     string    `json:"bookingId"`
	EventID       string    `json:"eventId"`
	EventTitle    string    `json:"eventTitle"`
	TotalAmount   float64   `json:"totalAmount"`
	BookingStatus string    `json:"bookingStatus"`
	Tickets       []Ticket  `json:"tickets"`
	BookingDate   time.Time `json:"bookingDate"`
}
