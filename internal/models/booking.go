package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	BookingID    string    `bun:"booking_id,pk" json:"bookingId"`
	EventID      string    `bun:"event_id,notnull" json:"eventId"`
	ContactName  string    `bun:"contact_name,notnull" json:"contactName"`
	ContactEmail string    `bun:"contact_email,notnull" json:"contactEmail"`
	TotalAmount  float64   `bun:"total_amount,notnull" json:"totalAmount"`
	Status       string    `bun:"status,notnull" json:"status"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at" json:"updatedAt"`

	// SeatIDs is stored in booking_seats, loaded alongside the booking.
	SeatIDs []string `bun:"-" json:"seatIds"`
}

// BookingSeat links one claimed seat to the booking that owns it.
type BookingSeat struct {
	bun.BaseModel `bun:"table:booking_seats"`

	BookingID string `bun:"booking_id,pk" json:"bookingId"`
	SeatID    string `bun:"seat_id,pk" json:"seatId"`
}
