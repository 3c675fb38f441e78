package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const (
	SeatAvailable = "available"
	SeatReserved  = "reserved"
	SeatBooked    = "booked"
)

type Seat struct {
	bun.BaseModel `bun:"table:seats"`

	SeatID     string    `bun:"seat_id,pk" json:"seatId"`
	EventID    string    `bun:"event_id,notnull" json:"eventId"`
	Section    string    `bun:"section,notnull" json:"section"`
	Row        string    `bun:"row,notnull" json:"row"`
	SeatNumber string    `bun:"seat_number,notnull" json:"seatNumber"`
	Price      float64   `bun:"price,notnull" json:"price"`
	Status     string    `bun:"status,notnull" json:"status"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at" json:"updatedAt"`
}

// Label renders the human-readable seat description printed on tickets,
// e.g. "VIP - Row A, Seat 3".
func (s Seat) Label() string {
	return fmt.Sprintf("%s - Row %s, Seat %s", s.Section, s.Row, s.SeatNumber)
}
