package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventSoldOut   = "sold_out"
	EventCancelled = "cancelled"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	EventID       string    `bun:"event_id,pk" json:"eventId"`
	Title         string    `bun:"title,notnull" json:"title"`
	Description   string    `bun:"description" json:"description"`
	Category      string    `bun:"category" json:"category"`
	StartTime     time.Time `bun:"start_time,notnull" json:"startTime"`
	EndTime       time.Time `bun:"end_time,notnull" json:"endTime"`
	VenueName     string    `bun:"venue_name,notnull" json:"venueName"`
	VenueAddress  string    `bun:"venue_address" json:"venueAddress"`
	VenueCapacity int       `bun:"venue_capacity,notnull" json:"venueCapacity"`
	Status        string    `bun:"status,notnull" json:"status"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updatedAt"`
}
