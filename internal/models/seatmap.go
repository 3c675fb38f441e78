package models

import "time"

// SeatDescriptor is one seat as shown on the availability map.
type SeatDescriptor struct {
	SeatID string `json:"seatId"`
	Row    string `json:"row"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// SectionAvailability aggregates one section of the venue.
type SectionAvailability struct {
	TotalSeats     int              `json:"totalSeats"`
	AvailableSeats int              `json:"availableSeats"`
	Price          float64          `json:"price"`
	Seats          []SeatDescriptor `json:"seats"`
}

type EventSummary struct {
	Title    string    `json:"title"`
	DateTime time.Time `json:"dateTime"`
	Venue    string    `json:"venue"`
}

// SeatMapView is the section-grouped projection served by
// GET /api/events/{eventId}/seats.
type SeatMapView struct {
	EventID     string                          `json:"eventId"`
	Event       EventSummary                    `json:"event"`
	SeatMap     map[string]*SectionAvailability `json:"seatMap"`
	LastUpdated time.Time                       `json:"lastUpdated"`
}
