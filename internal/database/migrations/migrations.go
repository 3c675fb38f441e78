package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"eventspark/internal/models"
)

// Init creates the schema if it does not exist yet.
func Init(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Event)(nil),
		(*models.Seat)(nil),
		(*models.Booking)(nil),
		(*models.BookingSeat)(nil),
	}
	for _, table := range tables {
		if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

type sectionLayout struct {
	Name        string
	Rows        int
	SeatsPerRow int
	Price       float64
}

// SeedDemoData inserts the demo event and seat layout used by local
// development and manual testing. It is a no-op when events already exist.
func SeedDemoData(ctx context.Context, db *bun.DB) (string, error) {
	count, err := db.NewSelect().Model((*models.Event)(nil)).Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return "", nil
	}

	now := time.Now()
	event := &models.Event{
		EventID:       uuid.NewString(),
		Title:         "Summer Music Festival 2025",
		Description:   "Annual outdoor music festival featuring top artists",
		Category:      "Music",
		StartTime:     time.Date(2025, 8, 15, 19, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 8, 15, 23, 0, 0, 0, time.UTC),
		VenueName:     "Central Park Amphitheater",
		VenueAddress:  "123 Park Ave, New York, NY",
		VenueCapacity: 150,
		Status:        models.EventPublished,
		CreatedAt:     now,
	}
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return "", fmt.Errorf("seed event: %w", err)
	}

	sections := []sectionLayout{
		{Name: "VIP", Rows: 2, SeatsPerRow: 5, Price: 150},
		{Name: "Premium", Rows: 3, SeatsPerRow: 10, Price: 100},
		{Name: "General", Rows: 5, SeatsPerRow: 15, Price: 50},
	}

	var seats []models.Seat
	for _, section := range sections {
		for row := 1; row <= section.Rows; row++ {
			for num := 1; num <= section.SeatsPerRow; num++ {
				seats = append(seats, models.Seat{
					SeatID:     uuid.NewString(),
					EventID:    event.EventID,
					Section:    section.Name,
					Row:        string(rune('A' + row - 1)),
					SeatNumber: fmt.Sprintf("%d", num),
					Price:      section.Price,
					Status:     models.SeatAvailable,
					CreatedAt:  now,
				})
			}
		}
	}
	if _, err := db.NewInsert().Model(&seats).Exec(ctx); err != nil {
		return "", fmt.Errorf("seed seats: %w", err)
	}

	return event.EventID, nil
}
