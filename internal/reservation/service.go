package reservation

import (
	"context"
	"fmt"

	"eventspark/internal/logger"
	"eventspark/internal/models"
)

// Ledger is the seat-status authority the coordinator claims against.
type Ledger interface {
	TryClaim(ctx context.Context, eventID string, seatIDs []string) ([]models.Seat, error)
	Release(ctx context.Context, eventID string, seatIDs []string) error
}

type EventStore interface {
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
}

// Reservation is a successful claim: the event, the claimed seats, and the
// total captured from seat prices at claim time. The total is never
// recomputed afterwards.
type Reservation struct {
	Event       *models.Event
	Seats       []models.Seat
	TotalAmount float64
}

// Coordinator translates a booking intent into a ledger claim. It does not
// retry on conflict: contention is reported up, and the buyer resubmits.
type Coordinator struct {
	Ledger Ledger
	Events EventStore
	Logger *logger.Logger
}

func NewCoordinator(ledger Ledger, events EventStore, log *logger.Logger) *Coordinator {
	return &Coordinator{Ledger: ledger, Events: events, Logger: log}
}

func (c *Coordinator) Reserve(ctx context.Context, eventID string, seatIDs []string) (*Reservation, error) {
	event, err := c.Events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == models.EventCancelled {
		return nil, models.ErrEventNotFound
	}

	seats, err := c.Ledger.TryClaim(ctx, eventID, seatIDs)
	if err != nil {
		if conflict, ok := err.(*models.ConflictError); ok {
			c.Logger.LogLedger("CLAIM_CONFLICT", eventID,
				fmt.Sprintf("seats contended: %v", conflict.SeatIDs))
		}
		return nil, err
	}

	var total float64
	for _, s := range seats {
		total += s.Price
	}

	c.Logger.LogLedger("CLAIMED", eventID,
		fmt.Sprintf("%d seats claimed, total %.2f", len(seats), total))

	return &Reservation{Event: event, Seats: seats, TotalAmount: total}, nil
}

// ReleaseClaim reverts a claim, compensating a booking that could not be
// committed or freeing the seats of a cancelled one.
func (c *Coordinator) ReleaseClaim(ctx context.Context, eventID string, seatIDs []string) error {
	if err := c.Ledger.Release(ctx, eventID, seatIDs); err != nil {
		return err
	}
	c.Logger.LogLedger("RELEASED", eventID, fmt.Sprintf("%d seats released", len(seatIDs)))
	return nil
}
