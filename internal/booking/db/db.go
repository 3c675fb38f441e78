package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"eventspark/internal/models"
)

// DB persists Booking records and the booking_seats rows linking each
// booking to the seats it owns. The Booking Commit Service is the only
// writer of this table.
type DB struct {
	Bun *bun.DB
}

// CreateBooking inserts the booking and its seat links in one transaction.
func (d *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(booking).Exec(ctx); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		links := make([]models.BookingSeat, 0, len(booking.SeatIDs))
		for _, seatID := range booking.SeatIDs {
			links = append(links, models.BookingSeat{
				BookingID: booking.BookingID,
				SeatID:    seatID,
			})
		}
		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("insert booking seats: %w", err)
		}
		return nil
	})
}

// GetBookingByID loads a booking with its seat ids.
func (d *DB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("booking_id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}

	err = d.Bun.NewSelect().
		Model((*models.BookingSeat)(nil)).
		Column("seat_id").
		Where("booking_id = ?", id).
		Order("seat_id ASC").
		Scan(ctx, &booking.SeatIDs)
	if err != nil {
		return nil, fmt.Errorf("get booking seats %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateBookingStatus applies a lifecycle transition.
func (d *DB) UpdateBookingStatus(ctx context.Context, id, status string) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("booking_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// GetBookingBySeat finds the confirmed booking owning a seat, if any.
func (d *DB) GetBookingBySeat(ctx context.Context, seatID string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Join("JOIN booking_seats AS bs ON bs.booking_id = booking.booking_id").
		Where("bs.seat_id = ?", seatID).
		Where("booking.status = ?", models.BookingConfirmed).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking by seat %s: %w", seatID, err)
	}
	return &booking, nil
}
