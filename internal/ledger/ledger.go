package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"eventspark/internal/models"
)

// SeatLedger is the sole authority over seat status. Every status mutation
// in the system goes through TryClaim or Release; nothing else writes to the
// seats table after setup.
type SeatLedger struct {
	db           *bun.DB
	locks        *lockTable
	claimTimeout time.Duration
}

func NewSeatLedger(db *bun.DB, claimTimeout time.Duration) *SeatLedger {
	return &SeatLedger{
		db:           db,
		locks:        newLockTable(),
		claimTimeout: claimTimeout,
	}
}

// TryClaim transitions every seat in seatIDs from available to booked as one
// indivisible unit, or none at all. The per-seat locks serialize overlapping
// claims; the transaction makes the transition invisible to readers until it
// commits. A claim that cannot take its locks before the timeout reports a
// conflict rather than blocking indefinitely.
func (l *SeatLedger) TryClaim(ctx context.Context, eventID string, seatIDs []string) ([]models.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, &models.ValidationError{Field: "seatIds", Reason: "at least one seat id is required"}
	}

	lockCtx, cancel := context.WithTimeout(ctx, l.claimTimeout)
	defer cancel()

	held, err := l.locks.Acquire(lockCtx, seatIDs)
	if err != nil {
		return nil, &models.ConflictError{SeatIDs: sortedUnique(seatIDs)}
	}
	defer l.locks.Release(held)

	var claimed []models.Seat
	err = l.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		seats, err := selectSeats(ctx, tx, held)
		if err != nil {
			return err
		}

		if invalid := invalidFor(eventID, held, seats); len(invalid) > 0 {
			return &models.InvalidSeatsError{SeatIDs: invalid}
		}

		var conflicts []string
		for _, s := range seats {
			if s.Status != models.SeatAvailable {
				conflicts = append(conflicts, s.SeatID)
			}
		}
		if len(conflicts) > 0 {
			return &models.ConflictError{SeatIDs: conflicts}
		}

		now := time.Now()
		res, err := tx.NewUpdate().
			Model((*models.Seat)(nil)).
			Set("status = ?", models.SeatBooked).
			Set("updated_at = ?", now).
			Where("seat_id IN (?)", bun.In(held)).
			Where("status = ?", models.SeatAvailable).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("claim update: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("claim update result: %w", err)
		}
		if int(n) != len(held) {
			// A writer outside the lock table raced us. Roll back.
			return &models.ConflictError{SeatIDs: held}
		}

		claimed = seats
		for i := range claimed {
			claimed[i].Status = models.SeatBooked
			claimed[i].UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Release reverts booked seats to available. Used to compensate a failed
// booking persistence and to free seats of a cancelled booking.
func (l *SeatLedger) Release(ctx context.Context, eventID string, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, l.claimTimeout)
	defer cancel()

	held, err := l.locks.Acquire(lockCtx, seatIDs)
	if err != nil {
		return fmt.Errorf("acquire seat locks for release: %w", err)
	}
	defer l.locks.Release(held)

	_, err = l.db.NewUpdate().
		Model((*models.Seat)(nil)).
		Set("status = ?", models.SeatAvailable).
		Set("updated_at = ?", time.Now()).
		Where("event_id = ?", eventID).
		Where("seat_id IN (?)", bun.In(held)).
		Where("status = ?", models.SeatBooked).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}
	return nil
}

// Snapshot returns every seat of the event as of one instant. Claims in
// flight are either fully visible or not at all.
func (l *SeatLedger) Snapshot(ctx context.Context, eventID string) ([]models.Seat, error) {
	var seats []models.Seat
	err := l.db.NewSelect().
		Model(&seats).
		Where("event_id = ?", eventID).
		Order("section", "row", "seat_number").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot seats: %w", err)
	}
	return seats, nil
}

// SeatsByID loads specific seats regardless of status, e.g. to re-issue
// tickets for an existing booking.
func (l *SeatLedger) SeatsByID(ctx context.Context, seatIDs []string) ([]models.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	var seats []models.Seat
	err := l.db.NewSelect().
		Model(&seats).
		Where("seat_id IN (?)", bun.In(seatIDs)).
		Order("seat_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	return seats, nil
}

// AvailableCount reports how many seats of the event are still available.
func (l *SeatLedger) AvailableCount(ctx context.Context, eventID string) (int, error) {
	count, err := l.db.NewSelect().
		Model((*models.Seat)(nil)).
		Where("event_id = ?", eventID).
		Where("status = ?", models.SeatAvailable).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count available seats: %w", err)
	}
	return count, nil
}

func selectSeats(ctx context.Context, tx bun.Tx, ids []string) ([]models.Seat, error) {
	var seats []models.Seat
	err := tx.NewSelect().
		Model(&seats).
		Where("seat_id IN (?)", bun.In(ids)).
		Order("seat_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select seats: %w", err)
	}
	return seats, nil
}

// invalidFor returns the requested ids that either do not exist or belong to
// a different event.
func invalidFor(eventID string, requested []string, seats []models.Seat) []string {
	byID := make(map[string]models.Seat, len(seats))
	for _, s := range seats {
		byID[s.SeatID] = s
	}
	var invalid []string
	for _, id := range requested {
		s, ok := byID[id]
		if !ok || s.EventID != eventID {
			invalid = append(invalid, id)
		}
	}
	return invalid
}
