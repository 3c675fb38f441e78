package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"eventspark/internal/models"
)

// Store reads and updates Event records. Seat status lives in the ledger,
// not here; the only mutable event field after publish is the status.
type Store struct {
	Bun *bun.DB
}

func (s *Store) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := s.Bun.NewSelect().
		Model(&event).
		Where("event_id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return &event, nil
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := s.Bun.NewInsert().Model(event).Exec(ctx)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// UpdateStatus moves the event to the given lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("event_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
