package availability

import (
	"context"
	"fmt"
	"time"

	"eventspark/internal/logger"
	"eventspark/internal/models"
	"eventspark/internal/monitoring"
)

// SnapshotSource provides a consistent per-seat view of one event.
type SnapshotSource interface {
	Snapshot(ctx context.Context, eventID string) ([]models.Seat, error)
}

type EventSource interface {
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
}

// Cache stores rendered seat maps for a short TTL. A nil cache or a cache
// error degrades to a direct read, never to a failure.
type Cache interface {
	GetSeatMap(ctx context.Context, eventID string) (*models.SeatMapView, error)
	SetSeatMap(ctx context.Context, eventID string, view *models.SeatMapView) error
	Invalidate(ctx context.Context, eventID string) error
}

// Service is the read path: it projects ledger snapshots into the
// section-grouped view served to seat pickers. It never writes seat status.
type Service struct {
	Ledger SnapshotSource
	Events EventSource
	Cache  Cache
	Logger *logger.Logger
}

func NewService(ledger SnapshotSource, events EventSource, cache Cache, log *logger.Logger) *Service {
	return &Service{Ledger: ledger, Events: events, Cache: cache, Logger: log}
}

func (s *Service) SeatMap(ctx context.Context, eventID string) (*models.SeatMapView, error) {
	if s.Cache != nil {
		view, err := s.Cache.GetSeatMap(ctx, eventID)
		if err != nil {
			s.Logger.Warn("CACHE", fmt.Sprintf("seat map lookup for %s: %v", eventID, err))
		} else if view != nil {
			monitoring.RecordCacheLookup(true)
			return view, nil
		}
		monitoring.RecordCacheLookup(false)
	}

	event, err := s.Events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seats, err := s.Ledger.Snapshot(ctx, eventID)
	if err != nil {
		return nil, err
	}

	view := &models.SeatMapView{
		EventID: eventID,
		Event: models.EventSummary{
			Title:    event.Title,
			DateTime: event.StartTime,
			Venue:    event.VenueName,
		},
		SeatMap:     buildSeatMap(seats),
		LastUpdated: time.Now().UTC(),
	}

	if s.Cache != nil {
		if err := s.Cache.SetSeatMap(ctx, eventID, view); err != nil {
			s.Logger.Warn("CACHE", fmt.Sprintf("seat map store for %s: %v", eventID, err))
		}
	}
	return view, nil
}

// buildSeatMap groups seats by section with per-section totals.
func buildSeatMap(seats []models.Seat) map[string]*models.SectionAvailability {
	seatMap := make(map[string]*models.SectionAvailability)
	for _, seat := range seats {
		section, ok := seatMap[seat.Section]
		if !ok {
			section = &models.SectionAvailability{Price: seat.Price}
			seatMap[seat.Section] = section
		}

		section.TotalSeats++
		if seat.Status == models.SeatAvailable {
			section.AvailableSeats++
		}
		section.Seats = append(section.Seats, models.SeatDescriptor{
			SeatID: seat.SeatID,
			Row:    seat.Row,
			Number: seat.SeatNumber,
			Status: seat.Status,
		})
	}
	return seatMap
}
