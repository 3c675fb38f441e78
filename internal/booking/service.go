package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventspark/internal/logger"
	"eventspark/internal/models"
	"eventspark/internal/monitoring"
	"eventspark/internal/reservation"
)

// Reserver claims and releases seat sets on behalf of bookings.
type Reserver interface {
	Reserve(ctx context.Context, eventID string, seatIDs []string) (*reservation.Reservation, error)
	ReleaseClaim(ctx context.Context, eventID string, seatIDs []string) error
}

// Store persists Booking records.
type Store interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
}

// TicketIssuer derives one ticket per (booking, seat) pair.
type TicketIssuer interface {
	Issue(event *models.Event, bookingID string, seat models.Seat) (models.Ticket, error)
}

// Publisher emits domain events after commit. Publishing is best-effort:
// a broker outage must never fail a committed booking.
type Publisher interface {
	PublishBookingConfirmed(booking models.Booking) error
	PublishBookingCancelled(booking models.Booking) error
	PublishSeatStatusChanged(eventID string, seatIDs []string, status string) error
}

// SeatCounter reports remaining availability, driving the sold_out
// transition.
type SeatCounter interface {
	AvailableCount(ctx context.Context, eventID string) (int, error)
	SeatsByID(ctx context.Context, seatIDs []string) ([]models.Seat, error)
}

type EventStatusStore interface {
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// SnapshotCache invalidates cached seat maps after a status change.
type SnapshotCache interface {
	Invalidate(ctx context.Context, eventID string) error
}

// Service is the booking commit orchestrator: validate, reserve, persist,
// issue tickets. It owns the compensating release when persistence fails
// after a successful claim.
type Service struct {
	Reserver Reserver
	Store    Store
	Issuer   TicketIssuer
	Seats    SeatCounter
	Events   EventStatusStore
	Kafka    Publisher
	Cache    SnapshotCache
	Logger   *logger.Logger
}

func NewService(reserver Reserver, store Store, issuer TicketIssuer, seats SeatCounter, events EventStatusStore, log *logger.Logger) *Service {
	return &Service{
		Reserver: reserver,
		Store:    store,
		Issuer:   issuer,
		Seats:    seats,
		Events:   events,
		Logger:   log,
	}
}

// CreateBooking turns a validated request into a confirmed booking with
// issued tickets, or a typed rejection. Claim and commit are one logical
// unit: a persistence failure reverts the claim before the error surfaces.
func (s *Service) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	start := time.Now()

	if verr := req.Validate(); verr != nil {
		monitoring.RecordBooking(monitoring.OutcomeRejected, time.Since(start))
		return nil, verr
	}

	res, err := s.Reserver.Reserve(ctx, req.EventID, req.SeatIDs)
	if err != nil {
		if conflict, ok := err.(*models.ConflictError); ok {
			monitoring.RecordBooking(monitoring.OutcomeConflict, time.Since(start))
			monitoring.RecordSeatConflicts(req.EventID, len(conflict.SeatIDs))
		} else {
			monitoring.RecordBooking(monitoring.OutcomeRejected, time.Since(start))
		}
		return nil, err
	}

	claimedIDs := make([]string, 0, len(res.Seats))
	for _, seat := range res.Seats {
		claimedIDs = append(claimedIDs, seat.SeatID)
	}

	booking := &models.Booking{
		BookingID:    uuid.NewString(),
		EventID:      req.EventID,
		ContactName:  req.ContactInfo.Name,
		ContactEmail: req.ContactInfo.Email,
		TotalAmount:  res.TotalAmount,
		Status:       models.BookingConfirmed,
		CreatedAt:    time.Now(),
		SeatIDs:      claimedIDs,
	}

	// Tickets are pure derivations, so issue them before persisting: if
	// persistence fails they are simply discarded with the claim.
	ticketList := make([]models.Ticket, 0, len(res.Seats))
	for _, seat := range res.Seats {
		ticket, err := s.Issuer.Issue(res.Event, booking.BookingID, seat)
		if err != nil {
			return nil, s.compensate(ctx, req.EventID, claimedIDs, fmt.Errorf("issue ticket: %w", err), start)
		}
		ticketList = append(ticketList, ticket)
	}

	if err := s.Store.CreateBooking(ctx, booking); err != nil {
		return nil, s.compensate(ctx, req.EventID, claimedIDs, fmt.Errorf("persist booking: %w", err), start)
	}

	s.Logger.LogBooking("CONFIRMED", booking.BookingID,
		fmt.Sprintf("event %s, %d seats, total %.2f", req.EventID, len(claimedIDs), res.TotalAmount))

	s.afterCommit(ctx, *booking)
	monitoring.RecordBooking(monitoring.OutcomeConfirmed, time.Since(start))

	return &models.BookingConfirmation{
		BookingID:     booking.BookingID,
		EventID:       booking.EventID,
		EventTitle:    res.Event.Title,
		TotalAmount:   booking.TotalAmount,
		BookingStatus: booking.Status,
		Tickets:       ticketList,
		BookingDate:   booking.CreatedAt,
	}, nil
}

// compensate releases a claim whose booking could not be committed. The
// release is best-effort but mandatory: if it also fails, the failure is
// escalated as a ReleaseError rather than silently leaving seats orphaned.
func (s *Service) compensate(ctx context.Context, eventID string, seatIDs []string, cause error, start time.Time) error {
	monitoring.RecordBooking(monitoring.OutcomeError, time.Since(start))
	s.Logger.Error("BOOKING", fmt.Sprintf("commit failed, releasing %d seats: %v", len(seatIDs), cause))

	if relErr := s.Reserver.ReleaseClaim(ctx, eventID, seatIDs); relErr != nil {
		return &models.ReleaseError{SeatIDs: seatIDs, Err: relErr}
	}
	return cause
}

// GetBooking loads a booking and re-derives its tickets.
func (s *Service) GetBooking(ctx context.Context, id string) (*models.Booking, []models.Ticket, error) {
	booking, err := s.Store.GetBookingByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	event, err := s.Events.GetEventByID(ctx, booking.EventID)
	if err != nil {
		return nil, nil, err
	}
	seats, err := s.Seats.SeatsByID(ctx, booking.SeatIDs)
	if err != nil {
		return nil, nil, err
	}

	ticketList := make([]models.Ticket, 0, len(seats))
	for _, seat := range seats {
		ticket, err := s.Issuer.Issue(event, booking.BookingID, seat)
		if err != nil {
			return nil, nil, fmt.Errorf("reissue ticket: %w", err)
		}
		ticketList = append(ticketList, ticket)
	}
	return booking, ticketList, nil
}

// CancelBooking applies the confirmed -> cancelled transition and releases
// the booking's seats back to available.
func (s *Service) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.Store.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingConfirmed {
		return models.ErrBookingNotConfirmed
	}

	if err := s.Store.UpdateBookingStatus(ctx, id, models.BookingCancelled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	if err := s.Reserver.ReleaseClaim(ctx, booking.EventID, booking.SeatIDs); err != nil {
		return &models.ReleaseError{SeatIDs: booking.SeatIDs, Err: err}
	}

	s.Logger.LogBooking("CANCELLED", id, fmt.Sprintf("%d seats released", len(booking.SeatIDs)))

	booking.Status = models.BookingCancelled
	s.reopenEvent(ctx, booking.EventID)
	s.invalidateSeatMap(ctx, booking.EventID)
	if s.Kafka != nil {
		if err := s.Kafka.PublishBookingCancelled(*booking); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish booking cancelled: %v", err))
		}
		if err := s.Kafka.PublishSeatStatusChanged(booking.EventID, booking.SeatIDs, models.SeatAvailable); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish seat status: %v", err))
		}
	}
	return nil
}

// afterCommit runs the best-effort post-commit steps: cache invalidation,
// sold-out transition, domain events. None of them can fail the booking.
func (s *Service) afterCommit(ctx context.Context, booking models.Booking) {
	s.invalidateSeatMap(ctx, booking.EventID)
	s.markSoldOutIfFull(ctx, booking.EventID)
	if s.Kafka != nil {
		if err := s.Kafka.PublishBookingConfirmed(booking); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish booking confirmed: %v", err))
		}
		if err := s.Kafka.PublishSeatStatusChanged(booking.EventID, booking.SeatIDs, models.SeatBooked); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("publish seat status: %v", err))
		}
	}
}

func (s *Service) markSoldOutIfFull(ctx context.Context, eventID string) {
	remaining, err := s.Seats.AvailableCount(ctx, eventID)
	if err != nil {
		s.Logger.Warn("BOOKING", fmt.Sprintf("sold-out check for %s: %v", eventID, err))
		return
	}
	if remaining > 0 {
		return
	}
	if err := s.Events.UpdateStatus(ctx, eventID, models.EventSoldOut); err != nil {
		s.Logger.Warn("BOOKING", fmt.Sprintf("mark %s sold out: %v", eventID, err))
	}
}

// reopenEvent moves a sold_out event back to published after a cancellation
// frees seats.
func (s *Service) reopenEvent(ctx context.Context, eventID string) {
	event, err := s.Events.GetEventByID(ctx, eventID)
	if err != nil || event.Status != models.EventSoldOut {
		return
	}
	if err := s.Events.UpdateStatus(ctx, eventID, models.EventPublished); err != nil {
		s.Logger.Warn("BOOKING", fmt.Sprintf("reopen %s: %v", eventID, err))
	}
}

func (s *Service) invalidateSeatMap(ctx context.Context, eventID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, eventID); err != nil {
		s.Logger.Warn("CACHE", fmt.Sprintf("invalidate seat map for %s: %v", eventID, err))
	}
}
