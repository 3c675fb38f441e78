package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventspark/internal/booking"
	"eventspark/internal/logger"
	"eventspark/internal/models"
	"eventspark/internal/reservation"
)

type MockReserver struct {
	mock.Mock
}

func (m *MockReserver) Reserve(ctx context.Context, eventID string, seatIDs []string) (*reservation.Reservation, error) {
	args := m.Called(ctx, eventID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReserver) ReleaseClaim(ctx context.Context, eventID string, seatIDs []string) error {
	args := m.Called(ctx, eventID, seatIDs)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockStore) UpdateBookingStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockSeats struct {
	mock.Mock
}

func (m *MockSeats) AvailableCount(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockSeats) SeatsByID(ctx context.Context, seatIDs []string) ([]models.Seat, error) {
	args := m.Called(ctx, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEvents) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newService(reserver *MockReserver, store *MockStore, seats *MockSeats, events *MockEvents) *booking.Service {
	return booking.NewService(reserver, store, fakeIssuer{}, seats, events, logger.Discard())
}

// fakeIssuer mirrors the real issuer's determinism without QR rendering.
type fakeIssuer struct{}

func (fakeIssuer) Issue(event *models.Event, bookingID string, seat models.Seat) (models.Ticket, error) {
	return models.Ticket{
		TicketID: "ticket_" + bookingID + "_" + seat.SeatID,
		SeatID:   seat.SeatID,
		SeatInfo: seat.Label(),
		QRCode:   "QR_" + event.EventID + "_" + bookingID + "_" + seat.SeatID,
	}, nil
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		EventID: "ev1",
		SeatIDs: []string{"s1", "s2"},
		ContactInfo: models.ContactInfo{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
	}
}

func reservationFor(eventID string, seats ...models.Seat) *reservation.Reservation {
	var total float64
	for _, s := range seats {
		total += s.Price
	}
	return &reservation.Reservation{
		Event:       &models.Event{EventID: eventID, Title: "Summer Music Festival 2025", Status: models.EventPublished},
		Seats:       seats,
		TotalAmount: total,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	seats := new(MockSeats)
	events := new(MockEvents)
	svc := newService(reserver, store, seats, events)

	req := validRequest()
	res := reservationFor("ev1",
		models.Seat{SeatID: "s1", EventID: "ev1", Section: "VIP", Row: "A", SeatNumber: "1", Price: 150, Status: models.SeatBooked},
		models.Seat{SeatID: "s2", EventID: "ev1", Section: "VIP", Row: "A", SeatNumber: "2", Price: 150, Status: models.SeatBooked},
	)

	reserver.On("Reserve", mock.Anything, "ev1", req.SeatIDs).Return(res, nil)
	store.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Status == models.BookingConfirmed &&
			b.TotalAmount == 300 &&
			len(b.SeatIDs) == 2 &&
			b.ContactEmail == "ada@example.com"
	})).Return(nil)
	seats.On("AvailableCount", mock.Anything, "ev1").Return(5, nil)

	confirmation, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, confirmation.BookingID)
	assert.Equal(t, "ev1", confirmation.EventID)
	assert.Equal(t, "Summer Music Festival 2025", confirmation.EventTitle)
	assert.Equal(t, 300.0, confirmation.TotalAmount)
	assert.Equal(t, models.BookingConfirmed, confirmation.BookingStatus)
	require.Len(t, confirmation.Tickets, 2)
	assert.Equal(t, "ticket_"+confirmation.BookingID+"_s1", confirmation.Tickets[0].TicketID)

	store.AssertExpectations(t)
	reserver.AssertNotCalled(t, "ReleaseClaim", mock.Anything, mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingMarksEventSoldOut(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	seats := new(MockSeats)
	events := new(MockEvents)
	svc := newService(reserver, store, seats, events)

	req := validRequest()
	req.SeatIDs = []string{"s1"}
	res := reservationFor("ev1",
		models.Seat{SeatID: "s1", EventID: "ev1", Section: "VIP", Row: "A", SeatNumber: "1", Price: 150, Status: models.SeatBooked},
	)

	reserver.On("Reserve", mock.Anything, "ev1", req.SeatIDs).Return(res, nil)
	store.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)
	seats.On("AvailableCount", mock.Anything, "ev1").Return(0, nil)
	events.On("UpdateStatus", mock.Anything, "ev1", models.EventSoldOut).Return(nil)

	_, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateBookingValidationRejectedBeforeReserve(t *testing.T) {
	reserver := new(MockReserver)
	svc := newService(reserver, new(MockStore), new(MockSeats), new(MockEvents))

	req := validRequest()
	req.ContactInfo.Email = ""

	_, err := svc.CreateBooking(context.Background(), req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contactInfo.email", verr.Field)
	reserver.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingConflictPassthrough(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	svc := newService(reserver, store, new(MockSeats), new(MockEvents))

	req := validRequest()
	reserver.On("Reserve", mock.Anything, "ev1", req.SeatIDs).
		Return(nil, &models.ConflictError{SeatIDs: []string{"s2"}})

	_, err := svc.CreateBooking(context.Background(), req)

	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"s2"}, conflict.SeatIDs)
	store.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingPersistFailureReleasesClaim(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	svc := newService(reserver, store, new(MockSeats), new(MockEvents))

	req := validRequest()
	res := reservationFor("ev1",
		models.Seat{SeatID: "s1", EventID: "ev1", Price: 150, Status: models.SeatBooked},
		models.Seat{SeatID: "s2", EventID: "ev1", Price: 150, Status: models.SeatBooked},
	)

	reserver.On("Reserve", mock.Anything, "ev1", req.SeatIDs).Return(res, nil)
	store.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("db down"))
	reserver.On("ReleaseClaim", mock.Anything, "ev1", []string{"s1", "s2"}).Return(nil).Once()

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*models.ReleaseError))
	reserver.AssertExpectations(t)
}

func TestCreateBookingReleaseFailureEscalates(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	svc := newService(reserver, store, new(MockSeats), new(MockEvents))

	req := validRequest()
	res := reservationFor("ev1",
		models.Seat{SeatID: "s1", EventID: "ev1", Price: 150, Status: models.SeatBooked},
		models.Seat{SeatID: "s2", EventID: "ev1", Price: 150, Status: models.SeatBooked},
	)

	reserver.On("Reserve", mock.Anything, "ev1", req.SeatIDs).Return(res, nil)
	store.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("db down"))
	reserver.On("ReleaseClaim", mock.Anything, "ev1", []string{"s1", "s2"}).
		Return(errors.New("release failed"))

	_, err := svc.CreateBooking(context.Background(), req)

	var relErr *models.ReleaseError
	require.ErrorAs(t, err, &relErr)
	assert.Equal(t, []string{"s1", "s2"}, relErr.SeatIDs)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	seats := new(MockSeats)
	events := new(MockEvents)
	svc := newService(reserver, store, seats, events)

	confirmed := &models.Booking{
		BookingID: "bk1",
		EventID:   "ev1",
		Status:    models.BookingConfirmed,
		SeatIDs:   []string{"s1", "s2"},
	}

	store.On("GetBookingByID", mock.Anything, "bk1").Return(confirmed, nil)
	store.On("UpdateBookingStatus", mock.Anything, "bk1", models.BookingCancelled).Return(nil)
	reserver.On("ReleaseClaim", mock.Anything, "ev1", []string{"s1", "s2"}).Return(nil)
	events.On("GetEventByID", mock.Anything, "ev1").
		Return(&models.Event{EventID: "ev1", Status: models.EventSoldOut}, nil)
	events.On("UpdateStatus", mock.Anything, "ev1", models.EventPublished).Return(nil)

	err := svc.CancelBooking(context.Background(), "bk1")
	require.NoError(t, err)
	store.AssertExpectations(t)
	reserver.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCancelBookingRequiresConfirmedStatus(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	svc := newService(reserver, store, new(MockSeats), new(MockEvents))

	store.On("GetBookingByID", mock.Anything, "bk1").
		Return(&models.Booking{BookingID: "bk1", Status: models.BookingCancelled}, nil)

	err := svc.CancelBooking(context.Background(), "bk1")
	assert.ErrorIs(t, err, models.ErrBookingNotConfirmed)
	store.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
	reserver.AssertNotCalled(t, "ReleaseClaim", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBookingReissuesTickets(t *testing.T) {
	reserver := new(MockReserver)
	store := new(MockStore)
	seats := new(MockSeats)
	events := new(MockEvents)
	svc := newService(reserver, store, seats, events)

	store.On("GetBookingByID", mock.Anything, "bk1").Return(&models.Booking{
		BookingID: "bk1",
		EventID:   "ev1",
		Status:    models.BookingConfirmed,
		SeatIDs:   []string{"s1"},
	}, nil)
	events.On("GetEventByID", mock.Anything, "ev1").
		Return(&models.Event{EventID: "ev1", Title: "Concert"}, nil)
	seats.On("SeatsByID", mock.Anything, []string{"s1"}).Return([]models.Seat{
		{SeatID: "s1", Section: "VIP", Row: "A", SeatNumber: "1", Status: models.SeatBooked},
	}, nil)

	bookingData, ticketList, err := svc.GetBooking(context.Background(), "bk1")
	require.NoError(t, err)
	assert.Equal(t, "bk1", bookingData.BookingID)
	require.Len(t, ticketList, 1)
	assert.Equal(t, "ticket_bk1_s1", ticketList[0].TicketID)
}
