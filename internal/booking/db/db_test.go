package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	bookingdb "eventspark/internal/booking/db"
	"eventspark/internal/models"
)

func setupTestDB(t *testing.T) *bookingdb.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.Booking)(nil)))
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.BookingSeat)(nil)))

	t.Cleanup(func() { bunDB.Close() })
	return &bookingdb.DB{Bun: bunDB}
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		BookingID:    uuid.NewString(),
		EventID:      uuid.NewString(),
		ContactName:  "Ada Lovelace",
		ContactEmail: "ada@example.com",
		TotalAmount:  300,
		Status:       models.BookingConfirmed,
		CreatedAt:    time.Now(),
		SeatIDs:      []string{"seat-b", "seat-a"},
	}
}

func TestCreateAndGetBooking(t *testing.T) {
	store := setupTestDB(t)
	booking := sampleBooking()

	require.NoError(t, store.CreateBooking(context.Background(), booking))

	got, err := store.GetBookingByID(context.Background(), booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, got.BookingID)
	assert.Equal(t, booking.EventID, got.EventID)
	assert.Equal(t, "ada@example.com", got.ContactEmail)
	assert.Equal(t, 300.0, got.TotalAmount)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	// Seat ids come back from booking_seats in sorted order.
	assert.Equal(t, []string{"seat-a", "seat-b"}, got.SeatIDs)
}

func TestGetBookingByIDNotFound(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.GetBookingByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestUpdateBookingStatus(t *testing.T) {
	store := setupTestDB(t)
	booking := sampleBooking()
	require.NoError(t, store.CreateBooking(context.Background(), booking))

	require.NoError(t, store.UpdateBookingStatus(context.Background(), booking.BookingID, models.BookingCancelled))

	got, err := store.GetBookingByID(context.Background(), booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	store := setupTestDB(t)

	err := store.UpdateBookingStatus(context.Background(), uuid.NewString(), models.BookingCancelled)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestGetBookingBySeat(t *testing.T) {
	store := setupTestDB(t)
	booking := sampleBooking()
	require.NoError(t, store.CreateBooking(context.Background(), booking))

	got, err := store.GetBookingBySeat(context.Background(), "seat-a")
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, got.BookingID)

	_, err = store.GetBookingBySeat(context.Background(), "seat-unknown")
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestGetBookingBySeatIgnoresCancelled(t *testing.T) {
	store := setupTestDB(t)
	booking := sampleBooking()
	require.NoError(t, store.CreateBooking(context.Background(), booking))
	require.NoError(t, store.UpdateBookingStatus(context.Background(), booking.BookingID, models.BookingCancelled))

	_, err := store.GetBookingBySeat(context.Background(), "seat-a")
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}
